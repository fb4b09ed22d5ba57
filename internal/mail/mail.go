// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
Package mail delivers transactional email for the Edora platform.

# Architecture

The package exposes a small [Sender] interface consumed by domain services
(the auth service sends activation codes through it) and a concrete SMTP
implementation that speaks STARTTLS to a standard relay. Services depend on
the interface only, so tests substitute an in-memory fake and never touch
the network.

Delivery is best-effort and synchronous: a failed send is reported to the
caller, which decides how to surface it. There is no retry queue.
*/
package mail

import "context"

// Message is a fully rendered email ready for delivery.
type Message struct {
	// To is the recipient address.
	To string
	// Subject is the RFC 5322 subject line.
	Subject string
	// Body is the plain-text message body.
	Body string
}

// Sender delivers a single message to its recipient.
//
// Implementations must be safe for concurrent use; the HTTP layer calls
// Send from multiple request goroutines.
type Sender interface {
	Send(ctx context.Context, message Message) error
}
