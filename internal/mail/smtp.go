// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

package mail

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
)

// SMTPConfig holds the relay coordinates for the SMTP sender.
type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	// From is the envelope and header sender address. Falls back to
	// Username when empty.
	From string
}

// SMTPSender delivers mail through a standard SMTP relay using STARTTLS.
//
// # Connection Model
//
// A fresh connection is dialed per message. Transactional volume here is
// low (one activation mail per registration), so connection reuse is not
// worth the session bookkeeping.
type SMTPSender struct {
	config SMTPConfig
	logger *slog.Logger
}

// NewSMTPSender constructs an SMTP-backed [Sender].
//
// # Parameters
//   - config: Relay host, port, and credentials.
//   - logger: Structured logger for delivery events.
func NewSMTPSender(config SMTPConfig, logger *slog.Logger) (*SMTPSender, error) {
	if config.Host == "" {
		return nil, fmt.Errorf("mail: SMTP host is required")
	}
	if config.Port == "" {
		config.Port = "587"
	}
	if config.From == "" {
		config.From = config.Username
	}

	return &SMTPSender{config: config, logger: logger}, nil
}

// Send delivers a single message, honoring context cancellation during dial.
func (sender *SMTPSender) Send(ctx context.Context, message Message) error {
	address := net.JoinHostPort(sender.config.Host, sender.config.Port)

	// 1. Dial with the caller's context so a cancelled request does not
	// leave a half-open connection behind.
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("mail: dial %s: %w", address, err)
	}

	client, err := smtp.NewClient(conn, sender.config.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("mail: smtp handshake: %w", err)
	}
	defer func() {
		if quitErr := client.Quit(); quitErr != nil {
			_ = client.Close()
		}
	}()

	// 2. Upgrade to TLS. Plaintext relays are not supported.
	if ok, _ := client.Extension("STARTTLS"); !ok {
		return fmt.Errorf("mail: relay %s does not support STARTTLS", sender.config.Host)
	}

	tlsConfig := &tls.Config{
		ServerName: sender.config.Host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("mail: starttls: %w", err)
	}

	// 3. Authenticate when credentials are configured.
	if sender.config.Username != "" {
		auth := smtp.PlainAuth("", sender.config.Username, sender.config.Password, sender.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("mail: auth: %w", err)
		}
	}

	// 4. Run the mail transaction.
	if err := client.Mail(sender.config.From); err != nil {
		return fmt.Errorf("mail: MAIL FROM: %w", err)
	}
	if err := client.Rcpt(message.To); err != nil {
		return fmt.Errorf("mail: RCPT TO: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("mail: DATA: %w", err)
	}

	if _, err := writer.Write(buildRFC5322(sender.config.From, message)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("mail: write body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("mail: finalize body: %w", err)
	}

	sender.logger.InfoContext(ctx, "mail_sent",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)

	return nil
}

// buildRFC5322 assembles the raw wire message with headers and body.
func buildRFC5322(from string, message Message) []byte {
	var builder strings.Builder

	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + message.Subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(message.Body)
	builder.WriteString("\r\n")

	return []byte(builder.String())
}
