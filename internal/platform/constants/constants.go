// Copyright (c) 2026 Edora. All rights reserved.
// Author: an.duong.dev@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Cookie names and session cache configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "edora-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in signed tokens.
	AuthIssuer = "edora.app"

	// AccessTokenCookieName is the cookie carrying the short-lived access token.
	AccessTokenCookieName = "access_token"

	// RefreshTokenCookieName is the cookie carrying the long-lived refresh token.
	RefreshTokenCookieName = "refresh_token"

	// ActivationTokenTTL is the lifetime of a pending-registration token.
	// Deliberately short: the 4-digit code it carries is only as safe as
	// this window.
	ActivationTokenTTL = 5 * time.Minute

	// SessionTTL is the lifetime of a session cache entry. It is independent
	// of the refresh token TTL; a session may outlive the refresh token that
	// would normally extend it, or vice versa.
	SessionTTL = 7 * 24 * time.Hour
)

// # Redis Prefixes (Cache Taxonomy)

// The session namespace and the catalog namespaces share one Redis instance.
// Operationally simple, but it couples session TTL policy to the store's
// global configuration.
const (
	RedisPrefixSession       = "session:"
	RedisPrefixCatalogCourse = "catalog:course:"
	RedisKeyCatalogList      = "catalog:published"
)

// # Catalog Caching

const (
	// CatalogListTTL is the lifetime of the published-course list cache entry.
	CatalogListTTL = 30 * time.Minute

	// CatalogEntryTTL is the lifetime of a single cached course entry.
	CatalogEntryTTL = 30 * time.Minute
)
