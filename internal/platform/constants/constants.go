// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: IP tracking TTLs and Redis key layout.
  - Catalog Limits: maximum sizes accepted for entries and tag names.
  - HTTP Headers: correlation and proxy header names.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tagbook-api"
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

	// StatementTimeout bounds every SQL statement on a pooled connection.
	StatementTimeout = 15 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// RateLimitWindow is the fixed window used by the Redis limiter.
	RateLimitWindow = 1 * time.Second

	// RateLimitKeyPrefix namespaces limiter counters in Redis.
	RateLimitKeyPrefix = "tagbook:ratelimit:"
)

// # Catalog Limits

const (
	// MaxEntryTextLength is the maximum rune count of an entry text.
	MaxEntryTextLength = 10000

	// MaxTagNameLength is the maximum rune count of a tag display name.
	MaxTagNameLength = 200

	// MaxTagsPerEntry caps the tag list of a single entry.
	MaxTagsPerEntry = 64

	// MaxBodyBytes caps request bodies read by handlers.
	MaxBodyBytes = 1 << 20
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
)

// # Query Parameters

const (
	QueryText   = "q"
	QueryLocale = "lang"
	QueryTag    = "tag"
)
