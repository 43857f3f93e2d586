// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer and the Redis key taxonomy.
  - Uploads: Size ceiling and the public path prefix.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "medora-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	// Multipart uploads up to [MaxUploadSize] must fit in this window.
	DefaultReadTimeout = 15 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 30 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ConcurrencyQueueTimeout is the longest a request waits for a free
	// slot under MAX_CONCURRENT_REQUESTS before it is answered with 503.
	ConcurrencyQueueTimeout = 5 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "medora.api"
)

// # Uploads

const (
	// MaxUploadSize is the largest accepted image (5 MiB).
	MaxUploadSize = 5 << 20

	// MaxMultipartMemory is how much of a multipart form is buffered in memory.
	MaxMultipartMemory = 8 << 20

	// UploadURLPrefix is the public path under which stored files are served.
	UploadURLPrefix = "uploads"
)

// # Activity

const (
	// MaxActivityBodySize caps how much of a request body is copied into an activity entry.
	MaxActivityBodySize = 64 << 10

	// ActivityWriteTimeout bounds a single activity insert.
	ActivityWriteTimeout = 5 * time.Second
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
	HeaderAuthorization = "Authorization"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixRevokedToken = "auth:revoked:"
	RedisPrefixProduct      = "catalog:product:"
	RedisKeyProductList     = "catalog:products"
)
