// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer, audiences and cookie configuration.
  - Realtime: Websocket keepalive timings.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "tienda-api"
	AppVersion = "0.3.0"
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

	// MailDispatchTimeout bounds a detached notification send.
	MailDispatchTimeout = 20 * time.Second
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
	AuthIssuer = "tienda.app"

	// AudienceSession marks tokens that identify a logged-in user.
	AudienceSession = "session"

	// AudiencePasswordReset marks tokens that authorize a single password change.
	AudiencePasswordReset = "password_reset"

	// SessionCookieName is the HTTP-only cookie carrying the session token.
	SessionCookieName = "jwt"

	// SessionCookiePath scopes the session cookie to the whole site.
	SessionCookiePath = "/"
)

// # Realtime

const (
	// SocketWriteWait is the time allowed to write a message to the peer.
	SocketWriteWait = 10 * time.Second

	// SocketPongWait is the time allowed to read the next pong message from the peer.
	SocketPongWait = 60 * time.Second

	// SocketPingPeriod must be shorter than SocketPongWait.
	SocketPingPeriod = (SocketPongWait * 9) / 10

	// SocketMaxMessageSize caps inbound frames.
	SocketMaxMessageSize = 64 * 1024

	// SocketSendBuffer is the per-client outbound queue length.
	SocketSendBuffer = 16
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderAuthorization = "Authorization"
)

// # Database Schemas

// PostgreSQL schemas holding the Tienda tables.
const (
	SchemaShop  = "shop"
	SchemaUsers = "users"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken = "auth:reset_token:"
)
