package server

import "time"

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgRepeatedAuthFail = "Repeated failed authentication from one address"
	LogMsgRateLimited      = "Blocking high request rate"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderReferrerPolicy = "Referrer-Policy"
)

// Security header values
const (
	HeaderValueNoSniff      = "nosniff"
	HeaderValueDeny         = "DENY"
	HeaderValueNoReferrer   = "no-referrer"
	RedactedValue           = "[REDACTED]"
	MaxRequestBodyBytes     = 1 << 20
	ReadHeaderTimeout       = 5 * time.Second
	DefaultRateWindow       = 5 * time.Minute
	DefaultRateMaxRequests  = 600
	DefaultFailedAuthAlert  = 5
	rateLimitedLogEveryNth  = 50
)

// PublicPaths bypass API key authentication
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// quietPaths are served without request logging
var quietPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
}
