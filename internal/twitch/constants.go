package twitch

import "time"

// Helix request details
const (
	PathStreams        = "/streams"
	QueryUserLogin     = "user_login"
	HeaderClientID     = "Client-Id"
	StreamTypeLive     = "live"
	DefaultHTTPTimeout = 10 * time.Second
)

// Log messages
const (
	LogMsgStreamStatus       = "Checked channel stream status"
	LogMsgStreamStatusFailed = "Failed to check channel stream status"
)
