package config

import "time"

const (
	// Configuration file paths
	ConfigPathPrizePool = "configs/prize_pool.json"
)

// Defaults
const (
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultRateWindow      = 5 * time.Minute
	DefaultRateMaxRequests = 600

	DefaultTimeZone = "Europe/Moscow"

	DefaultLootsBaseURL         = "https://loots.com"
	DefaultLootsPoints          = 100
	DefaultLootsRetry           = 30 * time.Second
	DefaultLootsAdditionalRetry = 30 * time.Second
	DefaultLootsMaxRetry        = 10 * time.Minute
	DefaultLootsHTTPTimeout     = 15 * time.Second

	DefaultHelixBaseURL   = "https://api.twitch.tv/helix"
	DefaultTwitchTokenURL = "https://id.twitch.tv/oauth2/token"
	DefaultLiveStatusTTL  = time.Minute

	DefaultViewerCacheSize = 1024
	DefaultViewerCacheTTL  = 10 * time.Minute

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)
