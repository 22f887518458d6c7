package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int    `validate:"min=1,max=65535"`
	LogLevel    string `validate:"oneof=debug info warn warning error"`
	LogFormat   string `validate:"oneof=json text"`
	LogDir      string
	Environment string
	ServiceName string
	Version     string
	APIKey      string `validate:"required"`

	// TrustedProxies may set X-Forwarded-For
	TrustedProxies  []string      `validate:"dive,ip"`
	RateWindow      time.Duration `validate:"gt=0"`
	RateMaxRequests int           `validate:"min=1"`

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration

	// TimeZone is the IANA zone used to stamp received tips
	TimeZone string `validate:"required"`

	Loots LootsConfig

	// Channel is the Twitch channel the bot serves; tips from it are never credited
	Channel       string `validate:"required_if=LiveOnly true"`
	PrizePoolPath string

	// LiveOnly pays tip points only while Channel is streaming, checked through Helix
	LiveOnly           bool
	TwitchClientID     string        `validate:"required_if=LiveOnly true"`
	TwitchClientSecret string        `validate:"required_if=LiveOnly true"`
	HelixBaseURL       string        `validate:"required,url"`
	TwitchTokenURL     string        `validate:"required,url"`
	LiveStatusTTL      time.Duration `validate:"gt=0"`

	ChatEnabled       bool
	TwitchBotUsername string `validate:"required_if=ChatEnabled true"`
	TwitchOAuthToken  string `validate:"required_if=ChatEnabled true"`

	ViewerCacheSize int           `validate:"min=1"`
	ViewerCacheTTL  time.Duration `validate:"gt=0"`

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string
}

// LootsConfig configures the Loots polling pipeline
type LootsConfig struct {
	Enabled  bool
	Login    string `validate:"required_if=Enabled true,omitempty,email"`
	Password string `validate:"required_if=Enabled true"`
	BaseURL  string `validate:"required,url"`
	// Points is the balance increment credited per tip
	Points          int64         `validate:"gt=0"`
	DefaultRetry    time.Duration `validate:"gt=0"`
	AdditionalRetry time.Duration `validate:"gte=0"`
	MaxRetry        time.Duration `validate:"gtefield=DefaultRetry"`
	HTTPTimeout     time.Duration `validate:"gt=0"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogDir:      getEnv("LOG_DIR", "logs"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		ServiceName: getEnv("SERVICE_NAME", "ferret-bot"),
		Version:     getEnv("VERSION", "dev"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies:  getEnvAsList("TRUSTED_PROXIES"),
		RateWindow:      getEnvAsDuration("RATE_LIMIT_WINDOW", DefaultRateWindow),
		RateMaxRequests: getEnvAsInt("RATE_LIMIT_MAX_REQUESTS", DefaultRateMaxRequests),

		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", "ferretbot"),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),

		TimeZone: getEnv("TIME_ZONE", DefaultTimeZone),

		Loots: LootsConfig{
			Enabled:         getEnvAsBool("LOOTS_ON", false),
			Login:           getEnv("LOOTS_LOGIN", ""),
			Password:        getEnv("LOOTS_PASSWORD", ""),
			BaseURL:         strings.TrimRight(getEnv("LOOTS_BASE_URL", DefaultLootsBaseURL), "/"),
			Points:          int64(getEnvAsInt("LOOTS_POINTS", DefaultLootsPoints)),
			DefaultRetry:    getEnvAsMillis("LOOTS_DEFAULT_RETRY_MS", DefaultLootsRetry),
			AdditionalRetry: getEnvAsMillis("LOOTS_ADDITIONAL_RETRY_MS", DefaultLootsAdditionalRetry),
			MaxRetry:        getEnvAsMillis("LOOTS_MAX_RETRY_MS", DefaultLootsMaxRetry),
			HTTPTimeout:     getEnvAsDuration("LOOTS_HTTP_TIMEOUT", DefaultLootsHTTPTimeout),
		},

		Channel:       strings.ToLower(getEnv("CHANNEL", "")),
		PrizePoolPath: getEnv("PRIZE_POOL_PATH", ConfigPathPrizePool),

		LiveOnly:           getEnvAsBool("LOOTS_LIVE_ONLY", false),
		TwitchClientID:     getEnv("TWITCH_CLIENT_ID", ""),
		TwitchClientSecret: getEnv("TWITCH_CLIENT_SECRET", ""),
		HelixBaseURL:       strings.TrimRight(getEnv("TWITCH_HELIX_URL", DefaultHelixBaseURL), "/"),
		TwitchTokenURL:     getEnv("TWITCH_TOKEN_URL", DefaultTwitchTokenURL),
		LiveStatusTTL:      getEnvAsDuration("LIVE_STATUS_TTL", DefaultLiveStatusTTL),

		ChatEnabled:       getEnvAsBool("CHAT_ON", false),
		TwitchBotUsername: getEnv("TWITCH_BOT_USERNAME", ""),
		TwitchOAuthToken:  getEnv("TWITCH_OAUTH_TOKEN", ""),

		ViewerCacheSize: getEnvAsInt("VIEWER_CACHE_SIZE", DefaultViewerCacheSize),
		ViewerCacheTTL:  getEnvAsDuration("VIEWER_CACHE_TTL", DefaultViewerCacheTTL),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		return nil, fmt.Errorf("invalid TIME_ZONE %q: %w", cfg.TimeZone, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints declared in struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Location returns the configured time zone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getEnvAsMillis reads a plain integer number of milliseconds
func getEnvAsMillis(key string, defaultValue time.Duration) time.Duration {
	v, err := strconv.ParseInt(os.Getenv(key), 10, 64)
	if err != nil || v < 0 {
		return defaultValue
	}
	return time.Duration(v) * time.Millisecond
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
