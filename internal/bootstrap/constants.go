package bootstrap

import "time"

// File system permissions
const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Logger files
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"

	// LogFileRetentionCount is how many older session logs survive startup
	LogFileRetentionCount = 9
)

// ShutdownTimeout bounds graceful shutdown
const ShutdownTimeout = 15 * time.Second

// Log messages for startup
const (
	LogMsgLoggingInitialized   = "Logging initialized"
	LogMsgStarting             = "Starting FerretBot"
	LogMsgConfigurationLoaded  = "Configuration loaded"
	LogMsgFailedDeleteOldLog   = "Failed to delete old log file"
	LogMsgPrizeTableLoaded     = "Prize table loaded"
	LogMsgLootsDisabled        = "Loots polling disabled"
	LogMsgLiveOnlyCrediting    = "Tip points are credited only while the channel is live"
	LogMsgLootsStarted         = "Loots polling started"
	LogMsgChatDisabled         = "Twitch chat disabled"
	LogMsgChatStarted          = "Twitch chat started"
	ErrMsgFailedCreateLogsDir  = "failed to create logs directory"
	ErrMsgFailedOpenLogFile    = "failed to open log file"
	ErrMsgFailedLoadPrizeTable = "failed to load prize table"
	ErrMsgFailedLoadTimeZone   = "failed to load time zone"
)

// Log messages for the event system
const (
	LogMsgEventSystemInitialized         = "Event system initialized"
	LogMsgMetricsCollectorRegistered     = "Metrics collector registered"
	ErrMsgFailedCreateDeadLetterDir      = "failed to create dead-letter directory"
	ErrMsgFailedCreateResilientPublisher = "failed to create resilient publisher"
	ErrMsgFailedRegisterMetrics          = "failed to register metrics collector"
)

// Log messages for shutdown
const (
	LogMsgShuttingDownServer         = "Shutting down server..."
	LogMsgStoppingLootsProcessor     = "Stopping loots processor..."
	LogMsgStoppingChat               = "Stopping Twitch chat..."
	LogMsgShuttingDownEventPublisher = "Shutting down event publisher..."
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgLootsProcessorStopFailed   = "Loots processor did not stop in time"
	LogMsgResilientPublisherFailed   = "Resilient publisher shutdown failed"
)
