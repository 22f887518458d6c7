package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/FerretBot_Go/internal/config"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/metrics"
)

// InitializeEventSystem creates the in-memory bus wrapped in a resilient
// publisher. Publishers should use the returned publisher; failed handler
// runs are retried and finally written to the dead-letter file.
func InitializeEventSystem(cfg *config.Config) (*event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = config.DefaultEventMaxRetries
	}
	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = config.DefaultEventRetryDelay
	}
	deadLetterPath := cfg.EventDeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultEventDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return publisher, nil
}

// RegisterEventHandlers attaches the metrics collector to bus
func RegisterEventHandlers(bus event.Bus) error {
	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)
	return nil
}
