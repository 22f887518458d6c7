package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/FerretBot_Go/internal/chat"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/loots"
	"github.com/osse101/FerretBot_Go/internal/server"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil members are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Processor          *loots.Processor
	ChatBot            *chat.Bot
	ResilientPublisher *event.ResilientPublisher
}

// GracefulShutdown stops the HTTP server, then the poller and chat, and
// flushes the event publisher last so events from in-flight work still land.
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Processor != nil {
		slog.Info(LogMsgStoppingLootsProcessor)
		c.Processor.Stop()
		if err := c.Processor.Wait(ctx); err != nil {
			slog.Error(LogMsgLootsProcessorStopFailed, "error", err)
		}
	}

	if c.ChatBot != nil {
		slog.Info(LogMsgStoppingChat)
		c.ChatBot.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
