package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/FerretBot_Go/internal/bootstrap"
	"github.com/osse101/FerretBot_Go/internal/chat"
	"github.com/osse101/FerretBot_Go/internal/config"
	"github.com/osse101/FerretBot_Go/internal/database"
	"github.com/osse101/FerretBot_Go/internal/handler"
	"github.com/osse101/FerretBot_Go/internal/server"
)

// @title FerretBot API
// @version 1.0
// @description Admin API for the Loots tip pipeline and the prize draw.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	// Load reads .env, so it runs before the environment checks
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}

	for _, w := range warnings {
		slog.Warn(w)
	}

	runErr := run(cfg)
	if runErr != nil {
		slog.Error("FerretBot exited with error", "error", runErr)
	}
	_ = logFile.Close()
	if runErr != nil {
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		return err
	}

	publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return err
	}
	if err := bootstrap.RegisterEventHandlers(publisher); err != nil {
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	svc, err := bootstrap.InitializeServices(ctx, cfg, repos, publisher)
	if err != nil {
		return err
	}

	handler.InitValidator()

	var bot *chat.Bot
	if cfg.ChatEnabled {
		bot = chat.NewBot(chat.NewTwitchClient(cfg.TwitchBotUsername, cfg.TwitchOAuthToken), cfg.Channel, svc.Prizes)
		bot.Register(publisher)
		bot.Start(ctx)
		slog.Info(bootstrap.LogMsgChatStarted, "channel", cfg.Channel)
	} else {
		slog.Info(bootstrap.LogMsgChatDisabled)
	}

	if svc.Processor != nil {
		svc.Processor.Start(ctx)
		slog.Info(bootstrap.LogMsgLootsStarted, "interval", svc.Processor.Interval())
	}

	srv := server.NewServer(server.Options{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Limits: server.RateLimits{
			Window:          cfg.RateWindow,
			MaxRequests:     cfg.RateMaxRequests,
			FailedAuthAlert: server.DefaultFailedAuthAlert,
		},
	}, dbPool, server.Services{
		Prizes:   svc.Prizes,
		Crediter: svc.Crediter,
		Unpaid:   repos.Loots,
		Linker:   svc.Linker,
	})

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), bootstrap.ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Processor:          svc.Processor,
		ChatBot:            bot,
		ResilientPublisher: publisher,
	})
	return runErr
}
