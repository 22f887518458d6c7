package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/FerretBot_Go/internal/concurrency"
	"github.com/osse101/FerretBot_Go/internal/config"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/loots"
	"github.com/osse101/FerretBot_Go/internal/prizepool"
	"github.com/osse101/FerretBot_Go/internal/twitch"
)

// Services holds the application services built from the repositories
type Services struct {
	Crediter *loots.Crediter
	Linker   *loots.Linker
	Gate     *loots.Gate
	Prizes   prizepool.Service

	// Status is nil unless crediting is limited to live streams
	Status loots.ChannelStatus

	// Processor is nil when Loots polling is disabled
	Processor *loots.Processor
}

// InitializeServices wires the Loots pipeline and the prize draw.
// ctx bounds background token refreshes of the Helix client.
func InitializeServices(ctx context.Context, cfg *config.Config, repos *Repositories, bus event.Bus) (*Services, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadTimeZone, err)
	}

	table, err := prizepool.LoadTable(cfg.PrizePoolPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadPrizeTable, err)
	}
	slog.Info(LogMsgPrizeTableLoaded, "path", cfg.PrizePoolPath, "pools", len(table.Types()))

	var status loots.ChannelStatus
	if cfg.LiveOnly {
		helix := twitch.NewHelixClient(ctx, twitch.HelixConfig{
			ClientID:     cfg.TwitchClientID,
			ClientSecret: cfg.TwitchClientSecret,
			BaseURL:      cfg.HelixBaseURL,
			TokenURL:     cfg.TwitchTokenURL,
			Timeout:      cfg.Loots.HTTPTimeout,
		})
		status = twitch.NewStreamStatus(helix, cfg.Channel, cfg.LiveStatusTTL)
		slog.Info(LogMsgLiveOnlyCrediting, "channel", cfg.Channel)
	}

	cache := loots.NewViewerCache(cfg.ViewerCacheSize, cfg.ViewerCacheTTL)
	svc := &Services{
		Status:   status,
		Crediter: loots.NewCrediter(repos.Loots, bus, concurrency.NewLockManager(), status, cfg.Channel, cfg.Loots.Points),
		Linker:   loots.NewLinker(repos.Viewer, cache),
		Gate:     loots.NewGate(repos.Loots, repos.Viewer, bus, cache, loc),
		Prizes:   prizepool.NewService(prizepool.NewStore(repos.PrizePool, table), bus, nil),
	}

	if !cfg.Loots.Enabled {
		slog.Info(LogMsgLootsDisabled)
		return svc, nil
	}

	client := &http.Client{Timeout: cfg.Loots.HTTPTimeout}
	svc.Processor = loots.NewProcessor(
		loots.NewSessionClient(cfg.Loots.BaseURL, cfg.Loots.Login, cfg.Loots.Password, client),
		loots.NewFetcher(cfg.Loots.BaseURL, client),
		svc.Gate,
		svc.Crediter,
		loots.NewBackoff(cfg.Loots.DefaultRetry, cfg.Loots.AdditionalRetry, cfg.Loots.MaxRetry),
	)
	return svc, nil
}
