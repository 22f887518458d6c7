package loots

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/osse101/FerretBot_Go/internal/concurrency"
	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/metrics"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// ChannelStatus reports whether the channel is streaming
type ChannelStatus interface {
	IsLive(ctx context.Context) (bool, error)
}

// CreditResult summarizes one CreditUnpaid run
type CreditResult struct {
	Credited        int  `json:"credited"`
	SkippedSelf     int  `json:"skipped_self"`
	SkippedUnlinked int  `json:"skipped_unlinked"`
	AlreadyCredited int  `json:"already_credited"`
	Offline         bool `json:"offline"`
}

// Crediter pays points for uncredited tips
type Crediter struct {
	loots   repository.Loots
	bus     event.Bus
	locks   *concurrency.LockManager
	status  ChannelStatus
	channel string
	points  int64
}

// NewCrediter creates a Crediter. A nil status credits regardless of stream state.
func NewCrediter(loots repository.Loots, bus event.Bus, locks *concurrency.LockManager, status ChannelStatus, channel string, points int64) *Crediter {
	if locks == nil {
		locks = concurrency.NewLockManager()
	}
	return &Crediter{
		loots:   loots,
		bus:     bus,
		locks:   locks,
		status:  status,
		channel: strings.ToLower(channel),
		points:  points,
	}
}

// CreditUnpaid credits every linked, uncredited tip that is not from the
// channel owner. Each tip is marked and paid in its own transaction, so a
// tip is paid at most once however many callers race.
func (c *Crediter) CreditUnpaid(ctx context.Context) (*CreditResult, error) {
	mu := c.locks.GetLock(CreditLockKey)
	mu.Lock()
	defer mu.Unlock()

	log := logger.FromContext(ctx)
	result := &CreditResult{}

	if c.status != nil {
		live, err := c.status.IsLive(ctx)
		if err != nil {
			return result, fmt.Errorf("channel status: %w", err)
		}
		if !live {
			result.Offline = true
			metrics.LootsCreditSkipsTotal.WithLabelValues(metrics.ReasonOffline).Inc()
			log.Debug(LogMsgChannelOffline)
			return result, nil
		}
	}

	unpaid, err := c.loots.GetUncreditedLoots(ctx)
	if err != nil {
		return result, fmt.Errorf("list uncredited: %w", err)
	}

	var errs []error
	for _, tip := range unpaid {
		switch {
		case !tip.IsLinked():
			result.SkippedUnlinked++
			metrics.LootsCreditSkipsTotal.WithLabelValues(metrics.ReasonUnlinked).Inc()
			continue
		case strings.EqualFold(tip.ViewerLogin, c.channel):
			result.SkippedSelf++
			metrics.LootsCreditSkipsTotal.WithLabelValues(metrics.ReasonSelf).Inc()
			log.Debug(LogMsgSelfTipSkipped, "loots_id", tip.ID)
			continue
		}

		paid, err := c.creditOne(ctx, tip)
		if err != nil {
			errs = append(errs, fmt.Errorf("credit %s: %w", tip.ID, err))
			continue
		}
		if !paid {
			result.AlreadyCredited++
			metrics.LootsCreditSkipsTotal.WithLabelValues(metrics.ReasonAlreadyCredited).Inc()
			continue
		}

		result.Credited++
		log.Info(LogMsgTipCredited, "loots_id", tip.ID, "viewer", tip.ViewerLogin, "points", c.points)
		if c.bus != nil {
			if err := c.bus.Publish(ctx, event.NewLootsCreditedEvent(tip.ID, tip.ViewerLogin, c.points)); err != nil {
				log.Warn(LogMsgPublishFailed, "type", event.LootsCredited, "error", err)
			}
		}
	}

	if len(errs) > 0 {
		err := errors.Join(errs...)
		log.Error(LogMsgCreditFailed, "failed", len(errs), "error", err)
		return result, err
	}
	return result, nil
}

func (c *Crediter) creditOne(ctx context.Context, tip domain.Loots) (bool, error) {
	tx, err := c.loots.BeginCreditTx(ctx)
	if err != nil {
		return false, err
	}

	marked, err := tx.MarkCredited(ctx, tip.ID)
	if err != nil {
		_ = tx.Rollback(ctx)
		return false, err
	}
	if !marked {
		_ = tx.Rollback(ctx)
		return false, nil
	}

	if _, err := tx.AddPoints(ctx, tip.ViewerLogin, c.points); err != nil {
		_ = tx.Rollback(ctx)
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}
