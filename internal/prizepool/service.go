package prizepool

import (
	"context"
	"sync"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/metrics"
)

// Service defines the prize draw operations
type Service interface {
	// RollPrize runs one draw. A nil prize in the result is a valid outcome.
	RollPrize(ctx context.Context, source string) (*DrawResult, error)
	ListPools(ctx context.Context) ([]domain.PrizePool, error)
	SetChance(ctx context.Context, poolType int, value float64) (*domain.PrizePool, error)
	Consume(ctx context.Context, poolType int, prizeName string) (*domain.PrizePool, error)
}

type service struct {
	store *Store
	bus   event.Bus
	rnd   Random
	mu    sync.Mutex
}

// NewService creates a prize draw service. A nil rnd uses math/rand/v2.
func NewService(store *Store, bus event.Bus, rnd Random) Service {
	if rnd == nil {
		rnd = globalRandom{}
	}
	return &service{store: store, bus: bus, rnd: rnd}
}

func (s *service) RollPrize(ctx context.Context, source string) (*DrawResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logger.FromContext(ctx)
	log.Info(LogMsgRolling, "source", source)

	dt, err := s.store.BeginDraw(ctx)
	if err != nil {
		metrics.PrizeDrawsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}
	defer dt.Rollback(ctx)

	result := Draw(dt.Pools, s.rnd)
	for _, roll := range result.Rolls {
		log.Debug(LogMsgRolled, "type", roll.PoolType, "value", roll.Value, "threshold", roll.Threshold, "won", roll.Won)
	}

	if err := dt.Commit(ctx); err != nil {
		metrics.PrizeDrawsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	if !result.Won() {
		metrics.PrizeDrawsTotal.WithLabelValues(metrics.OutcomeNone).Inc()
		log.Info(LogMsgNoPrize)
		return result, nil
	}

	metrics.PrizeDrawsTotal.WithLabelValues(metrics.OutcomeWin).Inc()
	log.Info(LogMsgPrizeWon, "type", result.PoolType, "prize", result.Prize.Name)
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewPrizeWonEvent(result.PoolType, result.Prize.Name, source)); err != nil {
			log.Warn(LogMsgPublishFailed, "error", err)
		}
	}
	return result, nil
}

func (s *service) ListPools(ctx context.Context) ([]domain.PrizePool, error) {
	return s.store.LoadAll(ctx)
}

func (s *service) SetChance(ctx context.Context, poolType int, value float64) (*domain.PrizePool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.SetChance(ctx, poolType, value)
}

func (s *service) Consume(ctx context.Context, poolType int, prizeName string) (*domain.PrizePool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Consume(ctx, poolType, prizeName)
}
