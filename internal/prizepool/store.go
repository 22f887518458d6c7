package prizepool

import (
	"context"
	"fmt"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/logger"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// Store is the only path to persisted prize pools. Each operation runs in
// one exclusive repository transaction.
type Store struct {
	repo  repository.PrizePool
	table *Table
}

// NewStore creates a Store restoring categories from table
func NewStore(repo repository.PrizePool, table *Table) *Store {
	if table == nil {
		table = DefaultTable()
	}
	return &Store{repo: repo, table: table}
}

// LoadAll returns every configured category in type order, restoring
// missing or exhausted ones from the defaults first
func (s *Store) LoadAll(ctx context.Context) ([]domain.PrizePool, error) {
	dt, err := s.BeginDraw(ctx)
	if err != nil {
		return nil, err
	}
	defer dt.Rollback(ctx)

	pools := make([]domain.PrizePool, len(dt.Pools))
	for i, p := range dt.Pools {
		pools[i] = *p.Clone()
	}
	if err := dt.tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit prize pools: %w", err)
	}
	return pools, nil
}

// SetChance sets a category's current chance. Values below the base chance
// are rejected.
func (s *Store) SetChance(ctx context.Context, poolType int, value float64) (*domain.PrizePool, error) {
	return s.update(ctx, poolType, func(p *domain.PrizePool) error {
		if value < p.Chance {
			return fmt.Errorf("%w: chance %.2f is below base chance %.2f", domain.ErrInvalidInput, value, p.Chance)
		}
		p.CurrentChance = value
		return nil
	})
}

// Consume takes one unit of the named prize out of a category
func (s *Store) Consume(ctx context.Context, poolType int, prizeName string) (*domain.PrizePool, error) {
	return s.update(ctx, poolType, func(p *domain.PrizePool) error {
		if !p.Remove(prizeName) {
			return fmt.Errorf("%w: %q in pool %d", domain.ErrPrizeNotFound, prizeName, poolType)
		}
		return nil
	})
}

func (s *Store) update(ctx context.Context, poolType int, mutate func(*domain.PrizePool) error) (*domain.PrizePool, error) {
	if _, ok := s.table.Fresh(poolType); !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrPoolNotConfigured, poolType)
	}

	tx, err := s.repo.BeginPrizePoolTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	pool, err := s.loadOne(ctx, tx, poolType)
	if err != nil {
		return nil, err
	}
	if err := mutate(pool); err != nil {
		return nil, err
	}
	if err := tx.SavePrizePool(ctx, pool); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit prize pool: %w", err)
	}
	return pool, nil
}

// loadOne reads a category, persisting a restoration when it is missing or
// has no stock. An existing row keeps its chances; only the prizes reset.
func (s *Store) loadOne(ctx context.Context, tx repository.PrizePoolTx, poolType int) (*domain.PrizePool, error) {
	fresh, ok := s.table.Fresh(poolType)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrPoolNotConfigured, poolType)
	}

	pool, err := tx.GetPrizePoolForUpdate(ctx, poolType)
	if err != nil {
		return nil, err
	}
	if pool != nil && !pool.IsEmpty() {
		return pool, nil
	}

	logger.FromContext(ctx).Info(LogMsgPoolRestored, "type", poolType, "existing", pool != nil)
	if pool == nil {
		pool = fresh
	} else {
		pool.Prizes = fresh.Prizes
	}
	if err := tx.SavePrizePool(ctx, pool); err != nil {
		return nil, err
	}
	return pool, nil
}

// DrawTx is an exclusive read-modify-write over every category
type DrawTx struct {
	tx    repository.PrizePoolTx
	Pools []*domain.PrizePool
}

// BeginDraw opens an exclusive transaction and loads every category,
// restored where needed
func (s *Store) BeginDraw(ctx context.Context) (*DrawTx, error) {
	tx, err := s.repo.BeginPrizePoolTx(ctx)
	if err != nil {
		return nil, err
	}

	types := s.table.Types()
	pools := make([]*domain.PrizePool, 0, len(types))
	for _, t := range types {
		pool, err := s.loadOne(ctx, tx, t)
		if err != nil {
			_ = tx.Rollback(ctx)
			return nil, err
		}
		pools = append(pools, pool)
	}
	return &DrawTx{tx: tx, Pools: pools}, nil
}

// Commit persists every category and ends the transaction
func (d *DrawTx) Commit(ctx context.Context) error {
	for _, p := range d.Pools {
		if err := d.tx.SavePrizePool(ctx, p); err != nil {
			return err
		}
	}
	if err := d.tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit draw: %w", err)
	}
	return nil
}

// Rollback discards the draw. Safe after Commit.
func (d *DrawTx) Rollback(ctx context.Context) error {
	return d.tx.Rollback(ctx)
}
