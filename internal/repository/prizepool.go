package repository

import (
	"context"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

// PrizePool defines data access for prize draw categories
type PrizePool interface {
	ListPrizePools(ctx context.Context) ([]domain.PrizePool, error)

	// BeginPrizePoolTx opens a transaction that excludes every other
	// prize pool transaction until it ends
	BeginPrizePoolTx(ctx context.Context) (PrizePoolTx, error)
}

// PrizePoolTx extends Tx with prize pool read-modify-write operations
type PrizePoolTx interface {
	Tx // Commit, Rollback

	// GetPrizePoolForUpdate returns nil when the category has no row yet
	GetPrizePoolForUpdate(ctx context.Context, poolType int) (*domain.PrizePool, error)
	SavePrizePool(ctx context.Context, pool *domain.PrizePool) error
}
