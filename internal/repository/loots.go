package repository

import (
	"context"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

// Loots defines data access for received tips
type Loots interface {
	// InsertLoots stores the tip unless its id already exists.
	// Reports whether a row was written.
	InsertLoots(ctx context.Context, loots *domain.Loots) (bool, error)
	GetLoots(ctx context.Context, id string) (*domain.Loots, error)
	GetUncreditedLoots(ctx context.Context) ([]domain.Loots, error)

	// Transaction support
	BeginCreditTx(ctx context.Context) (LootsCreditTx, error)
}

// LootsCreditTx is the unit of work that credits a single tip
type LootsCreditTx interface {
	Tx // Commit, Rollback

	// MarkCredited flips credited to true and reports whether this call did it
	MarkCredited(ctx context.Context, id string) (bool, error)
	AddPoints(ctx context.Context, login string, amount int64) (int64, error)
}
