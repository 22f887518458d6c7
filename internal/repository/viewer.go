package repository

import (
	"context"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

// Viewer defines data access for viewer balances and Loots name links
type Viewer interface {
	GetViewer(ctx context.Context, login string) (*domain.Viewer, error)
	UpsertViewer(ctx context.Context, login string) (*domain.Viewer, error)
	AddPoints(ctx context.Context, login string, amount int64) (int64, error)

	// GetLoginByLootsName returns "" when the name is not linked
	GetLoginByLootsName(ctx context.Context, lootsName string) (string, error)
	// LinkLootsName maps the name to the viewer and attaches the viewer to
	// unlinked tips with that name. Returns the number of tips attached.
	LinkLootsName(ctx context.Context, lootsName, login string) (int64, error)
}
