package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

// ViewerRepository implements repository.Viewer for PostgreSQL
type ViewerRepository struct {
	db *pgxpool.Pool
}

// NewViewerRepository creates a new ViewerRepository
func NewViewerRepository(db *pgxpool.Pool) *ViewerRepository {
	return &ViewerRepository{db: db}
}

func (r *ViewerRepository) GetViewer(ctx context.Context, login string) (*domain.Viewer, error) {
	var v domain.Viewer
	err := r.db.QueryRow(ctx, SQLSelectViewer, login).Scan(&v.Login, &v.Points, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrViewerNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetViewer, err)
	}
	return &v, nil
}

func (r *ViewerRepository) UpsertViewer(ctx context.Context, login string) (*domain.Viewer, error) {
	var v domain.Viewer
	err := r.db.QueryRow(ctx, SQLUpsertViewer, login).Scan(&v.Login, &v.Points, &v.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertViewer, err)
	}
	return &v, nil
}

func (r *ViewerRepository) AddPoints(ctx context.Context, login string, amount int64) (int64, error) {
	return addPoints(ctx, r.db, login, amount)
}

func (r *ViewerRepository) GetLoginByLootsName(ctx context.Context, lootsName string) (string, error) {
	var login string
	err := r.db.QueryRow(ctx, SQLSelectLoginByLootsName, lootsName).Scan(&login)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("%s: %w", ErrMsgFailedToGetLootsLink, err)
	}
	return login, nil
}

// LinkLootsName creates the viewer if needed, records the mapping and
// backfills unlinked tips in one transaction
func (r *ViewerRepository) LinkLootsName(ctx context.Context, lootsName, login string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	if _, err := tx.Exec(ctx, SQLUpsertViewer, login); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertViewer, err)
	}

	if _, err := tx.Exec(ctx, SQLUpsertLootsLink, lootsName, login); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToLinkLoots, err)
	}

	tag, err := tx.Exec(ctx, SQLAttachViewerToLoots, lootsName, login)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToLinkLoots, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCommit, err)
	}
	return tag.RowsAffected(), nil
}
