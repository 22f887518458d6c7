package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// LootsRepository implements repository.Loots for PostgreSQL
type LootsRepository struct {
	db *pgxpool.Pool
}

// NewLootsRepository creates a new LootsRepository
func NewLootsRepository(db *pgxpool.Pool) *LootsRepository {
	return &LootsRepository{db: db}
}

// InsertLoots stores a tip; an existing id is left untouched
func (r *LootsRepository) InsertLoots(ctx context.Context, l *domain.Loots) (bool, error) {
	tag, err := r.db.Exec(ctx, SQLInsertLoots, l.ID, l.Message, l.LootsName, l.ReceivedAt, nullIfEmpty(l.ViewerLogin))
	if err != nil {
		if isPgError(err, PgErrorCodeForeignKeyViolation) {
			return false, fmt.Errorf("%w: %s", domain.ErrViewerNotFound, l.ViewerLogin)
		}
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToInsertLoots, err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetLoots returns domain.ErrLootsNotFound for an unknown id
func (r *LootsRepository) GetLoots(ctx context.Context, id string) (*domain.Loots, error) {
	l, err := scanLoots(r.db.QueryRow(ctx, SQLSelectLoots, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrLootsNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLoots, err)
	}
	return l, nil
}

// GetUncreditedLoots lists every tip not yet credited, linked or not, oldest first
func (r *LootsRepository) GetUncreditedLoots(ctx context.Context) ([]domain.Loots, error) {
	rows, err := r.db.Query(ctx, SQLSelectUncreditedLoots)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListLoots, err)
	}
	defer rows.Close()

	var result []domain.Loots
	for rows.Next() {
		l, err := scanLoots(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListLoots, err)
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListLoots, err)
	}
	return result, nil
}

// BeginCreditTx starts the transaction that credits one tip
func (r *LootsRepository) BeginCreditTx(ctx context.Context) (repository.LootsCreditTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &lootsCreditTx{pgTx: pgTx{tx: tx}}, nil
}

type lootsCreditTx struct {
	pgTx
}

func (t *lootsCreditTx) MarkCredited(ctx context.Context, id string) (bool, error) {
	var updated string
	err := t.tx.QueryRow(ctx, SQLMarkLootsCredited, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToMarkCredited, err)
	}
	return true, nil
}

func (t *lootsCreditTx) AddPoints(ctx context.Context, login string, amount int64) (int64, error) {
	return addPoints(ctx, t.tx, login, amount)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLoots(row rowScanner) (*domain.Loots, error) {
	var (
		l          domain.Loots
		receivedAt *time.Time
		viewer     *string
	)
	if err := row.Scan(&l.ID, &l.Message, &l.LootsName, &receivedAt, &l.Credited, &viewer); err != nil {
		return nil, err
	}
	l.ReceivedAt = receivedAt
	l.ViewerLogin = derefString(viewer)
	return &l, nil
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func addPoints(ctx context.Context, q querier, login string, amount int64) (int64, error) {
	var balance int64
	err := q.QueryRow(ctx, SQLAddViewerPoints, login, amount).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", domain.ErrViewerNotFound, login)
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToAddPoints, err)
	}
	return balance, nil
}
