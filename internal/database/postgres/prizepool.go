package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// PrizePoolRepository implements repository.PrizePool for PostgreSQL
type PrizePoolRepository struct {
	db      *pgxpool.Pool
	lockKey int64
}

// NewPrizePoolRepository creates a new PrizePoolRepository
func NewPrizePoolRepository(db *pgxpool.Pool) *PrizePoolRepository {
	return &PrizePoolRepository{
		db:      db,
		lockKey: advisoryLockKey(PrizePoolLockName),
	}
}

func (r *PrizePoolRepository) ListPrizePools(ctx context.Context) ([]domain.PrizePool, error) {
	rows, err := r.db.Query(ctx, SQLSelectPrizePools)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPrizePools, err)
	}
	defer rows.Close()

	var pools []domain.PrizePool
	for rows.Next() {
		p, err := scanPrizePool(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPrizePools, err)
		}
		pools = append(pools, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListPrizePools, err)
	}
	return pools, nil
}

// BeginPrizePoolTx starts a transaction holding the draw advisory lock.
// The lock is released when the transaction ends.
func (r *PrizePoolRepository) BeginPrizePoolTx(ctx context.Context) (repository.PrizePoolTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}

	if _, err := tx.Exec(ctx, SQLAdvisoryLock, r.lockKey); err != nil {
		SafeRollback(ctx, tx)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToAcquireLock, err)
	}

	return &prizePoolTx{pgTx: pgTx{tx: tx}}, nil
}

type prizePoolTx struct {
	pgTx
}

func (t *prizePoolTx) GetPrizePoolForUpdate(ctx context.Context, poolType int) (*domain.PrizePool, error) {
	p, err := scanPrizePool(t.tx.QueryRow(ctx, SQLSelectPrizePoolForUpdate, poolType))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPrizePool, err)
	}
	return p, nil
}

func (t *prizePoolTx) SavePrizePool(ctx context.Context, pool *domain.PrizePool) error {
	prizes := pool.Prizes
	if prizes == nil {
		prizes = []domain.Prize{}
	}
	data, err := json.Marshal(prizes)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSavePrizePool, err)
	}

	if _, err := t.tx.Exec(ctx, SQLUpsertPrizePool, pool.Type, pool.Chance, pool.CurrentChance, data); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSavePrizePool, err)
	}
	return nil
}

func scanPrizePool(row rowScanner) (*domain.PrizePool, error) {
	var (
		p    domain.PrizePool
		data []byte
	)
	if err := row.Scan(&p.Type, &p.Chance, &p.CurrentChance, &data); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &p.Prizes); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToDecodePrizes, err)
	}
	return &p, nil
}
