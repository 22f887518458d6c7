package prizepool

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// memoryRepo is an in-process repository.PrizePool. A transaction holds the
// repo mutex from Begin until Commit or Rollback.
type memoryRepo struct {
	mu        sync.Mutex
	pools     map[int]domain.PrizePool
	commits   int
	failSave  error
	txOpen    bool
	lastSaved []int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{pools: make(map[int]domain.PrizePool)}
}

func (r *memoryRepo) put(p domain.PrizePool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[p.Type] = *p.Clone()
}

func (r *memoryRepo) get(poolType int) (domain.PrizePool, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[poolType]
	if !ok {
		return p, false
	}
	return *p.Clone(), true
}

func (r *memoryRepo) ListPrizePools(_ context.Context) ([]domain.PrizePool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.PrizePool, 0, len(r.pools))
	for _, p := range r.pools {
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}

func (r *memoryRepo) BeginPrizePoolTx(_ context.Context) (repository.PrizePoolTx, error) {
	r.mu.Lock()
	r.txOpen = true
	return &memoryTx{repo: r, staged: make(map[int]domain.PrizePool)}, nil
}

type memoryTx struct {
	repo   *memoryRepo
	staged map[int]domain.PrizePool
	done   bool
}

func (t *memoryTx) GetPrizePoolForUpdate(_ context.Context, poolType int) (*domain.PrizePool, error) {
	if p, ok := t.staged[poolType]; ok {
		return p.Clone(), nil
	}
	if p, ok := t.repo.pools[poolType]; ok {
		return p.Clone(), nil
	}
	return nil, nil
}

func (t *memoryTx) SavePrizePool(_ context.Context, pool *domain.PrizePool) error {
	if t.repo.failSave != nil {
		return t.repo.failSave
	}
	t.staged[pool.Type] = *pool.Clone()
	return nil
}

func (t *memoryTx) Commit(_ context.Context) error {
	if t.done {
		return errors.New("tx closed")
	}
	t.repo.lastSaved = t.repo.lastSaved[:0]
	for k, v := range t.staged {
		t.repo.pools[k] = v
		t.repo.lastSaved = append(t.repo.lastSaved, k)
	}
	t.repo.commits++
	t.finish()
	return nil
}

func (t *memoryTx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.finish()
	return nil
}

func (t *memoryTx) finish() {
	t.done = true
	t.repo.txOpen = false
	t.repo.mu.Unlock()
}

// scriptedRandom replays fixed Float64 values and leaves shuffles as identity
type scriptedRandom struct {
	values []float64
	calls  int
}

func (r *scriptedRandom) Float64() float64 {
	v := r.values[r.calls%len(r.values)]
	r.calls++
	return v
}

func (r *scriptedRandom) Shuffle(int, func(i, j int)) {}
