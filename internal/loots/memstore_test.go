package loots

import (
	"context"
	"sort"
	"sync"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// memoryStore is an in-process stand-in for the postgres repositories with
// the same insert-once and credit-once guarantees
type memoryStore struct {
	mu      sync.Mutex
	tips    map[string]domain.Loots
	points  map[string]int64
	links   map[string]string
	credits int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		tips:   make(map[string]domain.Loots),
		points: make(map[string]int64),
		links:  make(map[string]string),
	}
}

func (s *memoryStore) InsertLoots(_ context.Context, tip *domain.Loots) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tips[tip.ID]; ok {
		return false, nil
	}
	if tip.ViewerLogin != "" {
		if _, ok := s.points[tip.ViewerLogin]; !ok {
			return false, domain.ErrViewerNotFound
		}
	}
	s.tips[tip.ID] = *tip
	return true, nil
}

func (s *memoryStore) GetLoots(_ context.Context, id string) (*domain.Loots, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tip, ok := s.tips[id]
	if !ok {
		return nil, domain.ErrLootsNotFound
	}
	return &tip, nil
}

func (s *memoryStore) GetUncreditedLoots(_ context.Context) ([]domain.Loots, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Loots
	for _, tip := range s.tips {
		if !tip.Credited {
			out = append(out, tip)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryStore) BeginCreditTx(_ context.Context) (repository.LootsCreditTx, error) {
	return &memoryCreditTx{store: s}, nil
}

func (s *memoryStore) GetLoginByLootsName(_ context.Context, lootsName string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.links[lootsName], nil
}


func (s *memoryStore) link(lootsName, login string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[login] += 0
	s.links[lootsName] = login
}

func (s *memoryStore) balance(login string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points[login]
}

// memoryCreditTx buffers its effects and applies them on Commit
type memoryCreditTx struct {
	store  *memoryStore
	marked []string
	adds   map[string]int64
}

func (t *memoryCreditTx) MarkCredited(_ context.Context, id string) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	tip, ok := t.store.tips[id]
	if !ok || tip.Credited {
		return false, nil
	}
	// Claim the row immediately, as the conditional UPDATE does
	tip.Credited = true
	t.store.tips[id] = tip
	t.marked = append(t.marked, id)
	return true, nil
}

func (t *memoryCreditTx) AddPoints(_ context.Context, login string, amount int64) (int64, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if _, ok := t.store.points[login]; !ok {
		return 0, domain.ErrViewerNotFound
	}
	if t.adds == nil {
		t.adds = make(map[string]int64)
	}
	t.adds[login] += amount
	return t.store.points[login] + t.adds[login], nil
}

func (t *memoryCreditTx) Commit(_ context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for login, amount := range t.adds {
		t.store.points[login] += amount
	}
	t.store.credits += len(t.marked)
	t.marked, t.adds = nil, nil
	return nil
}

func (t *memoryCreditTx) Rollback(_ context.Context) error {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for _, id := range t.marked {
		tip := t.store.tips[id]
		tip.Credited = false
		t.store.tips[id] = tip
	}
	t.marked, t.adds = nil, nil
	return nil
}

func (s *memoryStore) GetViewer(_ context.Context, login string) (*domain.Viewer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	points, ok := s.points[login]
	if !ok {
		return nil, domain.ErrViewerNotFound
	}
	return &domain.Viewer{Login: login, Points: points}, nil
}

func (s *memoryStore) UpsertViewer(_ context.Context, login string) (*domain.Viewer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[login] += 0
	return &domain.Viewer{Login: login, Points: s.points[login]}, nil
}

func (s *memoryStore) AddPoints(_ context.Context, login string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.points[login]; !ok {
		return 0, domain.ErrViewerNotFound
	}
	s.points[login] += amount
	return s.points[login], nil
}

func (s *memoryStore) LinkLootsName(_ context.Context, lootsName, login string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.points[login] += 0
	s.links[lootsName] = login
	var attached int64
	for id, tip := range s.tips {
		if tip.ViewerLogin == "" && NameKey(tip.LootsName) == lootsName {
			tip.ViewerLogin = login
			s.tips[id] = tip
			attached++
		}
	}
	return attached, nil
}
