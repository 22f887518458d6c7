package loots

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/repository"
)

// MockLootsRepository
type MockLootsRepository struct {
	mock.Mock
}

func (m *MockLootsRepository) InsertLoots(ctx context.Context, loots *domain.Loots) (bool, error) {
	args := m.Called(ctx, loots)
	return args.Bool(0), args.Error(1)
}

func (m *MockLootsRepository) GetLoots(ctx context.Context, id string) (*domain.Loots, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loots), args.Error(1)
}

func (m *MockLootsRepository) GetUncreditedLoots(ctx context.Context) ([]domain.Loots, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loots), args.Error(1)
}

func (m *MockLootsRepository) BeginCreditTx(ctx context.Context) (repository.LootsCreditTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.LootsCreditTx), args.Error(1)
}

// MockLootsCreditTx
type MockLootsCreditTx struct {
	mock.Mock
}

func (m *MockLootsCreditTx) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLootsCreditTx) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockLootsCreditTx) MarkCredited(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockLootsCreditTx) AddPoints(ctx context.Context, login string, amount int64) (int64, error) {
	args := m.Called(ctx, login, amount)
	return args.Get(0).(int64), args.Error(1)
}

// MockViewerRepository
type MockViewerRepository struct {
	mock.Mock
}

func (m *MockViewerRepository) GetViewer(ctx context.Context, login string) (*domain.Viewer, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Viewer), args.Error(1)
}

func (m *MockViewerRepository) UpsertViewer(ctx context.Context, login string) (*domain.Viewer, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Viewer), args.Error(1)
}

func (m *MockViewerRepository) AddPoints(ctx context.Context, login string, amount int64) (int64, error) {
	args := m.Called(ctx, login, amount)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockViewerRepository) GetLoginByLootsName(ctx context.Context, lootsName string) (string, error) {
	args := m.Called(ctx, lootsName)
	return args.String(0), args.Error(1)
}

func (m *MockViewerRepository) LinkLootsName(ctx context.Context, lootsName, login string) (int64, error) {
	args := m.Called(ctx, lootsName, login)
	return args.Get(0).(int64), args.Error(1)
}

// MockBus
type MockBus struct {
	mock.Mock
}

func (m *MockBus) Publish(ctx context.Context, evt event.Event) error {
	return m.Called(ctx, evt).Error(0)
}

func (m *MockBus) Subscribe(eventType event.Type, handler event.Handler) {
	m.Called(eventType, handler)
}

// MockAuthenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context) (SessionState, error) {
	args := m.Called(ctx)
	return args.Get(0).(SessionState), args.Error(1)
}

func (m *MockAuthenticator) State() SessionState {
	return m.Called().Get(0).(SessionState)
}

func (m *MockAuthenticator) Invalidate() {
	m.Called()
}

// MockFetcher
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) FetchOnce(ctx context.Context, session SessionState) ([]byte, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockAdmitter
type MockAdmitter struct {
	mock.Mock
}

func (m *MockAdmitter) Admit(ctx context.Context, candidates []domain.Loots) ([]domain.Loots, error) {
	args := m.Called(ctx, candidates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loots), args.Error(1)
}

// MockCrediter
type MockCrediter struct {
	mock.Mock
}

func (m *MockCrediter) CreditUnpaid(ctx context.Context) (*CreditResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CreditResult), args.Error(1)
}

// MockChannelStatus
type MockChannelStatus struct {
	mock.Mock
}

func (m *MockChannelStatus) IsLive(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
