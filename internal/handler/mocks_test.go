package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/loots"
	"github.com/osse101/FerretBot_Go/internal/prizepool"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// MockPrizeService mocks prizepool.Service
type MockPrizeService struct {
	mock.Mock
}

func (m *MockPrizeService) RollPrize(ctx context.Context, source string) (*prizepool.DrawResult, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*prizepool.DrawResult), args.Error(1)
}

func (m *MockPrizeService) ListPools(ctx context.Context) ([]domain.PrizePool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PrizePool), args.Error(1)
}

func (m *MockPrizeService) SetChance(ctx context.Context, poolType int, value float64) (*domain.PrizePool, error) {
	args := m.Called(ctx, poolType, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrizePool), args.Error(1)
}

func (m *MockPrizeService) Consume(ctx context.Context, poolType int, prizeName string) (*domain.PrizePool, error) {
	args := m.Called(ctx, poolType, prizeName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PrizePool), args.Error(1)
}

// MockCrediter mocks loots.UnpaidCrediter
type MockCrediter struct {
	mock.Mock
}

func (m *MockCrediter) CreditUnpaid(ctx context.Context) (*loots.CreditResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loots.CreditResult), args.Error(1)
}

// MockUnpaidLister mocks UnpaidLister
type MockUnpaidLister struct {
	mock.Mock
}

func (m *MockUnpaidLister) GetUncreditedLoots(ctx context.Context) ([]domain.Loots, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loots), args.Error(1)
}

// MockLinker mocks NameLinker
type MockLinker struct {
	mock.Mock
}

func (m *MockLinker) Link(ctx context.Context, lootsName, login string) (int64, error) {
	args := m.Called(ctx, lootsName, login)
	return args.Get(0).(int64), args.Error(1)
}
