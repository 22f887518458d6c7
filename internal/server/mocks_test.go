package server

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/loots"
	"github.com/osse101/FerretBot_Go/internal/prizepool"
)

type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

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

type MockLootsAdmin struct {
	mock.Mock
}

func (m *MockLootsAdmin) CreditUnpaid(ctx context.Context) (*loots.CreditResult, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*loots.CreditResult), args.Error(1)
}

func (m *MockLootsAdmin) GetUncreditedLoots(ctx context.Context) ([]domain.Loots, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loots), args.Error(1)
}

func (m *MockLootsAdmin) Link(ctx context.Context, lootsName, login string) (int64, error) {
	args := m.Called(ctx, lootsName, login)
	return args.Get(0).(int64), args.Error(1)
}
