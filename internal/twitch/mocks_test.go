package twitch

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockStreamLister struct {
	mock.Mock
}

func (m *MockStreamLister) GetStreams(ctx context.Context, login string) ([]Stream, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Stream), args.Error(1)
}
