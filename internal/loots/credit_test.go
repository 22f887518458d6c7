package loots

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FerretBot_Go/internal/concurrency"
	"github.com/osse101/FerretBot_Go/internal/domain"
	"github.com/osse101/FerretBot_Go/internal/event"
	"github.com/osse101/FerretBot_Go/internal/twitch"
)

const testPoints = int64(100)

func seedLinkedTip(t *testing.T, store *memoryStore, id, lootsName, login string) {
	t.Helper()
	store.link(NameKey(lootsName), login)
	gate := NewGate(store, store, nil, nil, time.UTC)
	admitted, err := gate.Admit(context.Background(), []domain.Loots{{ID: id, LootsName: lootsName}})
	require.NoError(t, err)
	require.Len(t, admitted, 1)
}

func TestCrediter_DoubleAdmitCreditedOnce(t *testing.T) {
	store := newMemoryStore()
	seedLinkedTip(t, store, "t1", "alice", "alice_tv")

	gate := NewGate(store, store, nil, nil, time.UTC)
	again, err := gate.Admit(context.Background(), []domain.Loots{{ID: "t1", LootsName: "alice"}})
	require.NoError(t, err)
	assert.Empty(t, again)

	crediter := NewCrediter(store, nil, nil, nil, "ferretchannel", testPoints)
	for i := 0; i < 3; i++ {
		_, err := crediter.CreditUnpaid(context.Background())
		require.NoError(t, err)
	}

	assert.Equal(t, testPoints, store.balance("alice_tv"))
	assert.Equal(t, 1, store.credits)
}

func TestCrediter_ConcurrentCallersNeverDoubleCredit(t *testing.T) {
	store := newMemoryStore()
	for _, id := range []string{"t1", "t2", "t3"} {
		seedLinkedTip(t, store, id, "alice", "alice_tv")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Separate lock managers so the repository guarantees are what is tested
			c := NewCrediter(store, nil, concurrency.NewLockManager(), nil, "ferretchannel", testPoints)
			_, _ = c.CreditUnpaid(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 3*testPoints, store.balance("alice_tv"))
	assert.Equal(t, 3, store.credits)
}

func TestCrediter_SkipsSelfAndUnlinked(t *testing.T) {
	store := newMemoryStore()
	seedLinkedTip(t, store, "self", "owner", "FerretChannel")
	gate := NewGate(store, store, nil, nil, time.UTC)
	_, err := gate.Admit(context.Background(), []domain.Loots{{ID: "anon", LootsName: "stranger"}})
	require.NoError(t, err)

	result, err := NewCrediter(store, nil, nil, nil, "ferretchannel", testPoints).CreditUnpaid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &CreditResult{SkippedSelf: 1, SkippedUnlinked: 1}, result)

	self, err := store.GetLoots(context.Background(), "self")
	require.NoError(t, err)
	assert.False(t, self.Credited)
	assert.Zero(t, store.balance("FerretChannel"))
}

func TestCrediter_OfflineChannelPostpones(t *testing.T) {
	loots := new(MockLootsRepository)
	status := new(MockChannelStatus)
	ctx := context.Background()
	status.On("IsLive", ctx).Return(false, nil)

	result, err := NewCrediter(loots, nil, nil, status, "c", testPoints).CreditUnpaid(ctx)
	require.NoError(t, err)
	assert.True(t, result.Offline)
	loots.AssertNotCalled(t, "GetUncreditedLoots", mock.Anything)
}

type fixedStreams []twitch.Stream

func (f fixedStreams) GetStreams(context.Context, string) ([]twitch.Stream, error) {
	return f, nil
}

func TestCrediter_LiveOnlyWithStreamStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("offline stream leaves tips unpaid", func(t *testing.T) {
		store := newMemoryStore()
		seedLinkedTip(t, store, "t1", "Alice", "alice")
		status := twitch.NewStreamStatus(fixedStreams{}, "ferret", time.Minute)

		result, err := NewCrediter(store, nil, nil, status, "ferret", testPoints).CreditUnpaid(ctx)

		require.NoError(t, err)
		assert.True(t, result.Offline)
		assert.Zero(t, store.balance("alice"))
	})

	t.Run("live stream pays tips", func(t *testing.T) {
		store := newMemoryStore()
		seedLinkedTip(t, store, "t1", "Alice", "alice")
		status := twitch.NewStreamStatus(fixedStreams{{Type: twitch.StreamTypeLive}}, "ferret", time.Minute)

		result, err := NewCrediter(store, nil, nil, status, "ferret", testPoints).CreditUnpaid(ctx)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Credited)
		assert.Equal(t, testPoints, store.balance("alice"))
	})
}

func TestCrediter_StatusError(t *testing.T) {
	status := new(MockChannelStatus)
	ctx := context.Background()
	status.On("IsLive", ctx).Return(false, errors.New("helix down"))

	_, err := NewCrediter(new(MockLootsRepository), nil, nil, status, "c", testPoints).CreditUnpaid(ctx)
	assert.Error(t, err)
}

func TestCrediter_AlreadyCreditedByOtherWorker(t *testing.T) {
	loots := new(MockLootsRepository)
	tx := new(MockLootsCreditTx)
	ctx := context.Background()

	loots.On("GetUncreditedLoots", ctx).Return([]domain.Loots{{ID: "t1", ViewerLogin: "v"}}, nil)
	loots.On("BeginCreditTx", ctx).Return(tx, nil)
	tx.On("MarkCredited", ctx, "t1").Return(false, nil)
	tx.On("Rollback", ctx).Return(nil)

	result, err := NewCrediter(loots, nil, nil, nil, "c", testPoints).CreditUnpaid(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AlreadyCredited)
	tx.AssertNotCalled(t, "AddPoints", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertExpectations(t)
}

func TestCrediter_AddPointsFailureRollsBackAndContinues(t *testing.T) {
	loots := new(MockLootsRepository)
	failing := new(MockLootsCreditTx)
	ok := new(MockLootsCreditTx)
	bus := new(MockBus)
	ctx := context.Background()

	loots.On("GetUncreditedLoots", ctx).Return([]domain.Loots{
		{ID: "t1", ViewerLogin: "ghost"},
		{ID: "t2", ViewerLogin: "v"},
	}, nil)
	loots.On("BeginCreditTx", ctx).Return(failing, nil).Once()
	loots.On("BeginCreditTx", ctx).Return(ok, nil).Once()

	failing.On("MarkCredited", ctx, "t1").Return(true, nil)
	failing.On("AddPoints", ctx, "ghost", testPoints).Return(int64(0), domain.ErrViewerNotFound)
	failing.On("Rollback", ctx).Return(nil)

	ok.On("MarkCredited", ctx, "t2").Return(true, nil)
	ok.On("AddPoints", ctx, "v", testPoints).Return(testPoints, nil)
	ok.On("Commit", ctx).Return(nil)

	bus.On("Publish", ctx, mock.MatchedBy(func(e event.Event) bool {
		p, isCredit := e.Payload.(event.LootsCreditedPayloadV1)
		return isCredit && p.LootsID == "t2" && p.ViewerLogin == "v" && p.Points == testPoints
	})).Return(nil).Once()

	result, err := NewCrediter(loots, bus, nil, nil, "c", testPoints).CreditUnpaid(ctx)
	require.ErrorIs(t, err, domain.ErrViewerNotFound)
	assert.Equal(t, 1, result.Credited)

	failing.AssertExpectations(t)
	failing.AssertNotCalled(t, "Commit", mock.Anything)
	ok.AssertExpectations(t)
	bus.AssertExpectations(t)
}
