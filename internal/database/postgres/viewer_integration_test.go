package postgres

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/FerretBot_Go/internal/domain"
)

func TestViewerRepository_UpsertAndAddPoints(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	repo := NewViewerRepository(pool)

	login := uniqueName(t, "viewer")
	v, err := repo.UpsertViewer(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, int64(0), v.Points)

	balance, err := repo.AddPoints(ctx, login, 150)
	require.NoError(t, err)
	assert.Equal(t, int64(150), balance)

	v, err = repo.UpsertViewer(ctx, login)
	require.NoError(t, err)
	assert.Equal(t, int64(150), v.Points, "upsert must not reset the balance")

	_, err = repo.AddPoints(ctx, uniqueName(t, "nobody"), 1)
	assert.ErrorIs(t, err, domain.ErrViewerNotFound)

	_, err = repo.GetViewer(ctx, uniqueName(t, "nobody"))
	assert.ErrorIs(t, err, domain.ErrViewerNotFound)
}

func TestViewerRepository_LinkBackfillsTips(t *testing.T) {
	pool := requirePool(t)
	ctx := context.Background()
	viewers := NewViewerRepository(pool)
	loots := NewLootsRepository(pool)

	name := uniqueName(t, "Dana")
	login := strings.ToLower(uniqueName(t, "dana_tv"))

	for _, id := range []string{uniqueName(t, "a"), uniqueName(t, "b")} {
		_, err := loots.InsertLoots(ctx, &domain.Loots{ID: id, LootsName: name})
		require.NoError(t, err)
	}

	linked, err := viewers.GetLoginByLootsName(ctx, strings.ToLower(name))
	require.NoError(t, err)
	assert.Empty(t, linked)

	n, err := viewers.LinkLootsName(ctx, strings.ToLower(name), login)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	linked, err = viewers.GetLoginByLootsName(ctx, strings.ToLower(name))
	require.NoError(t, err)
	assert.Equal(t, login, linked)

	n, err = viewers.LinkLootsName(ctx, strings.ToLower(name), login)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "already linked tips are not touched again")
}
