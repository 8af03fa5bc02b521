package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/testutil"
)

func TestElderPhotoRepository(t *testing.T) {
	h := testutil.NewTestHandle(t)
	elders := repository.NewElderRepository(h)
	repo := repository.NewElderPhotoRepository(h)
	ctx := context.Background()

	elderID, err := elders.Create(ctx, &model.Elder{Name: "Maria"})
	require.NoError(t, err)
	otherID, err := elders.Create(ctx, &model.Elder{Name: "José"})
	require.NoError(t, err)

	for _, p := range []*model.ElderPhoto{
		{ElderID: elderID, Name: "a.jpg", Path: "/p/a.jpg"},
		{ElderID: elderID, Name: "b.jpg", Path: "/p/b.jpg"},
		{ElderID: otherID, Name: "c.jpg", Path: "/p/c.jpg"},
	} {
		id, err := repo.Create(ctx, p)
		require.NoError(t, err)
		assert.Equal(t, p.ID, id)
		assert.False(t, p.CreatedAt.IsZero())
	}

	_, err = repo.Create(ctx, &model.ElderPhoto{ElderID: 404, Name: "x", Path: "/p/x"})
	assert.ErrorIs(t, err, repository.ErrElderNotFound)

	photos, err := repo.ByElderID(ctx, elderID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "a.jpg", photos[0].Name)

	t.Run("favorites first", func(t *testing.T) {
		require.NoError(t, repo.SetFavorite(ctx, photos[1].ID, true))

		got, err := repo.ByElderID(ctx, elderID)
		require.NoError(t, err)
		assert.Equal(t, "b.jpg", got[0].Name)
		assert.True(t, got[0].Favorite)

		assert.ErrorIs(t, repo.SetFavorite(ctx, 404, true), repository.ErrElderPhotoNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, photos[0].ID))
		_, err := repo.ByID(ctx, photos[0].ID)
		assert.ErrorIs(t, err, repository.ErrElderPhotoNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, photos[0].ID), repository.ErrElderPhotoNotFound)
	})

	t.Run("delete by elder returns paths", func(t *testing.T) {
		paths, err := repo.DeleteByElderID(ctx, elderID)
		require.NoError(t, err)
		assert.Equal(t, []string{"/p/b.jpg"}, paths)

		left, err := repo.ByElderID(ctx, otherID)
		require.NoError(t, err)
		assert.Len(t, left, 1)
	})
}
