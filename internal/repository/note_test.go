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

func countNotes(t *testing.T, repo repository.NoteRepository) int {
	t.Helper()
	all, err := repo.All(context.Background())
	require.NoError(t, err)
	return len(all)
}

func TestNoteRepository(t *testing.T) {
	h := testutil.NewTestHandle(t)
	ctx := context.Background()
	repo := repository.NewNoteRepository(h)

	_, err := repo.MostRecent(ctx)
	require.ErrorIs(t, err, repository.ErrNoteNotFound)

	t.Run("saves without id insert distinct rows", func(t *testing.T) {
		first := &model.Note{Title: "Monday", Body: "Slept well"}
		_, err := repo.Create(ctx, first)
		require.NoError(t, err)

		second := &model.Note{Title: "Tuesday", Body: "Short walk"}
		_, err = repo.Create(ctx, second)
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, 2, countNotes(t, repo))

		latest, err := repo.MostRecent(ctx)
		require.NoError(t, err)
		assert.Equal(t, second.ID, latest.ID)
		assert.Equal(t, "Tuesday", latest.Title)
	})

	t.Run("saves with id update in place", func(t *testing.T) {
		note, err := repo.ByID(ctx, 1)
		require.NoError(t, err)

		note.Body = "Slept well, woke at 7"
		require.NoError(t, repo.Update(ctx, note))
		assert.Equal(t, 2, note.Version)

		note.Body = "Slept well, woke at 7:30"
		require.NoError(t, repo.Update(ctx, note))
		assert.Equal(t, 3, note.Version)

		assert.Equal(t, 2, countNotes(t, repo))

		got, err := repo.ByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Slept well, woke at 7:30", got.Body)

		latest, err := repo.MostRecent(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, latest.ID)
	})

	t.Run("stale save conflicts", func(t *testing.T) {
		note, err := repo.ByID(ctx, 2)
		require.NoError(t, err)
		stale := *note

		note.Title = "Tuesday (edited)"
		require.NoError(t, repo.Update(ctx, note))

		stale.Title = "Tuesday (other)"
		assert.ErrorIs(t, repo.Update(ctx, &stale), repository.ErrNoteConflict)
	})

	t.Run("missing note", func(t *testing.T) {
		assert.ErrorIs(t, repo.Update(ctx, &model.Note{ID: 404, Title: "x"}), repository.ErrNoteNotFound)
		assert.ErrorIs(t, repo.Update(ctx, &model.Note{ID: 404, Title: "x", Version: 1}), repository.ErrNoteNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, 404), repository.ErrNoteNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, 2))
		assert.Equal(t, 1, countNotes(t, repo))
	})
}
