package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

func TestNoteServiceSave(t *testing.T) {
	f := newFixture(t)

	first, err := f.notes.Save(f.ctx, &model.Note{Title: "Monday", Body: "Slept **well**"})
	require.NoError(t, err)
	second, err := f.notes.Save(f.ctx, &model.Note{Title: "Tuesday", Body: "Walk"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	latest, err := f.notes.Latest(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	first.Body = "Slept **well** until 7"
	_, err = f.notes.Save(f.ctx, first)
	require.NoError(t, err)

	all, err := f.notes.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	latest, err = f.notes.Latest(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)

	html, err := f.notes.RenderHTML(f.ctx, first.ID)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<strong>well</strong>")

	_, err = f.notes.Save(f.ctx, &model.Note{Title: "  "})
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)

	_, err = f.notes.Save(f.ctx, &model.Note{ID: 404, Title: "Ghost"})
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)

	require.NoError(t, f.notes.Delete(f.ctx, second.ID))
	_, err = f.notes.ByID(f.ctx, second.ID)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
}

func TestNoteRenderEscapesHTML(t *testing.T) {
	f := newFixture(t)

	note, err := f.notes.Save(f.ctx, &model.Note{Title: "x", Body: "<script>alert(1)</script>"})
	require.NoError(t, err)

	html, err := f.notes.RenderHTML(f.ctx, note.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(html), "<script>")
}
