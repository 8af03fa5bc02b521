package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

func TestChecklistService(t *testing.T) {
	f := newFixture(t)

	elder, err := f.elders.Create(f.ctx, &model.Elder{Name: "Maria"})
	require.NoError(t, err)

	_, err = f.checklist.Open(f.ctx, 404)
	require.ErrorIs(t, err, repository.ErrElderNotFound)

	checklist, err := f.checklist.Open(f.ctx, elder.ID)
	require.NoError(t, err)
	assert.Len(t, checklist.Sections, len(model.DefaultChecklist))

	again, err := f.checklist.Open(f.ctx, elder.ID)
	require.NoError(t, err)
	assert.Equal(t, checklist.ID, again.ID)

	section, err := f.checklist.AddSection(f.ctx, elder.ID, " Evening ")
	require.NoError(t, err)
	assert.Equal(t, "Evening", section.Title)

	_, err = f.checklist.AddSection(f.ctx, elder.ID, "")
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)

	item, err := f.checklist.AddItem(f.ctx, section.ID, "Pajamas on")
	require.NoError(t, err)
	_, err = f.checklist.AddItem(f.ctx, section.ID, "  ")
	require.ErrorAs(t, err, &verr)

	toggled, err := f.checklist.ToggleItem(f.ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Checked)
	require.NoError(t, f.checklist.SetItemChecked(f.ctx, section.ID, item.ID, true))

	reset, err := f.checklist.Reset(f.ctx, elder.ID)
	require.NoError(t, err)
	checked, total := reset.CheckedCount()
	assert.Zero(t, checked)
	assert.Equal(t, 6, total)

	require.NoError(t, f.checklist.DeleteItem(f.ctx, item.ID))
	require.NoError(t, f.checklist.DeleteSection(f.ctx, section.ID))
	assert.ErrorIs(t, f.checklist.DeleteSection(f.ctx, section.ID), repository.ErrSectionNotFound)
}
