package service_test

import (
	"image/jpeg"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

func TestGalleryServiceAdd(t *testing.T) {
	f := newFixture(t)

	elder, err := f.elders.Create(f.ctx, &model.Elder{Name: "Maria"})
	require.NoError(t, err)

	photo, err := f.gallery.Add(f.ctx, elder.ID, "  sunday lunch.png", pngReader(t, 3000, 1500))
	require.NoError(t, err)
	assert.Equal(t, "sunday_lunch.png", photo.Name)
	assert.Equal(t, filepath.Join(f.photoStore.Dir(), "gallery"), filepath.Dir(photo.Path))
	assert.False(t, photo.Favorite)

	rc, err := f.gallery.Open(f.ctx, photo.ID)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)

	unnamed, err := f.gallery.Add(f.ctx, elder.ID, "", pngReader(t, 10, 10))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(unnamed.Name, "photo_"))

	_, err = f.gallery.Add(f.ctx, 404, "x.png", pngReader(t, 10, 10))
	assert.ErrorIs(t, err, repository.ErrElderNotFound)

	_, err = f.gallery.Add(f.ctx, elder.ID, "notes.txt", strings.NewReader("hello"))
	var verr *validation.Error
	assert.ErrorAs(t, err, &verr)

	photos, err := f.gallery.List(f.ctx, elder.ID)
	require.NoError(t, err)
	assert.Len(t, photos, 2)
}

func TestGalleryServiceFavoriteAndDelete(t *testing.T) {
	f := newFixture(t)

	elder, err := f.elders.Create(f.ctx, &model.Elder{Name: "Maria"})
	require.NoError(t, err)
	first, err := f.gallery.Add(f.ctx, elder.ID, "a.png", pngReader(t, 10, 10))
	require.NoError(t, err)
	second, err := f.gallery.Add(f.ctx, elder.ID, "b.png", pngReader(t, 10, 10))
	require.NoError(t, err)

	fav, err := f.gallery.SetFavorite(f.ctx, second.ID, true)
	require.NoError(t, err)
	assert.True(t, fav.Favorite)

	photos, err := f.gallery.List(f.ctx, elder.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, second.ID, photos[0].ID)
	assert.Equal(t, first.ID, photos[1].ID)

	_, err = f.gallery.SetFavorite(f.ctx, 404, true)
	assert.ErrorIs(t, err, repository.ErrElderPhotoNotFound)

	require.NoError(t, f.gallery.Delete(f.ctx, first.ID))
	assert.NoFileExists(t, first.Path)
	assert.ErrorIs(t, f.gallery.Delete(f.ctx, first.ID), repository.ErrElderPhotoNotFound)
}

func TestGalleryServiceSetAsProfile(t *testing.T) {
	f := newFixture(t)

	elder, err := f.elders.Create(f.ctx, &model.Elder{Name: "Maria"})
	require.NoError(t, err)
	old, err := f.photos.SetPhoto(f.ctx, elder.ID, "old.png", pngReader(t, 10, 10))
	require.NoError(t, err)
	shot, err := f.gallery.Add(f.ctx, elder.ID, "new.png", pngReader(t, 200, 100))
	require.NoError(t, err)

	image, err := f.gallery.SetAsProfile(f.ctx, shot.ID)
	require.NoError(t, err)
	assert.Equal(t, elder.ID, image.ElderID)
	assert.NotEqual(t, shot.Path, image.Path)
	assert.NoFileExists(t, old.Path)
	assert.FileExists(t, shot.Path)

	// the profile copy survives removing the gallery photo
	require.NoError(t, f.gallery.Delete(f.ctx, shot.ID))
	rc, err := f.photos.Open(f.ctx, elder.ID)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, 200, cfg.Width)

	_, err = f.gallery.SetAsProfile(f.ctx, shot.ID)
	assert.ErrorIs(t, err, repository.ErrElderPhotoNotFound)
}
