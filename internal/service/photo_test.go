package service_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

func pngReader(t *testing.T, w, h int) io.Reader {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func TestPhotoServiceSetPhoto(t *testing.T) {
	f := newFixture(t)

	elder, err := f.elders.Create(f.ctx, &model.Elder{Name: "Maria"})
	require.NoError(t, err)

	image1, err := f.photos.SetPhoto(f.ctx, elder.ID, "big.png", pngReader(t, 2000, 1000))
	require.NoError(t, err)
	assert.Equal(t, elder.ID, image1.ElderID)
	assert.True(t, strings.HasPrefix(image1.Path, f.photoStore.Dir()))
	assert.True(t, strings.HasSuffix(image1.Path, ".jpg"))

	rc, err := f.photos.Open(f.ctx, elder.ID)
	require.NoError(t, err)
	cfg, err := jpeg.DecodeConfig(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 512, cfg.Height)

	assert.Equal(t, f.photoStore.URLPrefix()+image1.Path[len(f.photoStore.Dir())+1:], f.photos.URL(image1))

	t.Run("replacing deletes the old file", func(t *testing.T) {
		image2, err := f.photos.SetPhoto(f.ctx, elder.ID, "small.png", pngReader(t, 100, 80))
		require.NoError(t, err)
		assert.NotEqual(t, image1.Path, image2.Path)
		assert.NoFileExists(t, image1.Path)
		assert.FileExists(t, image2.Path)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := f.photos.SetPhoto(f.ctx, elder.ID, "notes.txt", strings.NewReader("hello"))
		var verr *validation.Error
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("unknown elder", func(t *testing.T) {
		_, err := f.photos.SetPhoto(f.ctx, 404, "x.png", pngReader(t, 10, 10))
		assert.ErrorIs(t, err, repository.ErrElderNotFound)
	})
}

func TestPhotoServiceMissingFile(t *testing.T) {
	f := newFixture(t)

	elder, err := f.elders.Create(f.ctx, &model.Elder{Name: "Maria"})
	require.NoError(t, err)

	// a reference migrated from an older install whose file is gone
	_, err = f.imageRepo.Upsert(f.ctx, elder.ID, "/gone/maria.jpg")
	require.NoError(t, err)

	_, err = f.photos.Open(f.ctx, elder.ID)
	assert.ErrorIs(t, err, repository.ErrProfileImageNotFound)

	require.NoError(t, f.photos.RemovePhoto(f.ctx, elder.ID))
	_, err = f.photos.Photo(f.ctx, elder.ID)
	assert.ErrorIs(t, err, repository.ErrProfileImageNotFound)
	assert.ErrorIs(t, f.photos.RemovePhoto(f.ctx, elder.ID), repository.ErrProfileImageNotFound)
}
