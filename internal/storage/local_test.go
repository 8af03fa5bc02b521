package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/config"
)

func TestLocalStorage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "photos")
	s, err := NewLocalStorage(dir)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("save open delete", func(t *testing.T) {
		ref := s.Ref("elder-1/a.jpg")
		assert.Equal(t, filepath.Join(dir, "elder-1", "a.jpg"), ref)

		require.NoError(t, s.Save(ctx, "elder-1/a.jpg", strings.NewReader("jpeg bytes")))

		rc, err := s.Open(ctx, ref)
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "jpeg bytes", string(data))

		require.NoError(t, s.Delete(ctx, ref))
		_, err = s.Open(ctx, ref)
		assert.ErrorIs(t, err, ErrNotFound)

		assert.NoError(t, s.Delete(ctx, ref), "deleting twice is fine")
	})

	t.Run("save replaces without leftovers", func(t *testing.T) {
		require.NoError(t, s.Save(ctx, "b.jpg", strings.NewReader("first")))
		require.NoError(t, s.Save(ctx, "b.jpg", strings.NewReader("second")))

		data, err := os.ReadFile(s.Ref("b.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(data))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		for _, e := range entries {
			assert.False(t, strings.HasPrefix(e.Name(), ".upload-"), e.Name())
		}
	})

	t.Run("canceled save writes nothing", func(t *testing.T) {
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := s.Save(canceled, "c.jpg", strings.NewReader("data"))
		require.ErrorIs(t, err, context.Canceled)
		_, err = os.Stat(s.Ref("c.jpg"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("keys cannot escape the directory", func(t *testing.T) {
		assert.Equal(t, filepath.Join(dir, "etc", "passwd"), s.Ref("../../etc/passwd"))
	})

	t.Run("urls", func(t *testing.T) {
		assert.Equal(t, "/files/photos/", s.URLPrefix())
		assert.Equal(t, "/files/photos/elder-1/a.jpg", s.URL(s.Ref("elder-1/a.jpg")))
		assert.Empty(t, s.URL("/somewhere/else.jpg"))
	})
}

func TestNewSelectsLocal(t *testing.T) {
	cfg := &config.Config{StorageDriver: config.StorageLocal}
	s, err := New(cfg, filepath.Join(t.TempDir(), "reports"))
	require.NoError(t, err)

	local, ok := s.(*LocalStorage)
	require.True(t, ok)
	assert.Equal(t, "/files/reports/", local.URLPrefix())
}

func TestS3Ref(t *testing.T) {
	s := &S3Storage{prefix: "photos"}
	assert.Equal(t, "photos/a/b.jpg", s.Ref("a/b.jpg"))
	assert.Equal(t, "photos/b.jpg", s.Ref("../b.jpg"))

	bare := &S3Storage{}
	assert.Equal(t, "b.jpg", bare.Ref("/b.jpg"))
}
