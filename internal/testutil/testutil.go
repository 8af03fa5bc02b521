package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/config"
	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/storage"
)

// NewTestHandle opens a fresh SQLite file in a temp dir with all
// migrations applied. A file is used instead of :memory: because every
// pooled connection to :memory: sees its own empty database.
func NewTestHandle(t *testing.T) *db.Handle {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := db.Init("sqlite", path+"?_pragma=busy_timeout(5000)&_txlock=immediate")
	require.NoError(t, err, "opening test database")

	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	h := db.NewHandle(database, "sqlite")
	require.NoError(t, h.EnsureSchema(context.Background()), "migrating test database")
	return h
}

// NewTestStorage returns local storage rooted in a temp dir.
func NewTestStorage(t *testing.T, name string) *storage.LocalStorage {
	t.Helper()

	s, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), name))
	require.NoError(t, err, "creating test storage")
	return s
}

// NewTestConfig returns a development config that needs no environment.
func NewTestConfig(t *testing.T) *config.Config {
	t.Helper()

	dataDir := t.TempDir()
	return &config.Config{
		AppName:           "Cuidador",
		AppEnv:            "development",
		Port:              "0",
		DBDriver:          "sqlite",
		DataDir:           dataDir,
		PhotoDir:          filepath.Join(dataDir, "photos"),
		ReportDir:         filepath.Join(dataDir, "reports"),
		StorageDriver:     config.StorageLocal,
		AutoMigrate:       true,
		PhotoMaxDimension: 1024,
		EmergencyNumbers:  config.ParseEmergencyNumbers("SAMU=192,Police=190,Firefighters=193"),
	}
}
