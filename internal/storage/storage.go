package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/templui/cuidador/internal/config"
)

var ErrNotFound = errors.New("stored file not found")

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores the content under key. The value to persist in the
	// database is Ref(key).
	Save(ctx context.Context, key string, r io.Reader) error

	// Delete removes a stored file. Missing files are not an error.
	Delete(ctx context.Context, ref string) error

	// Open streams a stored file back. Returns ErrNotFound when missing.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Ref returns the reference recorded for key
	Ref(key string) string

	// URL returns a URL clients can fetch the file from
	URL(ref string) string
}

// New returns the storage backend selected by cfg.StorageDriver. Files of
// one kind (photos, reports) live under baseDir locally, or under the
// matching key prefix in the bucket.
func New(cfg *config.Config, baseDir string) (Storage, error) {
	if cfg.StorageDriver == config.StorageS3 {
		slog.Info("initializing S3 storage",
			"bucket", cfg.S3Bucket,
			"region", cfg.S3Region,
			"endpoint", cfg.S3Endpoint,
			"prefix", filepath.Base(baseDir),
		)
		kind := filepath.Base(baseDir)
		expiry := cfg.S3PresignExpiryPrivate
		if kind == "photos" {
			expiry = cfg.S3PresignExpiryPublic
		}
		return NewS3Storage(context.Background(), S3Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			Prefix:    kind,
			URLExpiry: expiry,
		})
	}

	slog.Info("initializing local storage", "dir", baseDir)
	return NewLocalStorage(baseDir)
}
