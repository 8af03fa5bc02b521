package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files in a directory on disk. References are
// absolute file paths.
type LocalStorage struct {
	baseDir   string
	urlPrefix string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	abs, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
	}

	err = os.MkdirAll(abs, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		baseDir:   abs,
		urlPrefix: "/files/" + filepath.Base(abs) + "/",
	}, nil
}

// Dir returns the absolute directory files are stored in.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// URLPrefix is the path the directory is served under.
func (s *LocalStorage) URLPrefix() string {
	return s.urlPrefix
}

// Save writes to a temp file next to the target and renames it into
// place, so readers never see a partial file.
func (s *LocalStorage) Save(ctx context.Context, key string, r io.Reader) error {
	target := s.Ref(key)

	dir := filepath.Dir(target)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	_, err = io.Copy(tmp, readerWithContext(ctx, r))
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}

	err = tmp.Sync()
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync file: %w", err)
	}

	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}

	err = os.Rename(tmp.Name(), target)
	if err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	return nil
}

// Delete and Open take references read back from the database, which may
// predate the current storage directory.
func (s *LocalStorage) Delete(_ context.Context, ref string) error {
	err := os.Remove(ref)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *LocalStorage) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	f, err := os.Open(ref)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Ref maps key into the storage directory. Keys cannot escape it.
func (s *LocalStorage) Ref(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(path.Clean("/"+key)))
}

func (s *LocalStorage) URL(ref string) string {
	rel, err := filepath.Rel(s.baseDir, ref)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	return s.urlPrefix + filepath.ToSlash(rel)
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func readerWithContext(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

func (c *ctxReader) Read(p []byte) (int, error) {
	err := c.ctx.Err()
	if err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
