package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	database, err := Init("sqlite", path+"?_pragma=busy_timeout(5000)&_txlock=immediate")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestInitCreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	database, err := Init("sqlite", filepath.Join(dir, "app.db")+"?_pragma=journal_mode(WAL)")
	require.NoError(t, err)
	defer func() { _ = database.Close() }()

	_, err = os.Stat(dir)
	assert.NoError(t, err)
}

func TestSqlitePath(t *testing.T) {
	assert.Equal(t, "./data/app.db", sqlitePath("./data/app.db?_pragma=foreign_keys(1)"))
	assert.Equal(t, "/tmp/app.db", sqlitePath("file:/tmp/app.db"))
}

func TestHandleInTx(t *testing.T) {
	h := NewHandle(openTestDB(t), "sqlite")
	ctx := context.Background()

	require.NoError(t, h.Do(ctx, func(q Queryer) error {
		_, err := q.ExecContext(ctx, `CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT)`)
		return err
	}))

	count := func() int {
		var n int
		require.NoError(t, h.Do(ctx, func(q Queryer) error {
			return q.GetContext(ctx, &n, `SELECT COUNT(*) FROM things`)
		}))
		return n
	}

	t.Run("commits on success", func(t *testing.T) {
		err := h.InTx(ctx, func(q Queryer) error {
			_, err := q.ExecContext(ctx, `INSERT INTO things (name) VALUES (?)`, "kept")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, count())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := h.InTx(ctx, func(q Queryer) error {
			_, err := q.ExecContext(ctx, `INSERT INTO things (name) VALUES (?)`, "dropped")
			require.NoError(t, err)
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, count())
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = h.InTx(ctx, func(q Queryer) error {
				_, _ = q.ExecContext(ctx, `INSERT INTO things (name) VALUES (?)`, "dropped")
				panic("boom")
			})
		})
		assert.Equal(t, 1, count())
	})
}

func TestHandleDoReturnsCallbackError(t *testing.T) {
	h := NewHandle(openTestDB(t), "sqlite")
	boom := errors.New("boom")

	err := h.Do(context.Background(), func(q Queryer) error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestHandleDoHonorsCanceledContext(t *testing.T) {
	h := NewHandle(openTestDB(t), "sqlite")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := h.Do(ctx, func(q Queryer) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
}
