package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func Init(driver, connection string) (*sqlx.DB, error) {
	// SQLite: create data directory if needed
	if driver == "sqlite" {
		dir := filepath.Dir(sqlitePath(connection))
		err := os.MkdirAll(dir, 0755)
		if err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect(driver, connection)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	// The engine serializes writers at the file level; a small pool keeps
	// readers concurrent without piling up writers behind busy_timeout.
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	slog.Info("database connected", "driver", driver)

	err = db.Ping()
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

func Close(db *sqlx.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// sqlitePath strips the query string from a modernc DSN.
func sqlitePath(connection string) string {
	path, _, _ := strings.Cut(connection, "?")
	return strings.TrimPrefix(path, "file:")
}

// Queryer is the statement surface shared by a scoped connection and a
// transaction, so repositories run unchanged inside either.
type Queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

// Handle is the storage-access entry point handed to every consumer.
// Each logical operation acquires its own connection and releases it on
// every exit path.
type Handle struct {
	db     *sqlx.DB
	driver string
}

func NewHandle(db *sqlx.DB, driver string) *Handle {
	return &Handle{db: db, driver: driver}
}

func (h *Handle) DB() *sqlx.DB {
	return h.db
}

func (h *Handle) Driver() string {
	return h.driver
}

// Do runs fn on a dedicated connection.
func (h *Handle) Do(ctx context.Context, fn func(q Queryer) error) error {
	conn, err := h.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer release(conn)

	return fn(conn)
}

// InTx runs fn in a transaction on a dedicated connection. The transaction
// commits only if fn returns nil; errors and panics roll it back.
func (h *Handle) InTx(ctx context.Context, fn func(q Queryer) error) (err error) {
	conn, err := h.db.Connx(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer release(conn)

	tx, err := conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			rbErr := tx.Rollback()
			if rbErr != nil && rbErr != sql.ErrTxDone {
				slog.Error("failed to roll back transaction", "error", rbErr)
			}
		}
	}()

	err = fn(tx)
	if err != nil {
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// EnsureSchema brings the schema up to date. Safe to call repeatedly.
func (h *Handle) EnsureSchema(ctx context.Context) error {
	return Migrate(ctx, h.db.DB, h.driver)
}

// release returns the connection to the pool. Failures are logged only so
// they never mask the outcome of the operation itself.
func release(conn *sqlx.Conn) {
	err := conn.Close()
	if err != nil {
		slog.Error("failed to release connection", "error", err)
	}
}
