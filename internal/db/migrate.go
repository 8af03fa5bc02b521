package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// dialectMap maps database drivers to Goose dialects
var dialectMap = map[string]goose.Dialect{
	"sqlite":  goose.DialectSQLite3,
	"sqlite3": goose.DialectSQLite3,
}

// getDialect returns the Goose dialect for the given driver
func getDialect(driver string) (goose.Dialect, error) {
	dialect, ok := dialectMap[driver]
	if !ok {
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
	return dialect, nil
}

// newProvider configures Goose with the embedded SQL migrations and the Go
// migration steps.
func newProvider(db *sql.DB, driver string) (*goose.Provider, error) {
	dialect, err := getDialect(driver)
	if err != nil {
		return nil, err
	}

	// Get migrations subdirectory from embed.FS
	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to get migrations directory: %w", err)
	}

	provider, err := goose.NewProvider(dialect, db, migrationsDir,
		goose.WithGoMigrations(goMigrations()...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies every pending migration. Each step runs in its own
// transaction, so a failing step leaves the schema at the previous version.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	err := recoverInterruptedRebuild(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to recover interrupted rebuild: %w", err)
	}

	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	for _, r := range results {
		slog.Info("migration applied", "version", r.Source.Version, "source", r.Source.Path, "duration", r.Duration)
	}

	slog.Debug("migrations completed successfully", "applied", len(results))
	return nil
}

func MigrateDown(ctx context.Context, db *sql.DB, driver string) error {
	provider, err := newProvider(db, driver)
	if err != nil {
		return err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return fmt.Errorf("failed to rollback migration: %w", err)
	}

	slog.Info("rolled back one migration", "version", result.Source.Version)
	return nil
}

func MigrationStatus(ctx context.Context, db *sql.DB, driver string) ([]*goose.MigrationStatus, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}
	return statuses, nil
}

// SchemaVersion returns the highest applied migration version.
func SchemaVersion(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	provider, err := newProvider(db, driver)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

// recoverInterruptedRebuild repairs what a killed, non-transactional
// elders rebuild leaves behind: a lone elders_new is renamed into place,
// an elders_new next to an intact elders is discarded.
func recoverInterruptedRebuild(ctx context.Context, db *sql.DB) (err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	hasElders, err := tableExists(ctx, tx, "elders")
	if err != nil {
		return err
	}
	hasRebuild, err := tableExists(ctx, tx, rebuildTable)
	if err != nil {
		return err
	}

	switch {
	case hasRebuild && !hasElders:
		slog.Warn("found orphaned elders rebuild, renaming into place", "table", rebuildTable)
		_, err = tx.ExecContext(ctx, `ALTER TABLE `+rebuildTable+` RENAME TO elders`)
	case hasRebuild && hasElders:
		slog.Warn("found stale elders rebuild, discarding", "table", rebuildTable)
		_, err = tx.ExecContext(ctx, `DROP TABLE `+rebuildTable)
	}
	if err != nil {
		return err
	}

	return tx.Commit()
}
