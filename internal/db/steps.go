package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/templui/cuidador/internal/model"
)

const (
	// legacyPhotoColumn is the photo reference older app versions kept
	// directly on the elders table.
	legacyPhotoColumn = "photo_path"
	rebuildTable      = "elders_new"
)

// elderColumns is the elders column list as of the baseline schema.
const elderColumns = `id, name, age, address, contacts, description, important_info,
	allergies, chronic_conditions, notes, created_at, updated_at`

const createProfileImages = `
CREATE TABLE IF NOT EXISTS profile_images (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    elder_id INTEGER NOT NULL UNIQUE REFERENCES elders (id),
    path TEXT NOT NULL,
    created_at TEXT NOT NULL
)`

const createEldersRebuild = `
CREATE TABLE ` + rebuildTable + ` (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    age INTEGER,
    address TEXT,
    contacts TEXT,
    description TEXT,
    important_info TEXT,
    allergies TEXT,
    chronic_conditions TEXT,
    notes TEXT,
    created_at TEXT,
    updated_at TEXT
)`

func goMigrations() []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(2,
			&goose.GoFunc{RunTx: moveLegacyPhotoColumn, Mode: goose.TransactionEnabled},
			&goose.GoFunc{RunTx: restoreLegacyPhotoColumn, Mode: goose.TransactionEnabled},
		),
		goose.NewGoMigration(3,
			&goose.GoFunc{RunTx: addRowVersions, Mode: goose.TransactionEnabled},
			&goose.GoFunc{RunTx: dropRowVersions, Mode: goose.TransactionEnabled},
		),
		goose.NewGoMigration(4,
			&goose.GoFunc{RunTx: normalizeTimestamps, Mode: goose.TransactionEnabled},
			&goose.GoFunc{RunTx: keepTimestamps, Mode: goose.TransactionEnabled},
		),
	}
}

// moveLegacyPhotoColumn moves elders.photo_path into profile_images and
// rebuilds elders without it. A database that never had the column only
// gets the profile_images table.
func moveLegacyPhotoColumn(ctx context.Context, tx *sql.Tx) error {
	legacy, err := columnExists(ctx, tx, "elders", legacyPhotoColumn)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, createProfileImages)
	if err != nil {
		return fmt.Errorf("create profile_images: %w", err)
	}

	if !legacy {
		return nil
	}

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO profile_images (elder_id, path, created_at)
		SELECT id, `+legacyPhotoColumn+`, ? FROM elders WHERE `+legacyPhotoColumn+` IS NOT NULL`,
		model.Now(),
	)
	if err != nil {
		return fmt.Errorf("copy legacy photos: %w", err)
	}
	copied, _ := res.RowsAffected()

	statements := []struct {
		name string
		sql  string
	}{
		{"create rebuild table", createEldersRebuild},
		{"copy elders", `INSERT INTO ` + rebuildTable + ` (` + elderColumns + `) SELECT ` + elderColumns + ` FROM elders`},
		{"drop legacy elders", `DROP TABLE elders`},
		{"rename rebuild table", `ALTER TABLE ` + rebuildTable + ` RENAME TO elders`},
		{"recreate name index", `CREATE INDEX IF NOT EXISTS idx_elders_name ON elders (name)`},
	}
	for _, st := range statements {
		_, err = tx.ExecContext(ctx, st.sql)
		if err != nil {
			return fmt.Errorf("%s: %w", st.name, err)
		}
	}

	slog.Info("moved legacy elder photos", "photos", copied)
	return nil
}

func restoreLegacyPhotoColumn(ctx context.Context, tx *sql.Tx) error {
	statements := []string{
		`ALTER TABLE elders ADD COLUMN ` + legacyPhotoColumn + ` TEXT`,
		`UPDATE elders SET ` + legacyPhotoColumn + ` = (
			SELECT path FROM profile_images WHERE profile_images.elder_id = elders.id)`,
		`DROP TABLE profile_images`,
	}
	for _, s := range statements {
		_, err := tx.ExecContext(ctx, s)
		if err != nil {
			return err
		}
	}
	return nil
}

var versionedTables = []string{"elders", "notes"}

// addRowVersions adds the optimistic concurrency counter checked on update.
func addRowVersions(ctx context.Context, tx *sql.Tx) error {
	for _, table := range versionedTables {
		exists, err := columnExists(ctx, tx, table, "version")
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		_, err = tx.ExecContext(ctx, `ALTER TABLE `+table+` ADD COLUMN version INTEGER NOT NULL DEFAULT 1`)
		if err != nil {
			return fmt.Errorf("add version to %s: %w", table, err)
		}
	}
	return nil
}

func dropRowVersions(ctx context.Context, tx *sql.Tx) error {
	for _, table := range versionedTables {
		_, err := tx.ExecContext(ctx, `ALTER TABLE `+table+` DROP COLUMN version`)
		if err != nil {
			return fmt.Errorf("drop version from %s: %w", table, err)
		}
	}
	return nil
}

// timestampColumns are the columns written with model.TimestampLayout.
var timestampColumns = []struct{ table, column string }{
	{"elders", "created_at"},
	{"elders", "updated_at"},
	{"profile_images", "created_at"},
	{"checklists", "created_at"},
	{"notes", "created_at"},
	{"notes", "updated_at"},
	{"reports", "created_at"},
	{"alarms", "created_at"},
}

// normalizeTimestamps rewrites timestamps stored by older app versions
// (millisecond ISO-8601 and friends) in the fixed-width layout, so that
// ORDER BY on the text column is chronological across old and new rows.
// Values that do not parse are left as they are.
func normalizeTimestamps(ctx context.Context, tx *sql.Tx) error {
	rewritten := 0
	for _, tc := range timestampColumns {
		n, err := normalizeColumn(ctx, tx, tc.table, tc.column)
		if err != nil {
			return fmt.Errorf("normalize %s.%s: %w", tc.table, tc.column, err)
		}
		rewritten += n
	}
	if rewritten > 0 {
		slog.Info("normalized legacy timestamps", "rows", rewritten)
	}
	return nil
}

func normalizeColumn(ctx context.Context, tx *sql.Tx, table, column string) (int, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, `+column+` FROM `+table+` WHERE `+column+` IS NOT NULL AND `+column+` <> ''`)
	if err != nil {
		return 0, err
	}

	type change struct {
		id    int64
		value string
	}
	var changes []change
	for rows.Next() {
		var (
			id  int64
			raw string
		)
		if err := rows.Scan(&id, &raw); err != nil {
			_ = rows.Close()
			return 0, err
		}
		ts, err := model.ParseTimestamp(raw)
		if err != nil {
			slog.Warn("unparseable timestamp kept", "table", table, "column", column, "id", id, "value", raw)
			continue
		}
		if ts.String() != raw {
			changes = append(changes, change{id: id, value: ts.String()})
		}
	}
	if err := rows.Close(); err != nil {
		return 0, err
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for _, c := range changes {
		_, err := tx.ExecContext(ctx, `UPDATE `+table+` SET `+column+` = ? WHERE id = ?`, c.value, c.id)
		if err != nil {
			return 0, err
		}
	}
	return len(changes), nil
}

// keepTimestamps is the down step of normalizeTimestamps; the new layout
// is readable by every version, so nothing is rewritten back.
func keepTimestamps(context.Context, *sql.Tx) error {
	return nil
}

type execQueryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func tableExists(ctx context.Context, q execQueryer, table string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking table %s: %w", table, err)
	}
	return n > 0, nil
}

func columnExists(ctx context.Context, q execQueryer, table, column string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspecting columns of %s: %w", table, err)
	}
	return n > 0, nil
}
