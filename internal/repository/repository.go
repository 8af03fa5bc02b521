package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/templui/cuidador/internal/db"
)

// affectedOr returns notFound when a statement touched no rows.
func affectedOr(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}

// getOr runs GetContext and maps sql.ErrNoRows to notFound.
func getOr(ctx context.Context, q db.Queryer, notFound error, dest any, query string, args ...any) error {
	err := q.GetContext(ctx, dest, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

// staleOr decides why a version-checked update touched no rows: the row
// is gone (notFound) or it was changed since it was read (conflict).
func staleOr(ctx context.Context, q db.Queryer, table string, id int64, notFound, conflict error) error {
	var n int
	err := q.GetContext(ctx, &n, fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return conflict
}

func insertID(result sql.Result) (int64, error) {
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted id: %w", err)
	}
	return id, nil
}
