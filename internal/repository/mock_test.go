package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/repository"
)

func newMockHandle(t *testing.T) (*db.Handle, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	return db.NewHandle(sqlx.NewDb(mockDB, "sqlite"), "sqlite"), mock
}

func TestElderDeleteRollsBackOnFailure(t *testing.T) {
	h, mock := newMockHandle(t)
	repo := repository.NewElderRepository(h)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM profile_images WHERE elder_id = ?`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM elders WHERE id = ?`)).
		WithArgs(int64(7)).
		WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 7)
	assert.EqualError(t, err, "disk I/O error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestElderDeleteMissingRollsBack(t *testing.T) {
	h, mock := newMockHandle(t)
	repo := repository.NewElderRepository(h)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM profile_images WHERE elder_id = ?`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM elders WHERE id = ?`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 7)
	assert.ErrorIs(t, err, repository.ErrElderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteDeleteZeroRowsIsNotFound(t *testing.T) {
	h, mock := newMockHandle(t)
	repo := repository.NewNoteRepository(h)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM notes WHERE id = ?`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportByIDDriverError(t *testing.T) {
	h, mock := newMockHandle(t)
	repo := repository.NewReportRepository(h)

	mock.ExpectQuery(`SELECT .+ FROM reports WHERE id = \?`).
		WithArgs(int64(1)).
		WillReturnError(errors.New("database is locked"))

	_, err := repo.ByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrReportNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
