package repository

import (
	"context"
	"errors"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/model"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNoteConflict = errors.New("note was changed by someone else")
)

const noteColumns = `id, title, body, created_at, updated_at, version`

type NoteRepository interface {
	Create(ctx context.Context, note *model.Note) (int64, error)
	Update(ctx context.Context, note *model.Note) error
	ByID(ctx context.Context, id int64) (*model.Note, error)
	MostRecent(ctx context.Context) (*model.Note, error)
	All(ctx context.Context) ([]*model.Note, error)
	Delete(ctx context.Context, id int64) error
}

type noteRepository struct {
	h *db.Handle
}

func NewNoteRepository(h *db.Handle) NoteRepository {
	return &noteRepository{h: h}
}

func (r *noteRepository) Create(ctx context.Context, note *model.Note) (int64, error) {
	now := model.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	note.Version = 1

	query := `INSERT INTO notes (title, body, created_at, updated_at, version) VALUES (?, ?, ?, ?, ?)`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, query,
			note.Title,
			note.Body,
			note.CreatedAt,
			note.UpdatedAt,
			note.Version,
		)
		if err != nil {
			return err
		}
		note.ID, err = insertID(result)
		return err
	})
	if err != nil {
		return 0, err
	}

	return note.ID, nil
}

// Update rewrites title and body in place. A non-zero Version must match
// the stored row, otherwise ErrNoteConflict is returned.
func (r *noteRepository) Update(ctx context.Context, note *model.Note) error {
	updatedAt := model.Now()

	query := `UPDATE notes SET title = ?, body = ?, updated_at = ?, version = version + 1
	          WHERE id = ? AND (? = 0 OR version = ?)`

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, query,
			note.Title,
			note.Body,
			updatedAt,
			note.ID,
			note.Version,
			note.Version,
		)
		if err != nil {
			return err
		}

		err = affectedOr(result, ErrNoteNotFound)
		if errors.Is(err, ErrNoteNotFound) && note.Version != 0 {
			return staleOr(ctx, q, "notes", note.ID, ErrNoteNotFound, ErrNoteConflict)
		}
		if err != nil {
			return err
		}

		return q.GetContext(ctx, note, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, note.ID)
	})
	return err
}

func (r *noteRepository) ByID(ctx context.Context, id int64) (*model.Note, error) {
	note := &model.Note{}
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ?`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return getOr(ctx, q, ErrNoteNotFound, note, query, id)
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

// MostRecent returns the last updated note. Ties on updated_at go to the
// later insert.
func (r *noteRepository) MostRecent(ctx context.Context) (*model.Note, error) {
	note := &model.Note{}
	query := `SELECT ` + noteColumns + ` FROM notes ORDER BY updated_at DESC, id DESC LIMIT 1`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return getOr(ctx, q, ErrNoteNotFound, note, query)
	})
	if err != nil {
		return nil, err
	}

	return note, nil
}

func (r *noteRepository) All(ctx context.Context) ([]*model.Note, error) {
	var notes []*model.Note
	query := `SELECT ` + noteColumns + ` FROM notes ORDER BY created_at DESC, id DESC`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return q.SelectContext(ctx, &notes, query)
	})
	if err != nil {
		return nil, err
	}

	return notes, nil
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	return r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrNoteNotFound)
	})
}
