package repository

import (
	"context"
	"errors"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/model"
)

var (
	ErrElderNotFound = errors.New("elder not found")
	ErrElderConflict = errors.New("elder was changed by someone else")
)

const elderColumns = `id, name, age, address, contacts, description, important_info,
	allergies, chronic_conditions, notes, created_at, updated_at, version`

type ElderRepository interface {
	Create(ctx context.Context, elder *model.Elder) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Elder, error)
	MostRecent(ctx context.Context) (*model.Elder, error)
	All(ctx context.Context) ([]*model.Elder, error)
	Update(ctx context.Context, elder *model.Elder) error
	Delete(ctx context.Context, id int64) error
}

type elderRepository struct {
	h *db.Handle
}

func NewElderRepository(h *db.Handle) ElderRepository {
	return &elderRepository{h: h}
}

// Create inserts elder and assigns its new id. Any id already set on the
// record is ignored.
func (r *elderRepository) Create(ctx context.Context, elder *model.Elder) (int64, error) {
	now := model.Now()
	if elder.CreatedAt.IsZero() {
		elder.CreatedAt = now
	}
	elder.UpdatedAt = now
	elder.Version = 1

	query := `INSERT INTO elders (name, age, address, contacts, description, important_info,
	          allergies, chronic_conditions, notes, created_at, updated_at, version)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, query,
			elder.Name,
			elder.Age,
			elder.Address,
			elder.Contacts,
			elder.Description,
			elder.ImportantInfo,
			elder.Allergies,
			elder.ChronicConditions,
			elder.Notes,
			elder.CreatedAt,
			elder.UpdatedAt,
			elder.Version,
		)
		if err != nil {
			return err
		}
		elder.ID, err = insertID(result)
		return err
	})
	if err != nil {
		return 0, err
	}

	return elder.ID, nil
}

func (r *elderRepository) ByID(ctx context.Context, id int64) (*model.Elder, error) {
	elder := &model.Elder{}
	query := `SELECT ` + elderColumns + ` FROM elders WHERE id = ?`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return getOr(ctx, q, ErrElderNotFound, elder, query, id)
	})
	if err != nil {
		return nil, err
	}

	return elder, nil
}

// MostRecent returns the last updated elder.
func (r *elderRepository) MostRecent(ctx context.Context) (*model.Elder, error) {
	elder := &model.Elder{}
	query := `SELECT ` + elderColumns + ` FROM elders ORDER BY updated_at DESC, id DESC LIMIT 1`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return getOr(ctx, q, ErrElderNotFound, elder, query)
	})
	if err != nil {
		return nil, err
	}

	return elder, nil
}

func (r *elderRepository) All(ctx context.Context) ([]*model.Elder, error) {
	var elders []*model.Elder
	query := `SELECT ` + elderColumns + ` FROM elders ORDER BY name COLLATE NOCASE, id`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return q.SelectContext(ctx, &elders, query)
	})
	if err != nil {
		return nil, err
	}

	return elders, nil
}

// Update writes every field of elder. A non-zero Version must match the
// stored row, otherwise ErrElderConflict is returned and nothing changes.
// On success UpdatedAt and Version reflect the stored row.
func (r *elderRepository) Update(ctx context.Context, elder *model.Elder) error {
	updatedAt := model.Now()

	query := `UPDATE elders
	          SET name = ?, age = ?, address = ?, contacts = ?, description = ?, important_info = ?,
	              allergies = ?, chronic_conditions = ?, notes = ?, updated_at = ?, version = version + 1
	          WHERE id = ? AND (? = 0 OR version = ?)`

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, query,
			elder.Name,
			elder.Age,
			elder.Address,
			elder.Contacts,
			elder.Description,
			elder.ImportantInfo,
			elder.Allergies,
			elder.ChronicConditions,
			elder.Notes,
			updatedAt,
			elder.ID,
			elder.Version,
			elder.Version,
		)
		if err != nil {
			return err
		}

		err = affectedOr(result, ErrElderNotFound)
		if errors.Is(err, ErrElderNotFound) && elder.Version != 0 {
			return staleOr(ctx, q, "elders", elder.ID, ErrElderNotFound, ErrElderConflict)
		}
		if err != nil {
			return err
		}

		return q.GetContext(ctx, &elder.Version, `SELECT version FROM elders WHERE id = ?`, elder.ID)
	})
	if err != nil {
		return err
	}

	elder.UpdatedAt = updatedAt
	return nil
}

// Delete removes the elder and its profile image row. Checklists and
// reports of the elder are left in place.
func (r *elderRepository) Delete(ctx context.Context, id int64) error {
	return r.h.InTx(ctx, func(q db.Queryer) error {
		_, err := q.ExecContext(ctx, `DELETE FROM profile_images WHERE elder_id = ?`, id)
		if err != nil {
			return err
		}

		result, err := q.ExecContext(ctx, `DELETE FROM elders WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrElderNotFound)
	})
}
