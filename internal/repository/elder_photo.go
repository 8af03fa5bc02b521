package repository

import (
	"context"
	"errors"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/model"
)

var (
	ErrElderPhotoNotFound = errors.New("photo not found")
)

type ElderPhotoRepository interface {
	Create(ctx context.Context, photo *model.ElderPhoto) (int64, error)
	ByID(ctx context.Context, id int64) (*model.ElderPhoto, error)
	// ByElderID lists favorites first, then in the order they were taken.
	ByElderID(ctx context.Context, elderID int64) ([]*model.ElderPhoto, error)
	SetFavorite(ctx context.Context, id int64, favorite bool) error
	Delete(ctx context.Context, id int64) error
	// DeleteByElderID removes the elder's gallery rows and returns their
	// paths so the files can be removed too.
	DeleteByElderID(ctx context.Context, elderID int64) ([]string, error)
}

type elderPhotoRepository struct {
	h *db.Handle
}

func NewElderPhotoRepository(h *db.Handle) ElderPhotoRepository {
	return &elderPhotoRepository{h: h}
}

const elderPhotoColumns = `id, elder_id, name, path, favorite, created_at`

func (r *elderPhotoRepository) Create(ctx context.Context, photo *model.ElderPhoto) (int64, error) {
	photo.CreatedAt = model.Now()

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		var exists int
		err := q.GetContext(ctx, &exists, `SELECT COUNT(*) FROM elders WHERE id = ?`, photo.ElderID)
		if err != nil {
			return err
		}
		if exists == 0 {
			return ErrElderNotFound
		}

		result, err := q.ExecContext(ctx,
			`INSERT INTO elder_photos (elder_id, name, path, favorite, created_at) VALUES (?, ?, ?, ?, ?)`,
			photo.ElderID, photo.Name, photo.Path, photo.Favorite, photo.CreatedAt,
		)
		if err != nil {
			return err
		}
		photo.ID, err = insertID(result)
		return err
	})
	if err != nil {
		return 0, err
	}

	return photo.ID, nil
}

func (r *elderPhotoRepository) ByID(ctx context.Context, id int64) (*model.ElderPhoto, error) {
	photo := &model.ElderPhoto{}

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return getOr(ctx, q, ErrElderPhotoNotFound, photo,
			`SELECT `+elderPhotoColumns+` FROM elder_photos WHERE id = ?`, id)
	})
	if err != nil {
		return nil, err
	}

	return photo, nil
}

func (r *elderPhotoRepository) ByElderID(ctx context.Context, elderID int64) ([]*model.ElderPhoto, error) {
	var photos []*model.ElderPhoto

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return q.SelectContext(ctx, &photos,
			`SELECT `+elderPhotoColumns+` FROM elder_photos WHERE elder_id = ? ORDER BY favorite DESC, id`,
			elderID,
		)
	})
	if err != nil {
		return nil, err
	}

	return photos, nil
}

func (r *elderPhotoRepository) SetFavorite(ctx context.Context, id int64, favorite bool) error {
	return r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, `UPDATE elder_photos SET favorite = ? WHERE id = ?`, favorite, id)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrElderPhotoNotFound)
	})
}

func (r *elderPhotoRepository) Delete(ctx context.Context, id int64) error {
	return r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, `DELETE FROM elder_photos WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrElderPhotoNotFound)
	})
}

func (r *elderPhotoRepository) DeleteByElderID(ctx context.Context, elderID int64) ([]string, error) {
	var paths []string

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		err := q.SelectContext(ctx, &paths, `SELECT path FROM elder_photos WHERE elder_id = ? ORDER BY id`, elderID)
		if err != nil {
			return err
		}
		_, err = q.ExecContext(ctx, `DELETE FROM elder_photos WHERE elder_id = ?`, elderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}
