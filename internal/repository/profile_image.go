package repository

import (
	"context"
	"errors"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/model"
)

var (
	ErrProfileImageNotFound = errors.New("profile image not found")
)

type ProfileImageRepository interface {
	// Upsert points the elder's profile image at path and returns the
	// path it replaced, empty when there was none.
	Upsert(ctx context.Context, elderID int64, path string) (previous string, err error)
	ByElderID(ctx context.Context, elderID int64) (*model.ProfileImage, error)
	DeleteByElderID(ctx context.Context, elderID int64) error
}

type profileImageRepository struct {
	h *db.Handle
}

func NewProfileImageRepository(h *db.Handle) ProfileImageRepository {
	return &profileImageRepository{h: h}
}

func (r *profileImageRepository) Upsert(ctx context.Context, elderID int64, path string) (string, error) {
	var previous string

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		var exists int
		err := q.GetContext(ctx, &exists, `SELECT COUNT(*) FROM elders WHERE id = ?`, elderID)
		if err != nil {
			return err
		}
		if exists == 0 {
			return ErrElderNotFound
		}

		var old []string
		err = q.SelectContext(ctx, &old, `SELECT path FROM profile_images WHERE elder_id = ?`, elderID)
		if err != nil {
			return err
		}
		if len(old) > 0 {
			previous = old[0]
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO profile_images (elder_id, path, created_at) VALUES (?, ?, ?)
			ON CONFLICT (elder_id) DO UPDATE SET path = excluded.path, created_at = excluded.created_at`,
			elderID, path, model.Now(),
		)
		return err
	})
	if err != nil {
		return "", err
	}

	return previous, nil
}

func (r *profileImageRepository) ByElderID(ctx context.Context, elderID int64) (*model.ProfileImage, error) {
	image := &model.ProfileImage{}
	query := `SELECT id, elder_id, path, created_at FROM profile_images WHERE elder_id = ?`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return getOr(ctx, q, ErrProfileImageNotFound, image, query, elderID)
	})
	if err != nil {
		return nil, err
	}

	return image, nil
}

func (r *profileImageRepository) DeleteByElderID(ctx context.Context, elderID int64) error {
	return r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, `DELETE FROM profile_images WHERE elder_id = ?`, elderID)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrProfileImageNotFound)
	})
}
