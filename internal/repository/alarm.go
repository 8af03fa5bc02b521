package repository

import (
	"context"
	"errors"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/model"
)

var (
	ErrAlarmNotFound = errors.New("alarm not found")
)

type AlarmRepository interface {
	Create(ctx context.Context, alarm *model.Alarm) (int64, error)
	All(ctx context.Context) ([]*model.Alarm, error)
	Delete(ctx context.Context, id int64) error
}

type alarmRepository struct {
	h *db.Handle
}

func NewAlarmRepository(h *db.Handle) AlarmRepository {
	return &alarmRepository{h: h}
}

func (r *alarmRepository) Create(ctx context.Context, alarm *model.Alarm) (int64, error) {
	alarm.CreatedAt = model.Now()

	err := r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx,
			`INSERT INTO alarms (label, hour, minute, created_at) VALUES (?, ?, ?, ?)`,
			alarm.Label, alarm.Hour, alarm.Minute, alarm.CreatedAt,
		)
		if err != nil {
			return err
		}
		alarm.ID, err = insertID(result)
		return err
	})
	if err != nil {
		return 0, err
	}

	return alarm.ID, nil
}

func (r *alarmRepository) All(ctx context.Context) ([]*model.Alarm, error) {
	var alarms []*model.Alarm
	query := `SELECT id, label, hour, minute, created_at FROM alarms ORDER BY hour, minute, id`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return q.SelectContext(ctx, &alarms, query)
	})
	if err != nil {
		return nil, err
	}

	return alarms, nil
}

func (r *alarmRepository) Delete(ctx context.Context, id int64) error {
	return r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, `DELETE FROM alarms WHERE id = ?`, id)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrAlarmNotFound)
	})
}
