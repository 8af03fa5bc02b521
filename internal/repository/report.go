package repository

import (
	"context"
	"errors"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/model"
)

var (
	ErrReportNotFound = errors.New("report not found")
)

const reportColumns = `id, elder_id, date, medications, nutrition, activities, mood, remarks,
	artifact_path, created_at`

// ReportRepository is append-only: reports are never edited once stored.
type ReportRepository interface {
	Create(ctx context.Context, report *model.Report) (int64, error)
	ByID(ctx context.Context, id int64) (*model.Report, error)
	ByElderID(ctx context.Context, elderID int64) ([]*model.Report, error)
	All(ctx context.Context) ([]*model.Report, error)
}

type reportRepository struct {
	h *db.Handle
}

func NewReportRepository(h *db.Handle) ReportRepository {
	return &reportRepository{h: h}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report) (int64, error) {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = model.Now()
	}

	query := `INSERT INTO reports (elder_id, date, medications, nutrition, activities, mood, remarks,
	          artifact_path, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, query,
			report.ElderID,
			report.Date,
			report.Medications,
			report.Nutrition,
			report.Activities,
			report.Mood,
			report.Remarks,
			report.ArtifactPath,
			report.CreatedAt,
		)
		if err != nil {
			return err
		}
		report.ID, err = insertID(result)
		return err
	})
	if err != nil {
		return 0, err
	}

	return report.ID, nil
}

func (r *reportRepository) ByID(ctx context.Context, id int64) (*model.Report, error) {
	report := &model.Report{}
	query := `SELECT ` + reportColumns + ` FROM reports WHERE id = ?`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return getOr(ctx, q, ErrReportNotFound, report, query, id)
	})
	if err != nil {
		return nil, err
	}

	return report, nil
}

func (r *reportRepository) ByElderID(ctx context.Context, elderID int64) ([]*model.Report, error) {
	var reports []*model.Report
	query := `SELECT ` + reportColumns + ` FROM reports WHERE elder_id = ? ORDER BY date DESC, id DESC`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return q.SelectContext(ctx, &reports, query, elderID)
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *reportRepository) All(ctx context.Context) ([]*model.Report, error) {
	var reports []*model.Report
	query := `SELECT ` + reportColumns + ` FROM reports ORDER BY created_at DESC, id DESC`

	err := r.h.Do(ctx, func(q db.Queryer) error {
		return q.SelectContext(ctx, &reports, query)
	})
	if err != nil {
		return nil, err
	}

	return reports, nil
}
