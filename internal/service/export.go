package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
)

// Snapshot is the raw data browser view: elders by name, notes newest first.
type Snapshot struct {
	Elders []*model.Elder `json:"elders"`
	Notes  []*model.Note  `json:"notes"`
}

type ExportService struct {
	elderRepo  repository.ElderRepository
	noteRepo   repository.NoteRepository
	reportRepo repository.ReportRepository
}

func NewExportService(
	elderRepo repository.ElderRepository,
	noteRepo repository.NoteRepository,
	reportRepo repository.ReportRepository,
) *ExportService {
	return &ExportService{
		elderRepo:  elderRepo,
		noteRepo:   noteRepo,
		reportRepo: reportRepo,
	}
}

func (s *ExportService) Browse(ctx context.Context) (*Snapshot, error) {
	elders, err := s.elderRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list elders: %w", err)
	}

	notes, err := s.noteRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}

	if elders == nil {
		elders = []*model.Elder{}
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	return &Snapshot{Elders: elders, Notes: notes}, nil
}

// WriteXLSX writes a workbook with one sheet per table.
func (s *ExportService) WriteXLSX(ctx context.Context, w io.Writer) error {
	snapshot, err := s.Browse(ctx)
	if err != nil {
		return err
	}

	reports, err := s.reportRepo.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	err = f.SetSheetName("Sheet1", "Elders")
	if err != nil {
		return err
	}

	elderRows := [][]any{{"ID", "Name", "Age", "Address", "Contacts", "Description", "Important info",
		"Allergies", "Chronic conditions", "Notes", "Created", "Updated"}}
	for _, e := range snapshot.Elders {
		var age any
		if e.Age != nil {
			age = *e.Age
		}
		elderRows = append(elderRows, []any{e.ID, e.Name, age, deref(e.Address), deref(e.Contacts),
			deref(e.Description), deref(e.ImportantInfo), deref(e.Allergies), deref(e.ChronicConditions),
			deref(e.Notes), e.CreatedAt.String(), e.UpdatedAt.String()})
	}

	noteRows := [][]any{{"ID", "Title", "Body", "Created", "Updated"}}
	for _, n := range snapshot.Notes {
		noteRows = append(noteRows, []any{n.ID, n.Title, n.Body, n.CreatedAt.String(), n.UpdatedAt.String()})
	}

	reportRows := [][]any{{"ID", "Elder ID", "Date", "Medications", "Nutrition", "Activities", "Mood",
		"Remarks", "Artifact", "Created"}}
	for _, r := range reports {
		reportRows = append(reportRows, []any{r.ID, r.ElderID, r.Date, r.Medications, r.Nutrition,
			r.Activities, r.Mood, r.Remarks, r.ArtifactPath, r.CreatedAt.String()})
	}

	sheets := []struct {
		name string
		rows [][]any
	}{
		{"Elders", elderRows},
		{"Notes", noteRows},
		{"Reports", reportRows},
	}
	for _, sheet := range sheets {
		if sheet.name != "Elders" {
			_, err = f.NewSheet(sheet.name)
			if err != nil {
				return err
			}
		}
		err = writeRows(f, sheet.name, sheet.rows)
		if err != nil {
			return fmt.Errorf("failed to write %s sheet: %w", sheet.name, err)
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		err = f.SetSheetRow(sheet, cell, &row)
		if err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
