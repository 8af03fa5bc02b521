package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/templui/cuidador/internal/markdown"
	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/storage"
	"github.com/templui/cuidador/internal/validation"
)

var artifactTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// ReportService generates daily care reports. The stored artifact is an
// HTML document that a PDF engine or share sheet consumes.
type ReportService struct {
	reportRepo repository.ReportRepository
	elderRepo  repository.ElderRepository
	reports    storage.Storage
	parser     *markdown.Parser
}

func NewReportService(
	reportRepo repository.ReportRepository,
	elderRepo repository.ElderRepository,
	reports storage.Storage,
	parser *markdown.Parser,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		elderRepo:  elderRepo,
		reports:    reports,
		parser:     parser,
	}
}

func (s *ReportService) Generate(ctx context.Context, input model.ReportInput) (*model.Report, error) {
	err := validation.Struct(input)
	if err != nil {
		return nil, err
	}

	elder, err := s.elderRepo.ByID(ctx, input.ElderID)
	if err != nil {
		return nil, err
	}

	report := &model.Report{
		ElderID:     input.ElderID,
		Date:        input.Date,
		Medications: strings.TrimSpace(input.Medications),
		Nutrition:   strings.TrimSpace(input.Nutrition),
		Activities:  strings.TrimSpace(input.Activities),
		Mood:        strings.TrimSpace(input.Mood),
		Remarks:     strings.TrimSpace(input.Remarks),
		CreatedAt:   model.Now(),
	}

	artifact, err := s.render(elder, report)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}

	key := fmt.Sprintf("%d/%s-%s.html", elder.ID, report.Date, uuid.New().String())
	err = s.reports.Save(ctx, key, bytes.NewReader(artifact))
	if err != nil {
		return nil, fmt.Errorf("failed to save report artifact: %w", err)
	}
	report.ArtifactPath = s.reports.Ref(key)

	_, err = s.reportRepo.Create(ctx, report)
	if err != nil {
		// If DB insert fails, try to cleanup the artifact
		delErr := s.reports.Delete(ctx, report.ArtifactPath)
		if delErr != nil {
			slog.Error("failed to delete report artifact during cleanup", "error", delErr, "path", report.ArtifactPath)
		}
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	slog.Info("report generated", "report_id", report.ID, "elder_id", elder.ID, "date", report.Date)
	return report, nil
}

func (s *ReportService) ByID(ctx context.Context, id int64) (*model.Report, error) {
	return s.reportRepo.ByID(ctx, id)
}

// ForElder returns the elder's reports, newest date first.
func (s *ReportService) ForElder(ctx context.Context, elderID int64) ([]*model.Report, error) {
	return s.reportRepo.ByElderID(ctx, elderID)
}

func (s *ReportService) List(ctx context.Context) ([]*model.Report, error) {
	return s.reportRepo.All(ctx)
}

func (s *ReportService) URL(report *model.Report) string {
	return s.reports.URL(report.ArtifactPath)
}

// Artifact streams the generated document of a report.
func (s *ReportService) Artifact(ctx context.Context, id int64) (io.ReadCloser, error) {
	report, err := s.reportRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.reports.Open(ctx, report.ArtifactPath)
}

// render builds the markdown source with front matter and converts it to
// a standalone HTML page.
func (s *ReportService) render(elder *model.Elder, report *model.Report) ([]byte, error) {
	name := cases.Title(language.Und).String(elder.Name)

	var src strings.Builder
	src.WriteString("---\n")
	fmt.Fprintf(&src, "title: %s\n", strconv.Quote("Care report - "+name))
	fmt.Fprintf(&src, "elder: %s\n", strconv.Quote(name))
	fmt.Fprintf(&src, "date: %s\n", strconv.Quote(report.Date))
	src.WriteString("---\n\n")

	fmt.Fprintf(&src, "# Care report for %s\n\n", name)
	fmt.Fprintf(&src, "**Date:** %s\n\n", report.Date)
	if elder.Age != nil {
		fmt.Fprintf(&src, "**Age:** %d\n\n", *elder.Age)
	}

	sections := []struct {
		heading string
		body    string
	}{
		{"Medications", report.Medications},
		{"Nutrition", report.Nutrition},
		{"Activities", report.Activities},
		{"Mood", report.Mood},
		{"Remarks", report.Remarks},
	}
	for _, sec := range sections {
		body := sec.body
		if body == "" {
			body = "_Nothing recorded._"
		}
		fmt.Fprintf(&src, "## %s\n\n%s\n\n", sec.heading, body)
	}

	body, meta, err := s.parser.ParseDocument([]byte(src.String()))
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	err = artifactTemplate.Execute(&out, struct {
		Title string
		Body  template.HTML
	}{
		Title: meta.Title,
		Body:  template.HTML(body),
	})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
