package service_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

func TestReportServiceGenerate(t *testing.T) {
	f := newFixture(t)

	elder, err := f.elders.Create(f.ctx, &model.Elder{Name: "maria silva", Age: ptr(78)})
	require.NoError(t, err)

	report, err := f.reports.Generate(f.ctx, model.ReportInput{
		ElderID:     elder.ID,
		Date:        "2024-05-01",
		Medications: "Losartan 50mg at 8:00",
		Mood:        "Cheerful",
	})
	require.NoError(t, err)
	assert.NotZero(t, report.ID)
	assert.True(t, strings.HasPrefix(report.ArtifactPath, f.reportStore.Dir()))
	assert.FileExists(t, report.ArtifactPath)
	assert.True(t, strings.HasPrefix(f.reports.URL(report), "/files/reports/"))

	rc, err := f.reports.Artifact(f.ctx, report.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	html := string(data)
	assert.Contains(t, html, "<title>Care report - Maria Silva</title>")
	assert.Contains(t, html, "Losartan 50mg at 8:00")
	assert.Contains(t, html, "Cheerful")
	assert.Contains(t, html, "<em>Nothing recorded.</em>")
	assert.NotContains(t, html, "elder:", "front matter is not rendered")

	listed, err := f.reports.ForElder(f.ctx, elder.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, report.ID, listed[0].ID)
}

func TestReportServiceRejects(t *testing.T) {
	f := newFixture(t)

	_, err := f.reports.Generate(f.ctx, model.ReportInput{ElderID: 1, Date: "01/05/2024"})
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "date")

	_, err = f.reports.Generate(f.ctx, model.ReportInput{ElderID: 404, Date: "2024-05-01"})
	assert.ErrorIs(t, err, repository.ErrElderNotFound)

	all, err := f.reports.List(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
