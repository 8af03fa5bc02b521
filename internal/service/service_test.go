package service_test

import (
	"context"
	"testing"

	"github.com/templui/cuidador/internal/markdown"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/storage"
	"github.com/templui/cuidador/internal/testutil"
)

type fixture struct {
	ctx       context.Context
	elders    *service.ElderService
	photos    *service.PhotoService
	gallery   *service.GalleryService
	checklist *service.ChecklistService
	notes     *service.NoteService
	reports   *service.ReportService
	alarms    *service.AlarmService
	export    *service.ExportService

	photoStore  *storage.LocalStorage
	reportStore *storage.LocalStorage
	imageRepo   repository.ProfileImageRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	h := testutil.NewTestHandle(t)
	photoStore := testutil.NewTestStorage(t, "photos")
	reportStore := testutil.NewTestStorage(t, "reports")
	parser := markdown.NewParser()

	elderRepo := repository.NewElderRepository(h)
	imageRepo := repository.NewProfileImageRepository(h)
	noteRepo := repository.NewNoteRepository(h)
	reportRepo := repository.NewReportRepository(h)
	galleryRepo := repository.NewElderPhotoRepository(h)
	photos := service.NewPhotoService(elderRepo, imageRepo, photoStore, 1024)

	return &fixture{
		ctx:         context.Background(),
		elders:      service.NewElderService(elderRepo, imageRepo, galleryRepo, photoStore),
		photos:      photos,
		gallery:     service.NewGalleryService(galleryRepo, elderRepo, photos),
		checklist:   service.NewChecklistService(repository.NewChecklistRepository(h), elderRepo),
		notes:       service.NewNoteService(noteRepo, parser),
		reports:     service.NewReportService(reportRepo, elderRepo, reportStore, parser),
		alarms:      service.NewAlarmService(repository.NewAlarmRepository(h)),
		export:      service.NewExportService(elderRepo, noteRepo, reportRepo),
		photoStore:  photoStore,
		reportStore: reportStore,
		imageRepo:   imageRepo,
	}
}
