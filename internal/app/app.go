package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/templui/cuidador/internal/config"
	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/markdown"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/storage"
)

type App struct {
	Cfg              *config.Config
	DB               *sqlx.DB
	Handle           *db.Handle
	PhotoStorage     storage.Storage
	ReportStorage    storage.Storage
	ElderService     *service.ElderService
	PhotoService     *service.PhotoService
	GalleryService   *service.GalleryService
	ChecklistService *service.ChecklistService
	NoteService      *service.NoteService
	ReportService    *service.ReportService
	AlarmService     *service.AlarmService
	EmergencyService *service.EmergencyService
	ExportService    *service.ExportService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	handle := db.NewHandle(database, cfg.DBDriver)

	if cfg.AutoMigrate {
		err = handle.EnsureSchema(context.Background())
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	} else {
		slog.Warn("automatic migrations disabled, run `admin migrate up` before serving")
	}

	// Storage
	photoStorage, err := storage.New(cfg, cfg.PhotoDir)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize photo storage: %w", err)
	}
	reportStorage, err := storage.New(cfg, cfg.ReportDir)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to initialize report storage: %w", err)
	}

	return Wire(cfg, handle, photoStorage, reportStorage), nil
}

// Wire builds repositories and services on an open handle.
func Wire(cfg *config.Config, handle *db.Handle, photoStorage, reportStorage storage.Storage) *App {
	// Repositories
	elderRepository := repository.NewElderRepository(handle)
	profileImageRepository := repository.NewProfileImageRepository(handle)
	elderPhotoRepository := repository.NewElderPhotoRepository(handle)
	checklistRepository := repository.NewChecklistRepository(handle)
	noteRepository := repository.NewNoteRepository(handle)
	reportRepository := repository.NewReportRepository(handle)
	alarmRepository := repository.NewAlarmRepository(handle)

	parser := markdown.NewParser()

	// Services
	photoService := service.NewPhotoService(elderRepository, profileImageRepository, photoStorage, cfg.PhotoMaxDimension)

	return &App{
		Cfg:              cfg,
		DB:               handle.DB(),
		Handle:           handle,
		PhotoStorage:     photoStorage,
		ReportStorage:    reportStorage,
		ElderService:     service.NewElderService(elderRepository, profileImageRepository, elderPhotoRepository, photoStorage),
		PhotoService:     photoService,
		GalleryService:   service.NewGalleryService(elderPhotoRepository, elderRepository, photoService),
		ChecklistService: service.NewChecklistService(checklistRepository, elderRepository),
		NoteService:      service.NewNoteService(noteRepository, parser),
		ReportService:    service.NewReportService(reportRepository, elderRepository, reportStorage, parser),
		AlarmService:     service.NewAlarmService(alarmRepository),
		EmergencyService: service.NewEmergencyService(cfg.EmergencyNumbers),
		ExportService:    service.NewExportService(elderRepository, noteRepository, reportRepository),
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
