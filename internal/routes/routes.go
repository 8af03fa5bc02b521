package routes

import (
	"net/http"
	"time"

	"github.com/templui/cuidador/internal/app"
	"github.com/templui/cuidador/internal/handler"
	"github.com/templui/cuidador/internal/middleware"
	"github.com/templui/cuidador/internal/storage"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	elder := handler.NewElderHandler(app.ElderService)
	photo := handler.NewPhotoHandler(app.PhotoService)
	gallery := handler.NewGalleryHandler(app.GalleryService, app.PhotoService)
	checklist := handler.NewChecklistHandler(app.ChecklistService)
	note := handler.NewNoteHandler(app.NoteService)
	report := handler.NewReportHandler(app.ReportService)
	alarm := handler.NewAlarmHandler(app.AlarmService)
	emergency := handler.NewEmergencyHandler(app.EmergencyService)
	export := handler.NewExportHandler(app.ExportService)

	mux := http.NewServeMux()

	// Static files (local storage only; S3 hands out presigned URLs)
	for _, s := range []storage.Storage{app.PhotoStorage, app.ReportStorage} {
		local, ok := s.(*storage.LocalStorage)
		if ok {
			mux.Handle("GET "+local.URLPrefix(), http.StripPrefix(local.URLPrefix(), http.FileServer(http.Dir(local.Dir()))))
		}
	}

	mux.HandleFunc("GET /healthz", health.Health)

	// Elders
	mux.HandleFunc("GET /api/elders", elder.List)
	mux.HandleFunc("POST /api/elders", elder.Create)
	mux.HandleFunc("GET /api/elders/latest", elder.Latest)
	mux.HandleFunc("GET /api/elders/{id}", elder.Show)
	mux.HandleFunc("PATCH /api/elders/{id}", elder.Update)
	mux.HandleFunc("DELETE /api/elders/{id}", elder.Delete)

	// Photos
	mux.HandleFunc("GET /api/elders/{id}/photo", photo.Show)
	mux.HandleFunc("POST /api/elders/{id}/photo", photo.Upload)
	mux.HandleFunc("DELETE /api/elders/{id}/photo", photo.Delete)

	// Gallery
	mux.HandleFunc("GET /api/elders/{id}/gallery", gallery.List)
	mux.HandleFunc("POST /api/elders/{id}/gallery", gallery.Add)
	mux.HandleFunc("GET /api/gallery/{photoID}", gallery.Show)
	mux.HandleFunc("PUT /api/gallery/{photoID}/favorite", gallery.SetFavorite)
	mux.HandleFunc("POST /api/gallery/{photoID}/profile", gallery.SetAsProfile)
	mux.HandleFunc("DELETE /api/gallery/{photoID}", gallery.Delete)

	// Checklist
	mux.HandleFunc("GET /api/elders/{id}/checklist", checklist.Show)
	mux.HandleFunc("POST /api/elders/{id}/checklist/reset", checklist.Reset)
	mux.HandleFunc("POST /api/elders/{id}/checklist/sections", checklist.AddSection)
	mux.HandleFunc("DELETE /api/checklist/sections/{sectionID}", checklist.DeleteSection)
	mux.HandleFunc("POST /api/checklist/sections/{sectionID}/items", checklist.AddItem)
	mux.HandleFunc("PUT /api/checklist/sections/{sectionID}/items/{itemID}", checklist.SetItem)
	mux.HandleFunc("POST /api/checklist/items/{itemID}/toggle", checklist.ToggleItem)
	mux.HandleFunc("DELETE /api/checklist/items/{itemID}", checklist.DeleteItem)

	// Reports
	mux.HandleFunc("GET /api/elders/{id}/reports", report.ForElder)
	mux.HandleFunc("POST /api/elders/{id}/reports", report.Generate)
	mux.HandleFunc("GET /api/reports", report.List)
	mux.HandleFunc("GET /api/reports/{id}", report.Show)
	mux.HandleFunc("GET /api/reports/{id}/artifact", report.Artifact)

	// Notes
	mux.HandleFunc("GET /api/notes", note.List)
	mux.HandleFunc("POST /api/notes", note.Create)
	mux.HandleFunc("GET /api/notes/latest", note.Latest)
	mux.HandleFunc("GET /api/notes/{id}", note.Show)
	mux.HandleFunc("GET /api/notes/{id}/html", note.HTML)
	mux.HandleFunc("PUT /api/notes/{id}", note.Update)
	mux.HandleFunc("DELETE /api/notes/{id}", note.Delete)

	// Alarms
	mux.HandleFunc("GET /api/alarms", alarm.List)
	mux.HandleFunc("POST /api/alarms", alarm.Create)
	mux.HandleFunc("DELETE /api/alarms/{id}", alarm.Delete)

	// Emergency (dial is rate limited)
	dialLimit := middleware.RateLimit(10, time.Minute, app.Cfg.TrustedProxies)
	mux.HandleFunc("GET /api/emergency/numbers", emergency.Numbers)
	mux.HandleFunc("POST /api/emergency/dial", dialLimit(emergency.Dial))

	// Raw data
	mux.HandleFunc("GET /api/browse", export.Browse)
	mux.HandleFunc("GET /api/export.xlsx", export.XLSX)

	return middleware.Chain(mux,
		middleware.Recover,
		middleware.RequestLogging,
		middleware.Config(app.Cfg),
	)
}
