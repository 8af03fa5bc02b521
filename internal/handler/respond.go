package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/ui"
	"github.com/templui/cuidador/internal/validation"
)

const maxJSONBody = 1 << 20

type errorAlert struct {
	err         error
	description string
}

var notFoundAlerts = []errorAlert{
	{repository.ErrElderNotFound, "This elder does not exist or was deleted."},
	{repository.ErrProfileImageNotFound, "This elder has no profile photo."},
	{repository.ErrElderPhotoNotFound, "This photo does not exist or was deleted."},
	{repository.ErrChecklistNotFound, "This elder has no checklist yet."},
	{repository.ErrSectionNotFound, "This checklist section does not exist."},
	{repository.ErrItemNotFound, "This checklist item does not exist."},
	{repository.ErrNoteNotFound, "This note does not exist or was deleted."},
	{repository.ErrReportNotFound, "This report does not exist."},
	{repository.ErrAlarmNotFound, "This alarm does not exist or was deleted."},
}

var conflictAlerts = []errorAlert{
	{repository.ErrElderConflict, "This elder was changed elsewhere. Reload and try again."},
	{repository.ErrNoteConflict, "This note was changed elsewhere. Reload and try again."},
}

// fail turns err into an alert response. Unexpected errors are logged
// with attrs and reported as a generic failure to perform action.
func fail(w http.ResponseWriter, r *http.Request, err error, action string, attrs ...any) {
	var invalid *validation.Error
	if errors.As(err, &invalid) {
		ui.RenderAlert(w, r, http.StatusBadRequest, ui.Alert{
			Title:       "Check the form",
			Description: invalid.Message,
			Fields:      invalid.Fields,
		})
		return
	}

	for _, a := range notFoundAlerts {
		if errors.Is(err, a.err) {
			ui.RenderAlert(w, r, http.StatusNotFound, ui.Alert{
				Title:       "Not found",
				Description: a.description,
			})
			return
		}
	}

	for _, a := range conflictAlerts {
		if errors.Is(err, a.err) {
			ui.RenderAlert(w, r, http.StatusConflict, ui.Alert{
				Title:       "Changed elsewhere",
				Description: a.description,
				Variant:     ui.VariantWarning,
			})
			return
		}
	}

	slog.Error("failed to "+action, append([]any{"error", err}, attrs...)...)
	ui.RenderAlert(w, r, http.StatusInternalServerError, ui.Alert{
		Title:       "Error",
		Description: "Failed to " + action,
	})
}

func badRequest(w http.ResponseWriter, r *http.Request, description string) {
	ui.RenderAlert(w, r, http.StatusBadRequest, ui.Alert{
		Title:       "Invalid request",
		Description: description,
	})
}

// pathID parses a positive integer path value.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		badRequest(w, r, "Request body is not valid JSON")
		return false
	}
	return true
}
