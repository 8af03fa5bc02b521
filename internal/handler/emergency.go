package handler

import (
	"log/slog"
	"net/http"

	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/ui"
)

type EmergencyHandler struct {
	emergencyService *service.EmergencyService
}

func NewEmergencyHandler(emergencyService *service.EmergencyService) *EmergencyHandler {
	return &EmergencyHandler{
		emergencyService: emergencyService,
	}
}

func (h *EmergencyHandler) Numbers(w http.ResponseWriter, r *http.Request) {
	ui.JSON(w, r, http.StatusOK, h.emergencyService.Numbers())
}

// Dial returns the tel: URI for the requested number.
func (h *EmergencyHandler) Dial(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Number string `json:"number"`
	}
	if !decode(w, r, &req) {
		return
	}

	uri, err := h.emergencyService.DialURI(req.Number)
	if err != nil {
		fail(w, r, err, "prepare call")
		return
	}

	slog.Info("emergency dial requested", "uri", uri)
	ui.JSON(w, r, http.StatusOK, map[string]string{"uri": uri})
}
