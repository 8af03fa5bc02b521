package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/ui"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportHandler struct {
	exportService *service.ExportService
}

func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
	}
}

// Browse returns the raw tables for the data browser.
func (h *ExportHandler) Browse(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.exportService.Browse(r.Context())
	if err != nil {
		fail(w, r, err, "load data")
		return
	}

	ui.JSON(w, r, http.StatusOK, snapshot)
}

func (h *ExportHandler) XLSX(w http.ResponseWriter, r *http.Request) {
	// Buffered so a failure can still produce an alert instead of a
	// truncated download.
	var buf bytes.Buffer
	err := h.exportService.WriteXLSX(r.Context(), &buf)
	if err != nil {
		fail(w, r, err, "export data")
		return
	}

	filename := "cuidador-" + time.Now().Format("2006-01-02") + ".xlsx"
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

	_, err = buf.WriteTo(w)
	if err != nil {
		slog.Error("failed to write export", "error", err)
	}
}
