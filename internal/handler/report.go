package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/storage"
	"github.com/templui/cuidador/internal/ui"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

type reportResponse struct {
	*model.Report
	URL string `json:"url"`
}

func (h *ReportHandler) responses(reports []*model.Report) []reportResponse {
	out := make([]reportResponse, 0, len(reports))
	for _, rep := range reports {
		out = append(out, reportResponse{Report: rep, URL: h.reportService.URL(rep)})
	}
	return out
}

func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportService.List(r.Context())
	if err != nil {
		fail(w, r, err, "load reports")
		return
	}

	ui.JSON(w, r, http.StatusOK, h.responses(reports))
}

func (h *ReportHandler) ForElder(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	reports, err := h.reportService.ForElder(r.Context(), elderID)
	if err != nil {
		fail(w, r, err, "load reports", "elder_id", elderID)
		return
	}

	ui.JSON(w, r, http.StatusOK, h.responses(reports))
}

func (h *ReportHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid report id")
		return
	}

	report, err := h.reportService.ByID(r.Context(), id)
	if err != nil {
		fail(w, r, err, "load report", "report_id", id)
		return
	}

	ui.JSON(w, r, http.StatusOK, reportResponse{Report: report, URL: h.reportService.URL(report)})
}

// Generate creates a report for the elder in the path.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	var input model.ReportInput
	if !decode(w, r, &input) {
		return
	}
	input.ElderID = elderID

	report, err := h.reportService.Generate(r.Context(), input)
	if err != nil {
		fail(w, r, err, "generate report", "elder_id", elderID)
		return
	}

	ui.JSON(w, r, http.StatusCreated, reportResponse{Report: report, URL: h.reportService.URL(report)})
}

func (h *ReportHandler) Artifact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid report id")
		return
	}

	rc, err := h.reportService.Artifact(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		ui.RenderAlert(w, r, http.StatusNotFound, ui.Alert{
			Title:       "Not found",
			Description: "The report document is missing",
		})
		return
	}
	if err != nil {
		fail(w, r, err, "load report document", "report_id", id)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = io.Copy(w, rc)
	if err != nil {
		slog.Error("failed to stream report", "error", err, "report_id", id)
	}
}
