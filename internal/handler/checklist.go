package handler

import (
	"net/http"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/ui"
)

type ChecklistHandler struct {
	checklistService *service.ChecklistService
}

func NewChecklistHandler(checklistService *service.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
	}
}

type checklistResponse struct {
	*model.Checklist
	Checked int `json:"checked"`
	Total   int `json:"total"`
}

func newChecklistResponse(c *model.Checklist) checklistResponse {
	checked, total := c.CheckedCount()
	return checklistResponse{Checklist: c, Checked: checked, Total: total}
}

func (h *ChecklistHandler) Show(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	checklist, err := h.checklistService.Open(r.Context(), elderID)
	if err != nil {
		fail(w, r, err, "open checklist", "elder_id", elderID)
		return
	}

	ui.JSON(w, r, http.StatusOK, newChecklistResponse(checklist))
}

func (h *ChecklistHandler) AddSection(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	var req struct {
		Title string `json:"title"`
	}
	if !decode(w, r, &req) {
		return
	}

	section, err := h.checklistService.AddSection(r.Context(), elderID, req.Title)
	if err != nil {
		fail(w, r, err, "add section", "elder_id", elderID)
		return
	}

	ui.JSON(w, r, http.StatusCreated, section)
}

func (h *ChecklistHandler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(r, "sectionID")
	if !ok {
		badRequest(w, r, "Invalid section id")
		return
	}

	err := h.checklistService.DeleteSection(r.Context(), sectionID)
	if err != nil {
		fail(w, r, err, "delete section", "section_id", sectionID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChecklistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(r, "sectionID")
	if !ok {
		badRequest(w, r, "Invalid section id")
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if !decode(w, r, &req) {
		return
	}

	item, err := h.checklistService.AddItem(r.Context(), sectionID, req.Text)
	if err != nil {
		fail(w, r, err, "add item", "section_id", sectionID)
		return
	}

	ui.JSON(w, r, http.StatusCreated, item)
}

// SetItem stores an explicit checked state.
func (h *ChecklistHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	sectionID, ok := pathID(r, "sectionID")
	if !ok {
		badRequest(w, r, "Invalid section id")
		return
	}
	itemID, ok := pathID(r, "itemID")
	if !ok {
		badRequest(w, r, "Invalid item id")
		return
	}

	var req struct {
		Checked *bool `json:"checked"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Checked == nil {
		badRequest(w, r, "Missing checked state")
		return
	}

	err := h.checklistService.SetItemChecked(r.Context(), sectionID, itemID, *req.Checked)
	if err != nil {
		fail(w, r, err, "update item", "section_id", sectionID, "item_id", itemID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChecklistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		badRequest(w, r, "Invalid item id")
		return
	}

	item, err := h.checklistService.ToggleItem(r.Context(), itemID)
	if err != nil {
		fail(w, r, err, "toggle item", "item_id", itemID)
		return
	}

	ui.JSON(w, r, http.StatusOK, item)
}

func (h *ChecklistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := pathID(r, "itemID")
	if !ok {
		badRequest(w, r, "Invalid item id")
		return
	}

	err := h.checklistService.DeleteItem(r.Context(), itemID)
	if err != nil {
		fail(w, r, err, "delete item", "item_id", itemID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ChecklistHandler) Reset(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	checklist, err := h.checklistService.Reset(r.Context(), elderID)
	if err != nil {
		fail(w, r, err, "reset checklist", "elder_id", elderID)
		return
	}

	ui.JSON(w, r, http.StatusOK, newChecklistResponse(checklist))
}
