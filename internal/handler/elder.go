package handler

import (
	"net/http"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/ui"
)

type ElderHandler struct {
	elderService *service.ElderService
}

func NewElderHandler(elderService *service.ElderService) *ElderHandler {
	return &ElderHandler{
		elderService: elderService,
	}
}

func (h *ElderHandler) List(w http.ResponseWriter, r *http.Request) {
	elders, err := h.elderService.List(r.Context())
	if err != nil {
		fail(w, r, err, "load elders")
		return
	}
	if elders == nil {
		elders = []*model.Elder{}
	}

	ui.JSON(w, r, http.StatusOK, elders)
}

func (h *ElderHandler) Latest(w http.ResponseWriter, r *http.Request) {
	elder, err := h.elderService.Latest(r.Context())
	if err != nil {
		fail(w, r, err, "load elder")
		return
	}

	ui.JSON(w, r, http.StatusOK, elder)
}

func (h *ElderHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	elder, err := h.elderService.ByID(r.Context(), id)
	if err != nil {
		fail(w, r, err, "load elder", "elder_id", id)
		return
	}

	ui.JSON(w, r, http.StatusOK, elder)
}

func (h *ElderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var elder model.Elder
	if !decode(w, r, &elder) {
		return
	}

	created, err := h.elderService.Create(r.Context(), &elder)
	if err != nil {
		fail(w, r, err, "save elder")
		return
	}

	ui.JSON(w, r, http.StatusCreated, created)
}

func (h *ElderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	var patch model.ElderPatch
	if !decode(w, r, &patch) {
		return
	}

	elder, err := h.elderService.Update(r.Context(), id, patch)
	if err != nil {
		fail(w, r, err, "update elder", "elder_id", id)
		return
	}

	ui.JSON(w, r, http.StatusOK, elder)
}

func (h *ElderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	err := h.elderService.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err, "delete elder", "elder_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
