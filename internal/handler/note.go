package handler

import (
	"net/http"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/ui"
)

type NoteHandler struct {
	noteService *service.NoteService
}

func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.List(r.Context())
	if err != nil {
		fail(w, r, err, "load notes")
		return
	}
	if notes == nil {
		notes = []*model.Note{}
	}

	ui.JSON(w, r, http.StatusOK, notes)
}

func (h *NoteHandler) Latest(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Latest(r.Context())
	if err != nil {
		fail(w, r, err, "load note")
		return
	}

	ui.JSON(w, r, http.StatusOK, note)
}

func (h *NoteHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid note id")
		return
	}

	note, err := h.noteService.ByID(r.Context(), id)
	if err != nil {
		fail(w, r, err, "load note", "note_id", id)
		return
	}

	ui.JSON(w, r, http.StatusOK, note)
}

func (h *NoteHandler) HTML(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid note id")
		return
	}

	body, err := h.noteService.RenderHTML(r.Context(), id)
	if err != nil {
		fail(w, r, err, "render note", "note_id", id)
		return
	}

	ui.HTML(w, r, http.StatusOK, body)
}

// Create saves a new note. Any id in the body is ignored.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var note model.Note
	if !decode(w, r, &note) {
		return
	}
	note.ID = 0

	saved, err := h.noteService.Save(r.Context(), &note)
	if err != nil {
		fail(w, r, err, "save note")
		return
	}

	ui.JSON(w, r, http.StatusCreated, saved)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid note id")
		return
	}

	var note model.Note
	if !decode(w, r, &note) {
		return
	}
	note.ID = id

	saved, err := h.noteService.Save(r.Context(), &note)
	if err != nil {
		fail(w, r, err, "save note", "note_id", id)
		return
	}

	ui.JSON(w, r, http.StatusOK, saved)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid note id")
		return
	}

	err := h.noteService.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err, "delete note", "note_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
