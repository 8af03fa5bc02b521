package handler

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/service"
	"github.com/templui/cuidador/internal/ui"
	"github.com/templui/cuidador/internal/validation"
)

type PhotoHandler struct {
	photoService *service.PhotoService
}

func NewPhotoHandler(photoService *service.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

type photoResponse struct {
	*model.ProfileImage
	URL string `json:"url"`
}

// Upload takes a multipart form with the image in the "photo" field.
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validation.ImageConstraints.MaxSize+(1<<20))
	err := r.ParseMultipartForm(validation.ImageConstraints.MaxSize)
	if err != nil {
		badRequest(w, r, "Upload is too large or malformed")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		badRequest(w, r, "Missing photo file")
		return
	}
	defer func() { _ = file.Close() }()

	err = validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		fail(w, r, err, "upload photo", "elder_id", elderID)
		return
	}

	image, err := h.photoService.SetPhoto(r.Context(), elderID, header.Filename, file)
	if err != nil {
		fail(w, r, err, "upload photo", "elder_id", elderID)
		return
	}

	ui.JSON(w, r, http.StatusOK, photoResponse{ProfileImage: image, URL: h.photoService.URL(image)})
}

// Show streams the photo itself; ?meta=1 returns the profile image record.
func (h *PhotoHandler) Show(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	if r.URL.Query().Get("meta") != "" {
		image, err := h.photoService.Photo(r.Context(), elderID)
		if err != nil {
			fail(w, r, err, "load photo", "elder_id", elderID)
			return
		}
		ui.JSON(w, r, http.StatusOK, photoResponse{ProfileImage: image, URL: h.photoService.URL(image)})
		return
	}

	rc, err := h.photoService.Open(r.Context(), elderID)
	if err != nil {
		fail(w, r, err, "load photo", "elder_id", elderID)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Cache-Control", "private, no-cache")
	_, err = io.Copy(w, rc)
	if err != nil {
		slog.Error("failed to stream photo", "error", err, "elder_id", elderID)
	}
}

func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	err := h.photoService.RemovePhoto(r.Context(), elderID)
	if err != nil {
		fail(w, r, err, "remove photo", "elder_id", elderID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
