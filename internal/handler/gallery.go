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

type GalleryHandler struct {
	galleryService *service.GalleryService
	photoService   *service.PhotoService
}

func NewGalleryHandler(galleryService *service.GalleryService, photoService *service.PhotoService) *GalleryHandler {
	return &GalleryHandler{
		galleryService: galleryService,
		photoService:   photoService,
	}
}

type galleryPhotoResponse struct {
	*model.ElderPhoto
	URL string `json:"url"`
}

func (h *GalleryHandler) respond(w http.ResponseWriter, r *http.Request, status int, photo *model.ElderPhoto) {
	ui.JSON(w, r, status, galleryPhotoResponse{ElderPhoto: photo, URL: h.galleryService.URL(photo)})
}

func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	elderID, ok := pathID(r, "id")
	if !ok {
		badRequest(w, r, "Invalid elder id")
		return
	}

	photos, err := h.galleryService.List(r.Context(), elderID)
	if err != nil {
		fail(w, r, err, "load photos", "elder_id", elderID)
		return
	}

	out := make([]galleryPhotoResponse, 0, len(photos))
	for _, p := range photos {
		out = append(out, galleryPhotoResponse{ElderPhoto: p, URL: h.galleryService.URL(p)})
	}
	ui.JSON(w, r, http.StatusOK, out)
}

// Add takes a multipart form with the image in the "photo" field.
func (h *GalleryHandler) Add(w http.ResponseWriter, r *http.Request) {
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
		fail(w, r, err, "add photo", "elder_id", elderID)
		return
	}

	photo, err := h.galleryService.Add(r.Context(), elderID, header.Filename, file)
	if err != nil {
		fail(w, r, err, "add photo", "elder_id", elderID)
		return
	}

	h.respond(w, r, http.StatusCreated, photo)
}

func (h *GalleryHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "photoID")
	if !ok {
		badRequest(w, r, "Invalid photo id")
		return
	}

	rc, err := h.galleryService.Open(r.Context(), id)
	if err != nil {
		fail(w, r, err, "load photo", "photo_id", id)
		return
	}
	defer func() { _ = rc.Close() }()

	w.Header().Set("Content-Type", "image/jpeg")
	_, err = io.Copy(w, rc)
	if err != nil {
		slog.Error("failed to stream gallery photo", "error", err, "photo_id", id)
	}
}

func (h *GalleryHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "photoID")
	if !ok {
		badRequest(w, r, "Invalid photo id")
		return
	}

	var req struct {
		Favorite *bool `json:"favorite"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Favorite == nil {
		badRequest(w, r, "Missing favorite flag")
		return
	}

	photo, err := h.galleryService.SetFavorite(r.Context(), id, *req.Favorite)
	if err != nil {
		fail(w, r, err, "update photo", "photo_id", id)
		return
	}

	h.respond(w, r, http.StatusOK, photo)
}

// SetAsProfile makes a copy of the photo the elder's profile picture.
func (h *GalleryHandler) SetAsProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "photoID")
	if !ok {
		badRequest(w, r, "Invalid photo id")
		return
	}

	image, err := h.galleryService.SetAsProfile(r.Context(), id)
	if err != nil {
		fail(w, r, err, "set profile photo", "photo_id", id)
		return
	}

	ui.JSON(w, r, http.StatusOK, photoResponse{ProfileImage: image, URL: h.photoService.URL(image)})
}

func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "photoID")
	if !ok {
		badRequest(w, r, "Invalid photo id")
		return
	}

	err := h.galleryService.Delete(r.Context(), id)
	if err != nil {
		fail(w, r, err, "delete photo", "photo_id", id)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
