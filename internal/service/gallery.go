package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/storage"
)

const galleryDir = "gallery"

// GalleryService keeps the photos taken of an elder. They share the
// profile photo storage and processing.
type GalleryService struct {
	galleryRepo repository.ElderPhotoRepository
	elderRepo   repository.ElderRepository
	photos      *PhotoService
}

func NewGalleryService(
	galleryRepo repository.ElderPhotoRepository,
	elderRepo repository.ElderRepository,
	photos *PhotoService,
) *GalleryService {
	return &GalleryService{
		galleryRepo: galleryRepo,
		elderRepo:   elderRepo,
		photos:      photos,
	}
}

func (s *GalleryService) List(ctx context.Context, elderID int64) ([]*model.ElderPhoto, error) {
	_, err := s.elderRepo.ByID(ctx, elderID)
	if err != nil {
		return nil, err
	}
	return s.galleryRepo.ByElderID(ctx, elderID)
}

func (s *GalleryService) ByID(ctx context.Context, id int64) (*model.ElderPhoto, error) {
	return s.galleryRepo.ByID(ctx, id)
}

// Add stores r in the elder's gallery under a display name derived from
// filename.
func (s *GalleryService) Add(ctx context.Context, elderID int64, filename string, r io.Reader) (*model.ElderPhoto, error) {
	_, err := s.elderRepo.ByID(ctx, elderID)
	if err != nil {
		return nil, err
	}

	ref, err := s.photos.storeJPEG(ctx, galleryDir, r)
	if err != nil {
		slog.Warn("failed to store gallery photo", "error", err, "elder_id", elderID, "filename", filename)
		return nil, err
	}

	photo := &model.ElderPhoto{
		ElderID: elderID,
		Name:    photoName(filename, time.Now()),
		Path:    ref,
	}
	_, err = s.galleryRepo.Create(ctx, photo)
	if err != nil {
		s.photos.discard(ctx, ref)
		return nil, fmt.Errorf("failed to record gallery photo: %w", err)
	}

	slog.Info("gallery photo added", "elder_id", elderID, "photo_id", photo.ID)
	return photo, nil
}

func (s *GalleryService) SetFavorite(ctx context.Context, id int64, favorite bool) (*model.ElderPhoto, error) {
	err := s.galleryRepo.SetFavorite(ctx, id, favorite)
	if err != nil {
		return nil, err
	}
	return s.galleryRepo.ByID(ctx, id)
}

// Delete removes the gallery row and then its file. A profile image made
// from the photo is a separate copy and stays.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	photo, err := s.galleryRepo.ByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.galleryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery photo: %w", err)
	}

	delErr := s.photos.photos.Delete(ctx, photo.Path)
	if delErr != nil {
		slog.Error("failed to delete gallery file", "error", delErr, "photo_id", id, "path", photo.Path)
	}
	return nil
}

// SetAsProfile copies the gallery photo into the elder's profile image.
func (s *GalleryService) SetAsProfile(ctx context.Context, id int64) (*model.ProfileImage, error) {
	rc, photo, err := s.open(ctx, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return s.photos.SetPhoto(ctx, photo.ElderID, photo.Name, rc)
}

func (s *GalleryService) Open(ctx context.Context, id int64) (io.ReadCloser, error) {
	rc, _, err := s.open(ctx, id)
	return rc, err
}

func (s *GalleryService) URL(photo *model.ElderPhoto) string {
	return s.photos.photos.URL(photo.Path)
}

// RemoveForElder deletes every gallery photo of the elder, files included.
func (s *GalleryService) RemoveForElder(ctx context.Context, elderID int64) error {
	paths, err := s.galleryRepo.DeleteByElderID(ctx, elderID)
	if err != nil {
		return err
	}
	for _, p := range paths {
		delErr := s.photos.photos.Delete(ctx, p)
		if delErr != nil {
			slog.Error("failed to delete gallery file", "error", delErr, "elder_id", elderID, "path", p)
		}
	}
	return nil
}

func (s *GalleryService) open(ctx context.Context, id int64) (io.ReadCloser, *model.ElderPhoto, error) {
	photo, err := s.galleryRepo.ByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.photos.photos.Open(ctx, photo.Path)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Warn("gallery photo points at a missing file", "photo_id", id, "path", photo.Path)
		return nil, nil, repository.ErrElderPhotoNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return rc, photo, nil
}

// photoName keeps the uploaded base name with spaces replaced, or makes
// one up from the capture time.
func photoName(filename string, now time.Time) string {
	name := strings.TrimSpace(filepath.Base(filename))
	if name == "" || name == "." || name == "/" {
		return fmt.Sprintf("photo_%d.jpg", now.UnixMilli())
	}
	return strings.Join(strings.Fields(name), "_")
}
