package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/storage"
	"github.com/templui/cuidador/internal/validation"
)

const photoQuality = 85

type PhotoService struct {
	elderRepo    repository.ElderRepository
	imageRepo    repository.ProfileImageRepository
	photos       storage.Storage
	maxDimension int
}

func NewPhotoService(
	elderRepo repository.ElderRepository,
	imageRepo repository.ProfileImageRepository,
	photos storage.Storage,
	maxDimension int,
) *PhotoService {
	return &PhotoService{
		elderRepo:    elderRepo,
		imageRepo:    imageRepo,
		photos:       photos,
		maxDimension: maxDimension,
	}
}

// SetPhoto stores r as the elder's profile photo, replacing any previous
// one. filename is only used for logging.
func (s *PhotoService) SetPhoto(ctx context.Context, elderID int64, filename string, r io.Reader) (*model.ProfileImage, error) {
	_, err := s.elderRepo.ByID(ctx, elderID)
	if err != nil {
		return nil, err
	}

	ref, err := s.storeJPEG(ctx, "", r)
	if err != nil {
		slog.Warn("failed to store photo", "error", err, "elder_id", elderID, "filename", filename)
		return nil, err
	}

	previous, err := s.imageRepo.Upsert(ctx, elderID, ref)
	if err != nil {
		// If DB write fails, try to cleanup the stored file
		s.discard(ctx, ref)
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	if previous != "" && previous != ref {
		delErr := s.photos.Delete(ctx, previous)
		if delErr != nil {
			slog.Error("failed to delete replaced photo", "error", delErr, "elder_id", elderID, "path", previous)
		}
	}

	slog.Info("photo updated", "elder_id", elderID)
	return s.imageRepo.ByElderID(ctx, elderID)
}

// storeJPEG auto-orients the image, shrinks it to fit maxDimension,
// re-encodes it as JPEG and saves it under dir. It returns the storage
// reference.
func (s *PhotoService) storeJPEG(ctx context.Context, dir string, r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", validation.Invalid("file", "is not a readable image")
	}

	bounds := img.Bounds()
	if bounds.Dx() > s.maxDimension || bounds.Dy() > s.maxDimension {
		img = imaging.Fit(img, s.maxDimension, s.maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(photoQuality))
	if err != nil {
		return "", fmt.Errorf("failed to encode photo: %w", err)
	}

	key := path.Join(dir, uuid.New().String()+".jpg")
	err = s.photos.Save(ctx, key, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to save photo: %w", err)
	}
	return s.photos.Ref(key), nil
}

// discard removes a stored file whose database row was never written.
func (s *PhotoService) discard(ctx context.Context, ref string) {
	delErr := s.photos.Delete(ctx, ref)
	if delErr != nil {
		slog.Error("failed to delete photo from storage during cleanup", "error", delErr, "path", ref)
	}
}

func (s *PhotoService) Photo(ctx context.Context, elderID int64) (*model.ProfileImage, error) {
	return s.imageRepo.ByElderID(ctx, elderID)
}

// URL returns where clients can fetch the photo from.
func (s *PhotoService) URL(image *model.ProfileImage) string {
	if image == nil {
		return ""
	}
	return s.photos.URL(image.Path)
}

// Open streams the elder's photo.
func (s *PhotoService) Open(ctx context.Context, elderID int64) (io.ReadCloser, error) {
	image, err := s.imageRepo.ByElderID(ctx, elderID)
	if err != nil {
		return nil, err
	}

	rc, err := s.photos.Open(ctx, image.Path)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Warn("profile image points at a missing file", "elder_id", elderID, "path", image.Path)
		return nil, repository.ErrProfileImageNotFound
	}
	return rc, err
}

// RemovePhoto deletes the elder's profile image row and its file.
func (s *PhotoService) RemovePhoto(ctx context.Context, elderID int64) error {
	image, err := s.imageRepo.ByElderID(ctx, elderID)
	if err != nil {
		return err
	}

	err = s.imageRepo.DeleteByElderID(ctx, elderID)
	if err != nil {
		return fmt.Errorf("failed to delete profile image: %w", err)
	}

	// Delete from storage (best effort)
	delErr := s.photos.Delete(ctx, image.Path)
	if delErr != nil {
		slog.Error("failed to delete photo from storage", "error", delErr, "elder_id", elderID, "path", image.Path)
	}

	return nil
}
