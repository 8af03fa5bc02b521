package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/storage"
	"github.com/templui/cuidador/internal/validation"
)

type ElderService struct {
	elderRepo   repository.ElderRepository
	imageRepo   repository.ProfileImageRepository
	galleryRepo repository.ElderPhotoRepository
	photos      storage.Storage
}

func NewElderService(
	elderRepo repository.ElderRepository,
	imageRepo repository.ProfileImageRepository,
	galleryRepo repository.ElderPhotoRepository,
	photos storage.Storage,
) *ElderService {
	return &ElderService{
		elderRepo:   elderRepo,
		imageRepo:   imageRepo,
		galleryRepo: galleryRepo,
		photos:      photos,
	}
}

func (s *ElderService) Create(ctx context.Context, elder *model.Elder) (*model.Elder, error) {
	elder.Name = strings.TrimSpace(elder.Name)

	err := validation.ValidateName(elder.Name)
	if err != nil {
		return nil, err
	}
	err = validation.Struct(elder)
	if err != nil {
		return nil, err
	}

	_, err = s.elderRepo.Create(ctx, elder)
	if err != nil {
		return nil, fmt.Errorf("failed to create elder: %w", err)
	}

	slog.Info("elder created", "elder_id", elder.ID)
	return elder, nil
}

func (s *ElderService) ByID(ctx context.Context, id int64) (*model.Elder, error) {
	return s.elderRepo.ByID(ctx, id)
}

// List returns every elder ordered by name.
func (s *ElderService) List(ctx context.Context) ([]*model.Elder, error) {
	return s.elderRepo.All(ctx)
}

// Latest returns the most recently updated elder.
func (s *ElderService) Latest(ctx context.Context) (*model.Elder, error) {
	return s.elderRepo.MostRecent(ctx)
}

// Update applies patch to the stored elder. Fields absent from the patch
// keep their stored values and null fields are cleared. If patch.Version
// is set it must match the stored version; either way a concurrent change
// between read and write returns repository.ErrElderConflict.
func (s *ElderService) Update(ctx context.Context, id int64, patch model.ElderPatch) (*model.Elder, error) {
	elder, err := s.elderRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Version != nil && *patch.Version != elder.Version {
		return nil, repository.ErrElderConflict
	}

	patch.Apply(elder)
	elder.Name = strings.TrimSpace(elder.Name)

	err = validation.ValidateName(elder.Name)
	if err != nil {
		return nil, err
	}
	err = validation.Struct(elder)
	if err != nil {
		return nil, err
	}

	err = s.elderRepo.Update(ctx, elder)
	if err != nil {
		return nil, fmt.Errorf("failed to update elder: %w", err)
	}

	return elder, nil
}

// Delete removes the elder with its profile image, gallery and their
// files. The elder's checklist and reports are kept.
func (s *ElderService) Delete(ctx context.Context, id int64) error {
	image, err := s.imageRepo.ByElderID(ctx, id)
	if err != nil && !errors.Is(err, repository.ErrProfileImageNotFound) {
		return fmt.Errorf("failed to load profile image: %w", err)
	}

	err = s.elderRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete elder: %w", err)
	}

	var files []string
	if image != nil {
		files = append(files, image.Path)
	}

	gallery, err := s.galleryRepo.DeleteByElderID(ctx, id)
	if err != nil {
		slog.Error("failed to delete gallery of deleted elder", "error", err, "elder_id", id)
	}
	files = append(files, gallery...)

	for _, f := range files {
		delErr := s.photos.Delete(ctx, f)
		if delErr != nil {
			slog.Error("failed to delete photo from storage", "error", delErr, "elder_id", id, "path", f)
		}
	}

	slog.Info("elder deleted", "elder_id", id)
	return nil
}
