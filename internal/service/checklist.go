package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

type ChecklistService struct {
	checklistRepo repository.ChecklistRepository
	elderRepo     repository.ElderRepository
	seed          []model.SectionSeed
}

func NewChecklistService(checklistRepo repository.ChecklistRepository, elderRepo repository.ElderRepository) *ChecklistService {
	return &ChecklistService{
		checklistRepo: checklistRepo,
		elderRepo:     elderRepo,
		seed:          model.DefaultChecklist,
	}
}

// Open returns the elder's checklist, creating it from the default
// sections on first use.
func (s *ChecklistService) Open(ctx context.Context, elderID int64) (*model.Checklist, error) {
	checklist, err := s.checklistRepo.ByElderID(ctx, elderID)
	if err == nil {
		return checklist, nil
	}
	if !errors.Is(err, repository.ErrChecklistNotFound) {
		return nil, err
	}

	_, err = s.elderRepo.ByID(ctx, elderID)
	if err != nil {
		return nil, err
	}

	checklist, err = s.checklistRepo.CreateSeeded(ctx, elderID, s.seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create checklist: %w", err)
	}

	slog.Info("checklist created", "elder_id", elderID, "checklist_id", checklist.ID)
	return checklist, nil
}

func (s *ChecklistService) AddSection(ctx context.Context, elderID int64, title string) (*model.ChecklistSection, error) {
	title = strings.TrimSpace(title)
	err := validation.Required("title", title)
	if err != nil {
		return nil, err
	}

	checklist, err := s.Open(ctx, elderID)
	if err != nil {
		return nil, err
	}

	return s.checklistRepo.AddSection(ctx, checklist.ID, title)
}

func (s *ChecklistService) AddItem(ctx context.Context, sectionID int64, text string) (*model.ChecklistItem, error) {
	text = strings.TrimSpace(text)
	err := validation.Required("text", text)
	if err != nil {
		return nil, err
	}

	return s.checklistRepo.AddItem(ctx, sectionID, text)
}

func (s *ChecklistService) SetItemChecked(ctx context.Context, sectionID, itemID int64, checked bool) error {
	return s.checklistRepo.SetItemChecked(ctx, sectionID, itemID, checked)
}

func (s *ChecklistService) ToggleItem(ctx context.Context, itemID int64) (*model.ChecklistItem, error) {
	return s.checklistRepo.ToggleItem(ctx, itemID)
}

func (s *ChecklistService) DeleteItem(ctx context.Context, itemID int64) error {
	return s.checklistRepo.DeleteItem(ctx, itemID)
}

func (s *ChecklistService) DeleteSection(ctx context.Context, sectionID int64) error {
	return s.checklistRepo.DeleteSection(ctx, sectionID)
}

// Reset unchecks every item and returns the refreshed checklist.
func (s *ChecklistService) Reset(ctx context.Context, elderID int64) (*model.Checklist, error) {
	_, err := s.Open(ctx, elderID)
	if err != nil {
		return nil, err
	}

	err = s.checklistRepo.ResetForElder(ctx, elderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reset checklist: %w", err)
	}

	return s.checklistRepo.ByElderID(ctx, elderID)
}
