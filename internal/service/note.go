package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/templui/cuidador/internal/markdown"
	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/repository"
	"github.com/templui/cuidador/internal/validation"
)

type NoteService struct {
	noteRepo repository.NoteRepository
	parser   *markdown.Parser
}

func NewNoteService(noteRepo repository.NoteRepository, parser *markdown.Parser) *NoteService {
	return &NoteService{
		noteRepo: noteRepo,
		parser:   parser,
	}
}

// Save inserts a note without an id and updates one with an id in place.
// A non-zero Version on an update must match the stored note.
func (s *NoteService) Save(ctx context.Context, note *model.Note) (*model.Note, error) {
	note.Title = strings.TrimSpace(note.Title)

	err := validation.Struct(note)
	if err != nil {
		return nil, err
	}

	if note.ID == 0 {
		_, err = s.noteRepo.Create(ctx, note)
		if err != nil {
			return nil, fmt.Errorf("failed to create note: %w", err)
		}
		return note, nil
	}

	err = s.noteRepo.Update(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return note, nil
}

// Latest returns the most recently updated note.
func (s *NoteService) Latest(ctx context.Context) (*model.Note, error) {
	return s.noteRepo.MostRecent(ctx)
}

func (s *NoteService) ByID(ctx context.Context, id int64) (*model.Note, error) {
	return s.noteRepo.ByID(ctx, id)
}

func (s *NoteService) List(ctx context.Context) ([]*model.Note, error) {
	return s.noteRepo.All(ctx)
}

func (s *NoteService) Delete(ctx context.Context, id int64) error {
	return s.noteRepo.Delete(ctx, id)
}

// RenderHTML renders the note body as markdown.
func (s *NoteService) RenderHTML(ctx context.Context, id int64) ([]byte, error) {
	note, err := s.noteRepo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	html, err := s.parser.Parse([]byte(note.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to render note: %w", err)
	}
	return html, nil
}
