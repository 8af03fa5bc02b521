package repository

import (
	"context"
	"errors"

	"github.com/templui/cuidador/internal/db"
	"github.com/templui/cuidador/internal/model"
)

var (
	ErrChecklistNotFound = errors.New("checklist not found")
	ErrSectionNotFound   = errors.New("checklist section not found")
	ErrItemNotFound      = errors.New("checklist item not found")
)

type ChecklistRepository interface {
	ByElderID(ctx context.Context, elderID int64) (*model.Checklist, error)
	// CreateSeeded creates the elder's checklist with the given sections,
	// or returns the existing one untouched.
	CreateSeeded(ctx context.Context, elderID int64, seed []model.SectionSeed) (*model.Checklist, error)
	AddSection(ctx context.Context, checklistID int64, title string) (*model.ChecklistSection, error)
	AddItem(ctx context.Context, sectionID int64, text string) (*model.ChecklistItem, error)
	SetItemChecked(ctx context.Context, sectionID, itemID int64, checked bool) error
	ToggleItem(ctx context.Context, itemID int64) (*model.ChecklistItem, error)
	DeleteItem(ctx context.Context, itemID int64) error
	DeleteSection(ctx context.Context, sectionID int64) error
	ResetForElder(ctx context.Context, elderID int64) error
}

type checklistRepository struct {
	h *db.Handle
}

func NewChecklistRepository(h *db.Handle) ChecklistRepository {
	return &checklistRepository{h: h}
}

func (r *checklistRepository) ByElderID(ctx context.Context, elderID int64) (*model.Checklist, error) {
	var checklist *model.Checklist

	err := r.h.Do(ctx, func(q db.Queryer) error {
		var err error
		checklist, err = loadChecklist(ctx, q, elderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return checklist, nil
}

func (r *checklistRepository) CreateSeeded(ctx context.Context, elderID int64, seed []model.SectionSeed) (*model.Checklist, error) {
	var checklist *model.Checklist

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx,
			`INSERT OR IGNORE INTO checklists (elder_id, created_at) VALUES (?, ?)`,
			elderID, model.Now(),
		)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if rows > 0 {
			checklistID, err := insertID(result)
			if err != nil {
				return err
			}
			for _, s := range seed {
				section, err := insertSection(ctx, q, checklistID, s.Title)
				if err != nil {
					return err
				}
				for _, text := range s.Items {
					_, err = insertItem(ctx, q, section.ID, text)
					if err != nil {
						return err
					}
				}
			}
		}

		checklist, err = loadChecklist(ctx, q, elderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return checklist, nil
}

func (r *checklistRepository) AddSection(ctx context.Context, checklistID int64, title string) (*model.ChecklistSection, error) {
	var section *model.ChecklistSection

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		err := mustExist(ctx, q, "checklists", checklistID, ErrChecklistNotFound)
		if err != nil {
			return err
		}
		section, err = insertSection(ctx, q, checklistID, title)
		return err
	})
	if err != nil {
		return nil, err
	}

	return section, nil
}

func (r *checklistRepository) AddItem(ctx context.Context, sectionID int64, text string) (*model.ChecklistItem, error) {
	var item *model.ChecklistItem

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		err := mustExist(ctx, q, "checklist_sections", sectionID, ErrSectionNotFound)
		if err != nil {
			return err
		}
		item, err = insertItem(ctx, q, sectionID, text)
		return err
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *checklistRepository) SetItemChecked(ctx context.Context, sectionID, itemID int64, checked bool) error {
	return r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx,
			`UPDATE checklist_items SET checked = ? WHERE id = ? AND section_id = ?`,
			checked, itemID, sectionID,
		)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrItemNotFound)
	})
}

// ToggleItem flips the item's checked state and returns the stored item.
func (r *checklistRepository) ToggleItem(ctx context.Context, itemID int64) (*model.ChecklistItem, error) {
	item := &model.ChecklistItem{}

	err := r.h.InTx(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx,
			`UPDATE checklist_items SET checked = 1 - checked WHERE id = ?`, itemID,
		)
		if err != nil {
			return err
		}
		err = affectedOr(result, ErrItemNotFound)
		if err != nil {
			return err
		}
		return q.GetContext(ctx, item,
			`SELECT id, section_id, text, checked FROM checklist_items WHERE id = ?`, itemID,
		)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *checklistRepository) DeleteItem(ctx context.Context, itemID int64) error {
	return r.h.Do(ctx, func(q db.Queryer) error {
		result, err := q.ExecContext(ctx, `DELETE FROM checklist_items WHERE id = ?`, itemID)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrItemNotFound)
	})
}

// DeleteSection removes the section together with its items.
func (r *checklistRepository) DeleteSection(ctx context.Context, sectionID int64) error {
	return r.h.InTx(ctx, func(q db.Queryer) error {
		_, err := q.ExecContext(ctx, `DELETE FROM checklist_items WHERE section_id = ?`, sectionID)
		if err != nil {
			return err
		}

		result, err := q.ExecContext(ctx, `DELETE FROM checklist_sections WHERE id = ?`, sectionID)
		if err != nil {
			return err
		}
		return affectedOr(result, ErrSectionNotFound)
	})
}

// ResetForElder unchecks every item of the elder's checklist and stamps
// the reset time.
func (r *checklistRepository) ResetForElder(ctx context.Context, elderID int64) error {
	return r.h.InTx(ctx, func(q db.Queryer) error {
		var checklistID int64
		err := getOr(ctx, q, ErrChecklistNotFound, &checklistID,
			`SELECT id FROM checklists WHERE elder_id = ?`, elderID,
		)
		if err != nil {
			return err
		}

		_, err = q.ExecContext(ctx, `
			UPDATE checklist_items SET checked = 0
			WHERE section_id IN (SELECT id FROM checklist_sections WHERE checklist_id = ?)`,
			checklistID,
		)
		if err != nil {
			return err
		}

		_, err = q.ExecContext(ctx,
			`UPDATE checklists SET last_reset_at = ? WHERE id = ?`, model.Now(), checklistID,
		)
		return err
	})
}

func loadChecklist(ctx context.Context, q db.Queryer, elderID int64) (*model.Checklist, error) {
	checklist := &model.Checklist{}
	err := getOr(ctx, q, ErrChecklistNotFound, checklist,
		`SELECT id, elder_id, created_at, last_reset_at FROM checklists WHERE elder_id = ?`, elderID,
	)
	if err != nil {
		return nil, err
	}

	var sections []model.ChecklistSection
	err = q.SelectContext(ctx, &sections,
		`SELECT id, checklist_id, title FROM checklist_sections WHERE checklist_id = ? ORDER BY id`,
		checklist.ID,
	)
	if err != nil {
		return nil, err
	}

	var items []model.ChecklistItem
	err = q.SelectContext(ctx, &items, `
		SELECT i.id, i.section_id, i.text, i.checked
		FROM checklist_items i
		JOIN checklist_sections s ON s.id = i.section_id
		WHERE s.checklist_id = ?
		ORDER BY i.id`,
		checklist.ID,
	)
	if err != nil {
		return nil, err
	}

	index := make(map[int64]int, len(sections))
	for i := range sections {
		sections[i].Items = []model.ChecklistItem{}
		index[sections[i].ID] = i
	}
	for _, it := range items {
		if i, ok := index[it.SectionID]; ok {
			sections[i].Items = append(sections[i].Items, it)
		}
	}

	checklist.Sections = sections
	if checklist.Sections == nil {
		checklist.Sections = []model.ChecklistSection{}
	}
	return checklist, nil
}

func insertSection(ctx context.Context, q db.Queryer, checklistID int64, title string) (*model.ChecklistSection, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO checklist_sections (checklist_id, title) VALUES (?, ?)`, checklistID, title,
	)
	if err != nil {
		return nil, err
	}
	id, err := insertID(result)
	if err != nil {
		return nil, err
	}
	return &model.ChecklistSection{ID: id, ChecklistID: checklistID, Title: title, Items: []model.ChecklistItem{}}, nil
}

func insertItem(ctx context.Context, q db.Queryer, sectionID int64, text string) (*model.ChecklistItem, error) {
	result, err := q.ExecContext(ctx,
		`INSERT INTO checklist_items (section_id, text, checked) VALUES (?, ?, 0)`, sectionID, text,
	)
	if err != nil {
		return nil, err
	}
	id, err := insertID(result)
	if err != nil {
		return nil, err
	}
	return &model.ChecklistItem{ID: id, SectionID: sectionID, Text: text}, nil
}

func mustExist(ctx context.Context, q db.Queryer, table string, id int64, notFound error) error {
	var n int
	err := q.GetContext(ctx, &n, `SELECT COUNT(*) FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
