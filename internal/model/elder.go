package model

import (
	"bytes"
	"encoding/json"
)

// Elder is the cared-for person. Optional profile fields are nil when the
// caregiver left them empty.
type Elder struct {
	ID                int64     `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Age               *int      `db:"age" json:"age" validate:"omitnil,min=0,max=150"`
	Address           *string   `db:"address" json:"address"`
	Contacts          *string   `db:"contacts" json:"contacts"`
	Description       *string   `db:"description" json:"description"`
	ImportantInfo     *string   `db:"important_info" json:"important_info"`
	Allergies         *string   `db:"allergies" json:"allergies"`
	ChronicConditions *string   `db:"chronic_conditions" json:"chronic_conditions"`
	Notes             *string   `db:"notes" json:"notes"`
	CreatedAt         Timestamp `db:"created_at" json:"created_at"`
	UpdatedAt         Timestamp `db:"updated_at" json:"updated_at"`
	Version           int       `db:"version" json:"version"`
}

// Optional is one field of a partial update. Set reports whether the key
// was present; a present null leaves Value nil and clears the field.
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

func Null[T any]() Optional[T] { return Optional[T]{Set: true} }

// UnmarshalJSON only runs for keys present in the document, null included.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	o.Value = nil
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

func (o Optional[T]) applyTo(dst **T) {
	if o.Set {
		*dst = o.Value
	}
}

// ElderPatch carries a partial update. Absent keys are left untouched,
// explicit nulls clear the field. When Version is set the update only
// applies if the stored row still has that version.
type ElderPatch struct {
	Name              Optional[string] `json:"name"`
	Age               Optional[int]    `json:"age"`
	Address           Optional[string] `json:"address"`
	Contacts          Optional[string] `json:"contacts"`
	Description       Optional[string] `json:"description"`
	ImportantInfo     Optional[string] `json:"important_info"`
	Allergies         Optional[string] `json:"allergies"`
	ChronicConditions Optional[string] `json:"chronic_conditions"`
	Notes             Optional[string] `json:"notes"`
	Version           *int             `json:"version"`
}

// Apply copies the fields present in p onto e. A null name becomes empty
// and is rejected by validation.
func (p ElderPatch) Apply(e *Elder) {
	if p.Name.Set {
		e.Name = ""
		if p.Name.Value != nil {
			e.Name = *p.Name.Value
		}
	}
	p.Age.applyTo(&e.Age)
	p.Address.applyTo(&e.Address)
	p.Contacts.applyTo(&e.Contacts)
	p.Description.applyTo(&e.Description)
	p.ImportantInfo.applyTo(&e.ImportantInfo)
	p.Allergies.applyTo(&e.Allergies)
	p.ChronicConditions.applyTo(&e.ChronicConditions)
	p.Notes.applyTo(&e.Notes)
}
