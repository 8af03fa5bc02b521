package model

// Checklist is an elder's care routine. LastResetAt is zero until the
// first reset.
type Checklist struct {
	ID          int64              `db:"id" json:"id"`
	ElderID     int64              `db:"elder_id" json:"elder_id"`
	CreatedAt   Timestamp          `db:"created_at" json:"created_at"`
	LastResetAt Timestamp          `db:"last_reset_at" json:"last_reset_at"`
	Sections    []ChecklistSection `db:"-" json:"sections"`
}

type ChecklistSection struct {
	ID          int64           `db:"id" json:"id"`
	ChecklistID int64           `db:"checklist_id" json:"checklist_id"`
	Title       string          `db:"title" json:"title"`
	Items       []ChecklistItem `db:"-" json:"items"`
}

type ChecklistItem struct {
	ID        int64  `db:"id" json:"id"`
	SectionID int64  `db:"section_id" json:"section_id"`
	Text      string `db:"text" json:"text"`
	Checked   bool   `db:"checked" json:"checked"`
}

// SectionSeed describes a section created with every new checklist.
type SectionSeed struct {
	Title string
	Items []string
}

// DefaultChecklist is seeded the first time an elder's checklist is opened.
var DefaultChecklist = []SectionSeed{
	{
		Title: "Personal hygiene",
		Items: []string{"Bath given", "Teeth brushed", "Clothes changed"},
	},
	{
		Title: "Medication",
		Items: []string{"Morning medication", "Insulin administered"},
	},
}

// CheckedCount returns how many items are checked across all sections.
func (c *Checklist) CheckedCount() (checked, total int) {
	for _, s := range c.Sections {
		for _, it := range s.Items {
			total++
			if it.Checked {
				checked++
			}
		}
	}
	return checked, total
}
