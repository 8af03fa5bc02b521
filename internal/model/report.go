package model

// Report is an append-only snapshot of the caregiver's entries for one
// elder on one day. ArtifactPath points at the generated document.
type Report struct {
	ID           int64     `db:"id" json:"id"`
	ElderID      int64     `db:"elder_id" json:"elder_id"`
	Date         string    `db:"date" json:"date"`
	Medications  string    `db:"medications" json:"medications"`
	Nutrition    string    `db:"nutrition" json:"nutrition"`
	Activities   string    `db:"activities" json:"activities"`
	Mood         string    `db:"mood" json:"mood"`
	Remarks      string    `db:"remarks" json:"remarks"`
	ArtifactPath string    `db:"artifact_path" json:"artifact_path"`
	CreatedAt    Timestamp `db:"created_at" json:"created_at"`
}

type ReportInput struct {
	ElderID     int64  `json:"elder_id" validate:"required,gt=0"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Medications string `json:"medications" validate:"max=4000"`
	Nutrition   string `json:"nutrition" validate:"max=4000"`
	Activities  string `json:"activities" validate:"max=4000"`
	Mood        string `json:"mood" validate:"max=200"`
	Remarks     string `json:"remarks" validate:"max=4000"`
}
