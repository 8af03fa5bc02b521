package model

// ProfileImage links an elder to its photo. Path is the storage reference,
// an absolute filesystem path for local storage.
type ProfileImage struct {
	ID        int64     `db:"id" json:"id"`
	ElderID   int64     `db:"elder_id" json:"elder_id"`
	Path      string    `db:"path" json:"path"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}
