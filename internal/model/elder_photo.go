package model

// ElderPhoto is a picture in an elder's gallery. Any of them can be copied
// into the elder's profile image.
type ElderPhoto struct {
	ID        int64     `db:"id" json:"id"`
	ElderID   int64     `db:"elder_id" json:"elder_id"`
	Name      string    `db:"name" json:"name"`
	Path      string    `db:"path" json:"path"`
	Favorite  bool      `db:"favorite" json:"favorite"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}
