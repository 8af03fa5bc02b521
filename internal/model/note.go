package model

type Note struct {
	ID        int64     `db:"id" json:"id"`
	Title     string    `db:"title" json:"title" validate:"required,max=200"`
	Body      string    `db:"body" json:"body"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
	UpdatedAt Timestamp `db:"updated_at" json:"updated_at"`
	Version   int       `db:"version" json:"version"`
}
