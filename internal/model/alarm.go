package model

import "fmt"

type Alarm struct {
	ID        int64     `db:"id" json:"id"`
	Label     string    `db:"label" json:"label" validate:"required,max=100"`
	Hour      int       `db:"hour" json:"hour" validate:"min=0,max=23"`
	Minute    int       `db:"minute" json:"minute" validate:"min=0,max=59"`
	CreatedAt Timestamp `db:"created_at" json:"created_at"`
}

// Clock formats the alarm time as HH:MM.
func (a Alarm) Clock() string {
	return fmt.Sprintf("%02d:%02d", a.Hour, a.Minute)
}
