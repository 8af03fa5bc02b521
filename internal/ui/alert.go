package ui

import "net/http"

type Variant string

const (
	VariantDefault Variant = "default"
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
)

// Alert is the blocking message a client shows when an action fails.
type Alert struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Variant     Variant           `json:"variant"`
	Fields      map[string]string `json:"fields,omitempty"`
}

type alertResponse struct {
	Alert Alert `json:"alert"`
}

func RenderAlert(w http.ResponseWriter, r *http.Request, status int, alert Alert) {
	if alert.Variant == "" {
		alert.Variant = VariantError
	}
	JSON(w, r, status, alertResponse{Alert: alert})
}
