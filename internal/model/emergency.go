package model

type EmergencyNumber struct {
	Label  string `json:"label"`
	Number string `json:"number"`
}
