package service

import (
	"strings"

	"github.com/templui/cuidador/internal/model"
	"github.com/templui/cuidador/internal/validation"
)

type EmergencyService struct {
	numbers []model.EmergencyNumber
}

func NewEmergencyService(numbers []model.EmergencyNumber) *EmergencyService {
	return &EmergencyService{numbers: numbers}
}

func (s *EmergencyService) Numbers() []model.EmergencyNumber {
	out := make([]model.EmergencyNumber, len(s.numbers))
	copy(out, s.numbers)
	return out
}

// DialURI builds the tel: URI the device dialer opens. Everything but
// digits and a leading plus sign is dropped.
func (s *EmergencyService) DialURI(number string) (string, error) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(number) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	digits := strings.TrimPrefix(b.String(), "+")
	if digits == "" {
		return "", validation.Invalid("number", "must contain digits")
	}
	return "tel:" + b.String(), nil
}
