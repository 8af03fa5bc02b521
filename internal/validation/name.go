package validation

import (
	"strings"
	"unicode/utf8"
)

// ValidateName validates an elder's name
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return Invalid("name", "is required")
	}

	if utf8.RuneCountInString(trimmed) > 100 {
		return Invalid("name", "is too long (max 100 characters)")
	}

	return nil
}

// Required rejects blank text for field.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return Invalid(field, "is required")
	}
	return nil
}
