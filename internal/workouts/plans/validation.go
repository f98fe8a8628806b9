package plans

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/2beens/workouts/internal/apperr"
)

const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxMuscleGroupLength = 50
	MaxSearchLength      = 100
)

// letters (including Latin-1 accents), digits, whitespace, hyphen, underscore, parentheses
var namePattern = regexp.MustCompile(`^[a-zA-Z\x{00C0}-\x{00FF}0-9\s\-_()]+$`)

// normalizeName trims the name and checks it against the length and charset rules.
func normalizeName(field, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", apperr.Validation("%s is required", field)
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", apperr.Validation("%s must be at most %d characters", field, MaxNameLength)
	}
	if !namePattern.MatchString(name) {
		return "", apperr.Validation("%s contains invalid characters", field)
	}
	return name, nil
}

func validateOptionalText(field string, value *string, maxLen int) error {
	if value == nil {
		return nil
	}
	if utf8.RuneCountInString(*value) > maxLen {
		return apperr.Validation("%s must be at most %d characters", field, maxLen)
	}
	return nil
}

func validateRange(field string, value, min, max int) error {
	if value < min || value > max {
		return apperr.Validation("%s must be between %d and %d", field, min, max)
	}
	return nil
}

// trimmedOrNil trims an optional text and turns a blank value into nil.
func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
