package form

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldValidation holds runtime validation rules for a form field.
type FieldValidation struct {
	Required  bool
	MaxLength int
	Check     func(string) error // extra domain rule, run after the others
}

// ValidateText checks a text value against the validation rules and returns
// a message for display, or "" when the value is acceptable.
func (v FieldValidation) ValidateText(value string) string {
	if v.Required && strings.TrimSpace(value) == "" {
		return "required"
	}
	if value == "" {
		return ""
	}
	if v.MaxLength > 0 && utf8.RuneCountInString(value) > v.MaxLength {
		return fmt.Sprintf("maximum %d characters", v.MaxLength)
	}
	if v.Check != nil {
		if err := v.Check(value); err != nil {
			return err.Error()
		}
	}
	return ""
}
