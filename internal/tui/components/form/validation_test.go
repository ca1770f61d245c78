package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldValidation_ValidateText(t *testing.T) {
	noTabs := func(s string) error {
		for _, r := range s {
			if r == '\t' {
				return errors.New("no tabs")
			}
		}
		return nil
	}

	tests := []struct {
		name  string
		v     FieldValidation
		value string
		want  string
	}{
		{"no rules, empty", FieldValidation{}, "", ""},
		{"no rules, non-empty", FieldValidation{}, "hello", ""},
		{"required, empty", FieldValidation{Required: true}, "", "required"},
		{"required, blank", FieldValidation{Required: true}, "   ", "required"},
		{"required, non-empty", FieldValidation{Required: true}, "hello", ""},
		{"max_length, too long", FieldValidation{MaxLength: 3}, "hello", "maximum 3 characters"},
		{"max_length, exact", FieldValidation{MaxLength: 5}, "hello", ""},
		{"max_length counts runes", FieldValidation{MaxLength: 2}, "✓✓", ""},
		{"check fails", FieldValidation{Check: noTabs}, "a\tb", "no tabs"},
		{"check skipped on empty", FieldValidation{Check: noTabs}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.ValidateText(tt.value))
		})
	}
}
