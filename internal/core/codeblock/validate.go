package codeblock

import (
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"
)

// Size limits for stored fields.
const (
	MaxTitleSize    = 200
	MaxCategorySize = 100
	MaxCodeSize     = 256 * 1024
)

// Validate checks a create body.
func (in Input) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("title", in.Title, requiredText),
		criterio.Run("title", in.Title, maxLen(MaxTitleSize)),
		criterio.Run("category", in.Category, maxLen(MaxCategorySize)),
		criterio.Run("code", in.Code, maxLen(MaxCodeSize)),
	)
}

// Validate checks the fields present in a partial update.
func (p Patch) Validate() error {
	var errs criterio.FieldErrorsBuilder
	if p.Title != nil {
		if err := requiredText(*p.Title); err != nil {
			errs = errs.Append("title", err)
		} else if err := maxLen(MaxTitleSize)(*p.Title); err != nil {
			errs = errs.Append("title", err)
		}
	}
	if p.Category != nil {
		if err := maxLen(MaxCategorySize)(*p.Category); err != nil {
			errs = errs.Append("category", err)
		}
	}
	if p.Code != nil {
		if err := maxLen(MaxCodeSize)(*p.Code); err != nil {
			errs = errs.Append("code", err)
		}
	}
	return errs.ToError()
}

// ValidateTitle reports whether a title is acceptable. Used by the edit
// forms before anything is sent.
func ValidateTitle(title string) error {
	return requiredText(title)
}

func requiredText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("is required")
	}
	return nil
}

func maxLen(n int) func(string) error {
	return func(s string) error {
		if len(s) > n {
			return fmt.Errorf("must be at most %d bytes, got %d", n, len(s))
		}
		return nil
	}
}
