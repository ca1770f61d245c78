// Package codeblock defines the annotated code snippet domain model shared by
// the client, the server, and the storage layers.
package codeblock

import (
	"context"
	"encoding/json"
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// ErrNotFound is returned when a code block does not exist.
var ErrNotFound = errors.New("code block not found")

// CodeBlock is a stored snippet with its general and per-line explanations.
type CodeBlock struct {
	ID               int              `json:"id"`
	Title            string           `json:"title"`
	Category         string           `json:"category"`
	Code             string           `json:"code"`
	Explanation      string           `json:"explanation"`
	LineExplanations LineExplanations `json:"lineExplanations"`
}

// Input is the body used to create a code block. The id is assigned by the server.
type Input struct {
	Title            string           `json:"title"`
	Category         string           `json:"category"`
	Code             string           `json:"code"`
	Explanation      string           `json:"explanation"`
	LineExplanations LineExplanations `json:"lineExplanations"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Title            *string           `json:"title,omitempty"`
	Category         *string           `json:"category,omitempty"`
	Code             *string           `json:"code,omitempty"`
	Explanation      *string           `json:"explanation,omitempty"`
	LineExplanations *LineExplanations `json:"lineExplanations,omitempty"`
}

// Store persists code blocks and owns id assignment.
type Store interface {
	List(ctx context.Context) ([]CodeBlock, error)
	Get(ctx context.Context, id int) (CodeBlock, error)
	Create(ctx context.Context, in Input) (CodeBlock, error)
	Update(ctx context.Context, id int, p Patch) (CodeBlock, error)
	Delete(ctx context.Context, id int) (CodeBlock, error)
}

// FromInput builds a block with the given id from a create body.
func FromInput(id int, in Input) CodeBlock {
	le := in.LineExplanations
	if le == nil {
		le = LineExplanations{}
	}
	return CodeBlock{
		ID:               id,
		Title:            in.Title,
		Category:         in.Category,
		Code:             in.Code,
		Explanation:      in.Explanation,
		LineExplanations: le,
	}
}

// Input returns the editable fields of the block.
func (b CodeBlock) Input() Input {
	return Input{
		Title:            b.Title,
		Category:         b.Category,
		Code:             b.Code,
		Explanation:      b.Explanation,
		LineExplanations: maps.Clone(b.LineExplanations),
	}
}

// Apply returns a copy of b with every non-nil field of p applied.
func (b CodeBlock) Apply(p Patch) CodeBlock {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Category != nil {
		b.Category = *p.Category
	}
	if p.Code != nil {
		b.Code = *p.Code
	}
	if p.Explanation != nil {
		b.Explanation = *p.Explanation
	}
	if p.LineExplanations != nil {
		b.LineExplanations = maps.Clone(*p.LineExplanations)
		if b.LineExplanations == nil {
			b.LineExplanations = LineExplanations{}
		}
	}
	return b
}

// PatchFromInput converts a full input into a patch that sets every field.
func PatchFromInput(in Input) Patch {
	le := in.LineExplanations
	if le == nil {
		le = LineExplanations{}
	}
	return Patch{
		Title:            &in.Title,
		Category:         &in.Category,
		Code:             &in.Code,
		Explanation:      &in.Explanation,
		LineExplanations: &le,
	}
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Category == nil && p.Code == nil &&
		p.Explanation == nil && p.LineExplanations == nil
}

// Lines splits the code into its source lines. Line n is Lines()[n-1].
func (b CodeBlock) Lines() []string {
	return strings.Split(b.Code, "\n")
}

// HasExplanation reports whether line n (1-based) carries an annotation.
func (b CodeBlock) HasExplanation(n int) bool {
	_, ok := b.LineExplanations[n]
	return ok
}

// LineExplanation returns the annotation for line n, if any.
func (b CodeBlock) LineExplanation(n int) (string, bool) {
	text, ok := b.LineExplanations[n]
	return text, ok
}

// LineExplanations maps 1-based line numbers to their annotation. It
// marshals as a JSON object keyed by decimal line numbers.
type LineExplanations map[int]string

// Lines returns the annotated line numbers in ascending order.
func (le LineExplanations) Lines() []int {
	return slices.Sorted(maps.Keys(le))
}

// UnmarshalJSON accepts an object keyed by line numbers. Keys that are not
// positive integers are dropped.
func (le *LineExplanations) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*le = nil
		return nil
	}

	out := make(LineExplanations, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil || n < 1 {
			continue
		}
		out[n] = v
	}
	*le = out
	return nil
}
