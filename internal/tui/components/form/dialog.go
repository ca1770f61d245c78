package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/codeblocks/internal/core/styles"
)

// Dialog is a form container that manages focus cycling, submission, and
// cancellation across a set of form fields.
//
// Submission is explicit (ctrl+s) so that enter stays available for
// newlines in textareas. A submit only sticks when every field validates;
// otherwise focus moves to the first invalid field.
type Dialog struct {
	fields       []Field
	variables    []string // parallel slice: variable name for each field
	focusedField int
	submitted    bool
	cancelled    bool
	Title        string
}

// NewDialog creates a form dialog with the given fields and variable names.
// The first field is focused automatically.
func NewDialog(title string, fields []Field, variables []string) *Dialog {
	d := &Dialog{
		fields:    fields,
		variables: variables,
		Title:     title,
	}
	if len(fields) > 0 {
		fields[0].Focus()
	}
	return d
}

// Update handles key input for the dialog, managing focus cycling and submit/cancel.
func (d *Dialog) Update(msg tea.Msg) (*Dialog, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d.updateFocusedField(msg)
	}

	switch keyMsg.String() {
	case "tab":
		return d.moveFocus(1)
	case "shift+tab":
		return d.moveFocus(-1)
	case "ctrl+s":
		return d.submit()
	case "enter":
		if d.isTextAreaFocused() {
			// Let textarea handle enter for newline insertion
			return d.updateFocusedField(msg)
		}
		return d.moveFocus(1)
	case "esc":
		d.cancelled = true
		return d, nil
	}

	return d.updateFocusedField(msg)
}

// View renders the title, all fields vertically with spacing, and help text.
func (d *Dialog) View() string {
	parts := []string{styles.ModalTitleStyle.Render(d.Title)}
	for _, field := range d.fields {
		parts = append(parts, "", field.View())
	}

	help := styles.ModalHelpStyle.Render("tab: next  shift+tab: prev  ctrl+s: save  esc: cancel")
	parts = append(parts, help)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// FormValues returns a map of variable names to field values.
func (d *Dialog) FormValues() map[string]string {
	result := make(map[string]string, len(d.fields))
	for i, field := range d.fields {
		result[d.variables[i]] = field.Value()
	}
	return result
}

// SetWidth resizes every field's input.
func (d *Dialog) SetWidth(w int) {
	for _, f := range d.fields {
		f.SetWidth(w)
	}
}

// Submitted returns whether the form was submitted.
func (d *Dialog) Submitted() bool { return d.submitted }

// Cancelled returns whether the form was cancelled.
func (d *Dialog) Cancelled() bool { return d.cancelled }

// Resume clears a previous submit so the dialog accepts input again, for
// callers that keep the form open after a failed save.
func (d *Dialog) Resume() {
	d.submitted = false
	d.cancelled = false
}

// FocusedIndex returns the index of the focused field.
func (d *Dialog) FocusedIndex() int { return d.focusedField }

func (d *Dialog) submit() (*Dialog, tea.Cmd) {
	firstInvalid := -1
	for i, f := range d.fields {
		if !f.Validate() && firstInvalid < 0 {
			firstInvalid = i
		}
	}

	if firstInvalid >= 0 {
		return d.focus(firstInvalid)
	}

	d.submitted = true
	return d, nil
}

// moveFocus cycles focus by delta, wrapping at both ends.
func (d *Dialog) moveFocus(delta int) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}
	n := len(d.fields)
	return d.focus(((d.focusedField+delta)%n + n) % n)
}

func (d *Dialog) focus(i int) (*Dialog, tea.Cmd) {
	if i == d.focusedField && d.fields[i].Focused() {
		return d, nil
	}
	d.fields[d.focusedField].Blur()
	d.focusedField = i
	return d, d.fields[i].Focus()
}

func (d *Dialog) updateFocusedField(msg tea.Msg) (*Dialog, tea.Cmd) {
	if len(d.fields) == 0 {
		return d, nil
	}

	var cmd tea.Cmd
	d.fields[d.focusedField], cmd = d.fields[d.focusedField].Update(msg)
	return d, cmd
}

func (d *Dialog) isTextAreaFocused() bool {
	if len(d.fields) == 0 {
		return false
	}
	_, ok := d.fields[d.focusedField].(*TextAreaField)
	return ok
}
