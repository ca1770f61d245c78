package form

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// TextAreaField is a multi-line text input form field.
type TextAreaField struct {
	input      textarea.Model
	label      string
	focused    bool
	validation FieldValidation
	err        string
}

// NewTextAreaField creates a new multi-line text input field.
func NewTextAreaField(label, placeholder, defaultVal string) *TextAreaField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0 // code blocks may run past the default row cap
	ta.SetHeight(4)
	ta.SetWidth(40)

	if defaultVal != "" {
		ta.SetValue(defaultVal)
	}

	return &TextAreaField{
		input: ta,
		label: label,
	}
}

// WithHeight sets the number of visible rows.
func (f *TextAreaField) WithHeight(h int) *TextAreaField {
	f.input.SetHeight(h)
	return f
}

// WithLineNumbers toggles the textarea gutter.
func (f *TextAreaField) WithLineNumbers(on bool) *TextAreaField {
	f.input.ShowLineNumbers = on
	return f
}

// WithValidation sets the rules checked by Validate.
func (f *TextAreaField) WithValidation(v FieldValidation) *TextAreaField {
	f.validation = v
	return f
}

func (f *TextAreaField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextAreaField) View() string {
	return renderField(f.label, f.input.View(), f.err, f.focused)
}

func (f *TextAreaField) Validate() bool {
	f.err = f.validation.ValidateText(f.input.Value())
	return f.err == ""
}

func (f *TextAreaField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextAreaField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextAreaField) SetWidth(w int) { f.input.SetWidth(w) }
func (f *TextAreaField) Focused() bool  { return f.focused }
func (f *TextAreaField) Value() string  { return f.input.Value() }
func (f *TextAreaField) Label() string  { return f.label }
