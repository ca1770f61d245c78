package form

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/codeblocks/internal/core/styles"
)

// TextField is a single-line text input form field.
type TextField struct {
	input      textinput.Model
	label      string
	focused    bool
	validation FieldValidation
	err        string
}

// NewTextField creates a new single-line text input field.
func NewTextField(label, placeholder, defaultVal string) *TextField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.SetWidth(40)

	if defaultVal != "" {
		ti.SetValue(defaultVal)
	}

	inputStyles := textinput.DefaultStyles(true)
	inputStyles.Cursor.Color = styles.ColorPrimary
	inputStyles.Focused.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	inputStyles.Blurred.Placeholder = lipgloss.NewStyle().Foreground(styles.ColorMuted)
	ti.SetStyles(inputStyles)

	return &TextField{
		input: ti,
		label: label,
	}
}

// WithValidation sets the rules checked by Validate.
func (f *TextField) WithValidation(v FieldValidation) *TextField {
	f.validation = v
	if v.MaxLength > 0 {
		f.input.CharLimit = v.MaxLength
	}
	return f
}

func (f *TextField) Update(msg tea.Msg) (Field, tea.Cmd) {
	if !f.focused {
		return f, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

func (f *TextField) View() string {
	return renderField(f.label, f.input.View(), f.err, f.focused)
}

func (f *TextField) Validate() bool {
	f.err = f.validation.ValidateText(f.input.Value())
	return f.err == ""
}

func (f *TextField) Focus() tea.Cmd {
	f.focused = true
	return f.input.Focus()
}

func (f *TextField) Blur() {
	f.focused = false
	f.input.Blur()
}

func (f *TextField) SetWidth(w int) { f.input.SetWidth(w) }
func (f *TextField) Focused() bool  { return f.focused }
func (f *TextField) Value() string  { return f.input.Value() }
func (f *TextField) Label() string  { return f.label }
func (f *TextField) Err() string    { return f.err }

// renderField draws the label, input, and validation message inside the
// field border shared by every field type.
func renderField(label, input, errMsg string, focused bool) string {
	titleStyle := styles.FormTitleBlurredStyle
	borderStyle := styles.FormFieldStyle
	if focused {
		titleStyle = styles.FormTitleStyle
		borderStyle = styles.FormFieldFocusedStyle
	}

	parts := []string{titleStyle.Render(label), input}
	if errMsg != "" {
		parts = append(parts, styles.FormErrorStyle.Render(errMsg))
	}

	return borderStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
