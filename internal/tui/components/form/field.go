package form

import tea "charm.land/bubbletea/v2"

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	Label() string
	SetWidth(w int)

	// Validate runs the field's rules against its current value, records
	// the message for rendering, and reports whether the value passed.
	Validate() bool
}
