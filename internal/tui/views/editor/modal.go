// Package editor implements the create/edit modal for a whole code block.
package editor

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/styles"
	"github.com/colonyops/codeblocks/internal/tui/components/form"
)

// Outbound messages (view -> parent Model).

// SubmitRequestMsg asks the parent to persist the form. ID is 0 for a new block.
type SubmitRequestMsg struct {
	ID    int
	Input codeblock.Input
}

// CloseRequestMsg asks the parent to close the modal without saving.
type CloseRequestMsg struct{}

// Modal is the create/edit form overlay.
type Modal struct {
	dialog *form.Dialog
	id     int
	width  int
	height int
}

// NewCreate opens an empty modal for a new block.
func NewCreate(width, height int) Modal {
	return newModal("New code block", 0, codeblock.Input{}, width, height)
}

// NewEdit opens a modal seeded from b that updates b on submit.
func NewEdit(b codeblock.CodeBlock, width, height int) Modal {
	return newModal("Edit code block", b.ID, b.Input(), width, height)
}

func newModal(title string, id int, in codeblock.Input, width, height int) Modal {
	inner := modalWidth(width) - 6
	codeHeight := max(min(height-27, 14), 3)

	fields := []form.Field{
		form.NewTextField("Title", "What does this snippet show?", in.Title).
			WithValidation(form.FieldValidation{
				Required:  true,
				MaxLength: codeblock.MaxTitleSize,
			}),
		form.NewTextField("Category", "e.g. python", in.Category).
			WithValidation(form.FieldValidation{MaxLength: codeblock.MaxCategorySize}),
		form.NewTextAreaField("Code", "", in.Code).
			WithHeight(codeHeight).
			WithLineNumbers(true).
			WithValidation(form.FieldValidation{MaxLength: codeblock.MaxCodeSize}),
		form.NewTextAreaField("Explanation", "Markdown is supported", in.Explanation).
			WithHeight(3),
		form.NewTextAreaField("Line explanations", "3: what line 3 does",
			codeblock.FormatLineExplanations(in.LineExplanations)).
			WithHeight(3),
	}

	d := form.NewDialog(title, fields, []string{"title", "category", "code", "explanation", "lineExplanations"})
	d.SetWidth(inner)
	return Modal{dialog: d, id: id, width: width, height: height}
}

func modalWidth(screen int) int {
	return max(min(screen-4, 90), 30)
}

// ID returns the block being edited, 0 when creating.
func (m Modal) ID() int { return m.id }

// SetSize records the screen size for centering.
func (m Modal) SetSize(width, height int) Modal {
	m.width = width
	m.height = height
	m.dialog.SetWidth(modalWidth(width) - 6)
	return m
}

// Resume re-enables the form after a failed save. Field contents are kept.
func (m Modal) Resume() Modal {
	m.dialog.Resume()
	return m
}

// Update forwards input to the form and reports submit or cancel.
func (m Modal) Update(msg tea.Msg) (Modal, tea.Cmd) {
	var cmd tea.Cmd
	m.dialog, cmd = m.dialog.Update(msg)

	switch {
	case m.dialog.Cancelled():
		m.dialog.Resume()
		return m, tea.Batch(cmd, func() tea.Msg { return CloseRequestMsg{} })
	case m.dialog.Submitted():
		values := m.dialog.FormValues()
		req := SubmitRequestMsg{
			ID: m.id,
			Input: codeblock.Input{
				Title:            values["title"],
				Category:         values["category"],
				Code:             values["code"],
				Explanation:      values["explanation"],
				LineExplanations: codeblock.ParseLineExplanations(values["lineExplanations"]),
			},
		}
		// Stays open until the parent closes it after a successful save.
		m.dialog.Resume()
		return m, tea.Batch(cmd, func() tea.Msg { return req })
	}
	return m, cmd
}

// View renders the modal box.
func (m Modal) View() string {
	box := styles.ModalStyle.Width(modalWidth(m.width)).Render(m.dialog.View())
	return lipgloss.NewStyle().MaxHeight(max(m.height, 1)).Render(box)
}

// Overlay renders the modal centered over bg.
func (m Modal) Overlay(bg string, width, height int) string {
	modal := m.View()

	bgLayer := lipgloss.NewLayer(bg)
	modalLayer := lipgloss.NewLayer(modal)
	x := max((width-lipgloss.Width(modal))/2, 0)
	y := max((height-lipgloss.Height(modal))/2, 0)
	modalLayer.X(x).Y(y).Z(1)

	return lipgloss.NewCompositor(bgLayer, modalLayer).Render()
}
