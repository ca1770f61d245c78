package components

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/codeblocks/internal/core/styles"
)

// ConfirmModal is a yes/no confirmation dialog.
type ConfirmModal struct {
	title     string
	message   string
	confirmed bool
	cancelled bool
}

// NewConfirmModal creates a confirmation modal.
func NewConfirmModal(title, message string) ConfirmModal {
	return ConfirmModal{title: title, message: message}
}

// Update handles input for the confirmation modal.
func (m ConfirmModal) Update(msg tea.Msg) (ConfirmModal, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y", "enter":
		m.confirmed = true
	case "n", "N", "esc", "q":
		m.cancelled = true
	}
	return m, nil
}

// View renders the dialog box.
func (m ConfirmModal) View() string {
	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.ModalButtonSelectedStyle.Render("Delete (y)"),
		" ",
		styles.ModalButtonStyle.Render("Cancel (n)"),
	)
	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render(m.title),
		"",
		m.message,
		"",
		buttons,
	)
	return styles.ModalStyle.Render(body)
}

// Overlay renders the dialog centered over background.
func (m ConfirmModal) Overlay(background string, width, height int) string {
	box := m.View()

	layer := lipgloss.NewLayer(box)
	layer.X(max((width-lipgloss.Width(box))/2, 0)).Y(max((height-lipgloss.Height(box))/2, 0)).Z(1)
	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}

// Confirmed reports whether the user accepted.
func (m ConfirmModal) Confirmed() bool { return m.confirmed }

// Cancelled reports whether the user declined.
func (m ConfirmModal) Cancelled() bool { return m.cancelled }
