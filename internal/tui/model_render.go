package tui

import (
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/codeblocks/internal/core/styles"
)

type headerButton int

const (
	headerNone headerButton = iota
	headerAdd
	headerExport
)

const (
	addLabel    = "+ Add (a)"
	exportLabel = "Export (x)"
)

// View renders the screen.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Loading…"
	}

	if m.state.Overlay() == OverlayFullscreen {
		return m.toasts.overlay(m.fullscreen.View(), m.width, m.height)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderStatusBar(),
	)

	switch m.state.Overlay() {
	case OverlayModal:
		content = m.modal.Overlay(content, m.width, m.height)
	case OverlayConfirmDelete:
		content = m.confirm.Overlay(content, m.width, m.height)
	}

	return m.toasts.overlay(content, m.width, m.height)
}

func (m Model) renderHeader() string {
	buttons := m.headerButtons()
	title := styles.HeaderStyle.Render(styles.IconCode + " CodeBlocks")
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(buttons), 1)
	return ansi.Truncate(title+strings.Repeat(" ", gap)+buttons, m.width, "")
}

func (m Model) headerButtons() string {
	return styles.ModalButtonSelectedStyle.Render(addLabel) + " " + styles.ModalButtonStyle.Render(exportLabel)
}

// headerButtonAt reports which header button covers column x.
func (m Model) headerButtonAt(x int) headerButton {
	addW := lipgloss.Width(styles.ModalButtonSelectedStyle.Render(addLabel))
	exportW := lipgloss.Width(styles.ModalButtonStyle.Render(exportLabel))

	exportStart := m.width - exportW
	addStart := exportStart - 1 - addW
	switch {
	case x >= addStart && x < addStart+addW:
		return headerAdd
	case x >= exportStart && x < m.width:
		return headerExport
	}
	return headerNone
}

func (m Model) renderBody() string {
	sw := m.sidebarWidth()
	h := m.bodyHeight()

	sidebarStyle, detailStyle := styles.PanelStyle, styles.PanelStyle
	if m.focus == paneList {
		sidebarStyle = styles.PanelFocusedStyle
	} else {
		detailStyle = styles.PanelFocusedStyle
	}

	clip := func(s string, w, h int) string {
		return lipgloss.NewStyle().MaxWidth(max(w, 1)).MaxHeight(max(h, 1)).Render(s)
	}

	sidebar := sidebarStyle.Width(sw).Height(h).Render(clip(m.list.View(), sw-2, h-2))
	detailPanel := detailStyle.Width(max(m.width-sw, 4)).Height(h).Render(clip(m.detail.View(), m.width-sw-2, h-2))
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, detailPanel)
}

func (m Model) renderStatusBar() string {
	count := strconv.Itoa(len(m.state.Blocks())) + " blocks"
	if m.state.EditMode() {
		count += " · editing"
	}
	left := styles.StatusBarStyle.Render(count)

	h := m.help
	h.SetWidth(max(m.width-lipgloss.Width(left)-1, 10))
	return ansi.Truncate(left+" "+h.View(m.keys), m.width, "")
}
