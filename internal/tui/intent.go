package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/tui/components"
	"github.com/colonyops/codeblocks/internal/tui/views/editor"
)

// Intent is a user action. The set is closed: only the types in this file
// implement it, and dispatch handles every one of them.
type Intent interface {
	intent()
}

type (
	// ReloadIntent refetches the whole list.
	ReloadIntent struct{}
	// SelectIntent shows the block with ID in the detail pane.
	SelectIntent struct{ ID int }
	// BeginEditIntent switches the detail pane to inline editing.
	BeginEditIntent struct{}
	// SaveEditIntent persists an inline edit of block ID.
	SaveEditIntent struct {
		ID    int
		Patch codeblock.Patch
	}
	// CancelEditIntent leaves inline editing without saving.
	CancelEditIntent struct{}
	// OpenCreateIntent opens the modal empty.
	OpenCreateIntent struct{}
	// OpenEditModalIntent opens the modal seeded from the selected block.
	OpenEditModalIntent struct{}
	// SubmitModalIntent creates (ID 0) or replaces block ID.
	SubmitModalIntent struct {
		ID    int
		Input codeblock.Input
	}
	// CloseModalIntent closes the modal without saving.
	CloseModalIntent struct{}
	// RequestDeleteIntent asks for confirmation before deleting the selected block.
	RequestDeleteIntent struct{}
	// ConfirmDeleteIntent deletes block ID.
	ConfirmDeleteIntent struct{ ID int }
	// CancelDeleteIntent dismisses the confirmation.
	CancelDeleteIntent struct{}
	// OpenFullscreenIntent shows the selected block's code full screen.
	OpenFullscreenIntent struct{}
	// CloseFullscreenIntent closes the fullscreen overlay.
	CloseFullscreenIntent struct{}
	// ExportIntent writes the in-memory list to the backup file.
	ExportIntent struct{}
)

func (ReloadIntent) intent()          {}
func (SelectIntent) intent()          {}
func (BeginEditIntent) intent()       {}
func (SaveEditIntent) intent()        {}
func (CancelEditIntent) intent()      {}
func (OpenCreateIntent) intent()      {}
func (OpenEditModalIntent) intent()   {}
func (SubmitModalIntent) intent()     {}
func (CloseModalIntent) intent()      {}
func (RequestDeleteIntent) intent()   {}
func (ConfirmDeleteIntent) intent()   {}
func (CancelDeleteIntent) intent()    {}
func (OpenFullscreenIntent) intent()  {}
func (CloseFullscreenIntent) intent() {}
func (ExportIntent) intent()          {}

// dispatch applies an intent to the state and returns the command that
// carries out its side effects. Rendering is not involved: views are
// re-synced from the state afterwards.
func (m Model) dispatch(in Intent) (Model, tea.Cmd) {
	switch in := in.(type) {
	case ReloadIntent:
		return m, m.loadBlocks()

	case SelectIntent:
		m.state.SelectBlock(in.ID)
		m.focus = paneDetail

	case BeginEditIntent:
		b, ok := m.state.Current()
		if !ok {
			return m, nil
		}
		m.state.SetEditMode(true)
		m.detail = m.detail.BeginEdit(b)
		m.focus = paneDetail

	case SaveEditIntent:
		return m, m.updateBlock(opEdit, in.ID, in.Patch)

	case CancelEditIntent:
		m.state.SetEditMode(false)
		m.detail = m.detail.EndEdit()

	case OpenCreateIntent:
		m.modal = editor.NewCreate(m.width, m.height)
		m.state.SetOverlay(OverlayModal)

	case OpenEditModalIntent:
		b, ok := m.state.Current()
		if !ok {
			return m, nil
		}
		m.modal = editor.NewEdit(b, m.width, m.height)
		m.state.SetOverlay(OverlayModal)

	case SubmitModalIntent:
		if in.ID != 0 {
			return m, m.updateBlock(opUpdate, in.ID, codeblock.PatchFromInput(in.Input))
		}
		return m, m.createBlock(in.Input)

	case CloseModalIntent:
		m.state.SetOverlay(OverlayNone)

	case RequestDeleteIntent:
		b, ok := m.state.Current()
		if !ok {
			return m, nil
		}
		m.deleteID = b.ID
		m.confirm = components.NewConfirmModal("Delete code block",
			"Delete \""+b.Title+"\"? This cannot be undone.")
		m.state.SetOverlay(OverlayConfirmDelete)

	case ConfirmDeleteIntent:
		m.state.SetOverlay(OverlayNone)
		m.deleteID = 0
		return m, m.deleteBlock(in.ID)

	case CancelDeleteIntent:
		m.state.SetOverlay(OverlayNone)
		m.deleteID = 0

	case OpenFullscreenIntent:
		b, ok := m.state.Current()
		if !ok {
			return m, nil
		}
		m.fullscreen = m.fullscreen.Open(b)
		m.state.SetOverlay(OverlayFullscreen)

	case CloseFullscreenIntent:
		m.state.SetOverlay(OverlayNone)

	case ExportIntent:
		return m, m.exportBlocks()
	}

	m.syncViews()
	return m, nil
}
