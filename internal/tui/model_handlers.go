package tui

import (
	tea "charm.land/bubbletea/v2"
)

// --- Data loaded ---

func (m Model) handleBlocksLoaded(msg blocksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("load code blocks")
		return m, m.notifyError("Failed to load code blocks")
	}
	m.state.SetBlocks(msg.blocks)
	m.syncViews()
	return m, nil
}

// --- Mutations ---

// handleMutationDone applies the outcome of a mutation. A failed mutation
// leaves everything as it was, including an open editor. After a successful
// one the post-steps run even when the reload failed, in which case only the
// reload's failure is reported.
func (m Model) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Str("op", msg.op.String()).Int("id", msg.id).Msg("mutation failed")
		if msg.op == opDelete {
			return m, m.notifyError("Failed to delete code block")
		}
		return m, m.notifyError("Failed to save code block")
	}

	var cmd tea.Cmd
	if msg.reloadErr != nil {
		m.log.Error().Err(msg.reloadErr).Str("op", msg.op.String()).Msg("reload after mutation")
		cmd = m.notifyError("Failed to load code blocks")
	} else {
		m.state.SetBlocks(msg.blocks)
	}

	switch msg.op {
	case opEdit:
		m.state.SetEditMode(false)
		m.detail = m.detail.EndEdit()
	case opCreate, opUpdate:
		// Leave an overlay opened while the request was in flight.
		if m.state.Overlay() == OverlayModal {
			m.state.SetOverlay(OverlayNone)
		}
		if msg.op == opUpdate && msg.id == m.state.CurrentID() && m.state.EditMode() {
			m.state.SetEditMode(false)
			m.detail = m.detail.EndEdit()
		}
	case opDelete:
		if msg.id == m.state.CurrentID() {
			m.state.ClearSelection()
			m.state.SetEditMode(false)
			m.detail = m.detail.EndEdit()
			m.setFocus(paneList)
		}
	}

	m.syncViews()
	return m, cmd
}

// --- Export ---

func (m Model) handleExportDone(msg exportDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.log.Error().Err(msg.err).Msg("export code blocks")
		return m, m.notifyError("Failed to export code blocks")
	}
	m.log.Info().Str("path", msg.path).Int("count", msg.count).Msg("exported code blocks")
	if msg.count == 0 {
		return m, m.notifyWarning("Exported %d code blocks to %s", msg.count, msg.path)
	}
	return m, m.notifyInfo("Exported %d code blocks to %s", msg.count, msg.path)
}
