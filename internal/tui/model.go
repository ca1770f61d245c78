// Package tui implements the interactive code block viewer.
package tui

import (
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/codeblocks/internal/core/config"
	"github.com/colonyops/codeblocks/internal/core/logging"
	corenotify "github.com/colonyops/codeblocks/internal/core/notify"
	"github.com/colonyops/codeblocks/internal/core/styles"
	"github.com/colonyops/codeblocks/internal/tui/components"
	"github.com/colonyops/codeblocks/internal/tui/notify"
	"github.com/colonyops/codeblocks/internal/tui/views/detail"
	"github.com/colonyops/codeblocks/internal/tui/views/editor"
	"github.com/colonyops/codeblocks/internal/tui/views/list"
)

// pane is the side receiving navigation keys.
type pane int

const (
	paneList pane = iota
	paneDetail
)

// Model is the root Bubble Tea model. It owns the State and routes input to
// the views, which report back with request messages that become intents.
type Model struct {
	api       API
	timeout   time.Duration
	exportDir string
	sidebarW  int

	state *State
	keys  KeyMap
	help  help.Model

	list       list.View
	detail     detail.View
	fullscreen detail.Fullscreen
	modal      editor.Modal
	confirm    components.ConfirmModal
	deleteID   int

	notifyBus *notify.Bus
	toasts    *toasts

	focus    pane
	width    int
	height   int
	quitting bool
	log      zerolog.Logger
}

// New creates the root model. The block list is fetched by Init.
func New(api API, cfg *config.Config) Model {
	ts := &toasts{}
	bus := notify.NewBus()
	bus.Subscribe(func(n corenotify.Notification) { ts.push(n) })

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		api:        api,
		timeout:    cfg.API.Timeout,
		exportDir:  cfg.Export.Dir,
		sidebarW:   cfg.TUI.SidebarWidth,
		state:      NewState(),
		keys:       DefaultKeyMap(),
		help:       h,
		list:       list.New().SetFocused(true),
		detail:     detail.New(cfg.TUI.MarkdownEnabled()),
		fullscreen: detail.NewFullscreen(cfg.TUI.HighlightEnabled(), styles.Active().Syntax),
		notifyBus:  bus,
		toasts:     ts,
		log:        logging.Component("tui"),
	}
}

// State exposes the application state, mainly for tests.
func (m Model) State() *State { return m.state }

// Init fetches the block list.
func (m Model) Init() tea.Cmd {
	return m.loadBlocks()
}

// Update routes messages. Outbound view requests are turned into intents.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseClickMsg:
		return m.handleClick(msg.Mouse())

	case blocksLoadedMsg:
		return m.handleBlocksLoaded(msg)
	case mutationDoneMsg:
		return m.handleMutationDone(msg)
	case exportDoneMsg:
		return m.handleExportDone(msg)

	case toastTickMsg:
		m.toasts.tick(toastTickInterval)
		if m.toasts.empty() {
			m.toasts.ticking = false
			return m, nil
		}
		return m, scheduleToastTick()

	// View requests.
	case list.SelectRequestMsg:
		return m.dispatch(SelectIntent{ID: msg.ID})
	case detail.SaveEditRequestMsg:
		return m.dispatch(SaveEditIntent{ID: msg.ID, Patch: msg.Patch})
	case detail.CancelEditRequestMsg:
		return m.dispatch(CancelEditIntent{})
	case detail.BackRequestMsg:
		m.setFocus(paneList)
		return m, nil
	case detail.CloseFullscreenRequestMsg:
		return m.dispatch(CloseFullscreenIntent{})
	case detail.CopiedMsg:
		if msg.Err != nil {
			m.log.Error().Err(msg.Err).Msg("copy to clipboard")
			return m, m.notifyError("Failed to copy code")
		}
		return m, m.notifyInfo("Copied code to clipboard")
	case editor.SubmitRequestMsg:
		return m.dispatch(SubmitModalIntent{ID: msg.ID, Input: msg.Input})
	case editor.CloseRequestMsg:
		return m.dispatch(CloseModalIntent{})
	}

	return m.forward(msg)
}

// forward hands non-key messages such as cursor blinks to whichever input
// currently owns the keyboard.
func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case m.state.Overlay() == OverlayModal:
		m.modal, cmd = m.modal.Update(msg)
	case m.state.Overlay() == OverlayFullscreen:
		m.fullscreen, cmd = m.fullscreen.Update(msg)
	case m.state.EditMode():
		m.detail, cmd = m.detail.Update(msg)
	case m.list.Searching():
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	var cmd tea.Cmd
	switch m.state.Overlay() {
	case OverlayConfirmDelete:
		m.confirm, cmd = m.confirm.Update(msg)
		switch {
		case m.confirm.Confirmed():
			return m.dispatch(ConfirmDeleteIntent{ID: m.deleteID})
		case m.confirm.Cancelled():
			return m.dispatch(CancelDeleteIntent{})
		}
		return m, cmd
	case OverlayModal:
		m.modal, cmd = m.modal.Update(msg)
		return m, cmd
	case OverlayFullscreen:
		m.fullscreen, cmd = m.fullscreen.Update(msg)
		return m, cmd
	}

	if m.state.EditMode() {
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	if m.list.Searching() {
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.DismissToast):
		m.toasts.dismiss()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		return m.dispatch(OpenCreateIntent{})
	case key.Matches(msg, m.keys.Export):
		return m.dispatch(ExportIntent{})
	case key.Matches(msg, m.keys.Reload):
		return m.dispatch(ReloadIntent{})
	case key.Matches(msg, m.keys.Search):
		m.setFocus(paneList)
		m.list, cmd = m.list.StartSearch()
		return m, cmd
	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == paneList {
			m.setFocus(paneDetail)
		} else {
			m.setFocus(paneList)
		}
		return m, nil
	case key.Matches(msg, m.keys.Edit):
		return m.dispatch(BeginEditIntent{})
	case key.Matches(msg, m.keys.EditModal):
		return m.dispatch(OpenEditModalIntent{})
	case key.Matches(msg, m.keys.Delete):
		return m.dispatch(RequestDeleteIntent{})
	case key.Matches(msg, m.keys.Fullscreen):
		return m.dispatch(OpenFullscreenIntent{})
	}

	if m.focus == paneDetail {
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleClick maps a click to the pane under it. Panels have a one-cell
// border and sit below the header row. Clicks outside the detail pane close
// the line popup.
func (m Model) handleClick(mouse tea.Mouse) (tea.Model, tea.Cmd) {
	if mouse.Button != tea.MouseLeft || m.state.Overlay() != OverlayNone {
		return m, nil
	}

	cx, cy := mouse.X-1, mouse.Y-2
	if mouse.Y == 0 || cy < 0 || cy >= m.bodyHeight()-2 || mouse.X < m.sidebarWidth() {
		m.detail = m.detail.ClosePopup()
	}

	if mouse.Y == 0 {
		switch m.headerButtonAt(mouse.X) {
		case headerAdd:
			return m.dispatch(OpenCreateIntent{})
		case headerExport:
			return m.dispatch(ExportIntent{})
		}
		return m, nil
	}

	if cy < 0 || cy >= m.bodyHeight()-2 {
		return m, nil
	}

	var cmd tea.Cmd
	if mouse.X < m.sidebarWidth() {
		if cx < 0 || m.state.EditMode() {
			return m, nil
		}
		m.setFocus(paneList)
		m.list, cmd = m.list.Click(cx, cy)
		return m, cmd
	}

	m.setFocus(paneDetail)
	m.detail = m.detail.Click(cx-m.sidebarWidth(), cy)
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	m.keys.focus = p
	m.list = m.list.SetFocused(p == paneList)
	m.detail = m.detail.SetFocused(p == paneDetail)
}

// syncViews pushes the state into the views.
func (m *Model) syncViews() {
	m.setFocus(m.focus)
	m.list = m.list.SetBlocks(m.state.Blocks(), m.state.Categories()).SetActive(m.state.CurrentID())
	m.detail = m.detail.SetBlock(m.state.Current())
}

func (m *Model) layout() {
	m.help.SetWidth(m.width)
	m.list = m.list.SetSize(max(m.sidebarWidth()-2, 1), max(m.bodyHeight()-2, 1))
	m.detail = m.detail.SetSize(max(m.width-m.sidebarWidth()-2, 1), max(m.bodyHeight()-2, 1))
	m.fullscreen = m.fullscreen.SetSize(m.width, m.height)
	if m.state.Overlay() == OverlayModal {
		m.modal = m.modal.SetSize(m.width, m.height)
	}
}

func (m Model) sidebarWidth() int {
	return min(m.sidebarW, max(m.width/2, 1))
}

// bodyHeight is the height of the panels between the header and status rows.
func (m Model) bodyHeight() int {
	return max(m.height-2, 3)
}

// ensureToastTick starts the expiry timer when toasts are showing and no
// timer is running.
func (m *Model) ensureToastTick() tea.Cmd {
	if m.toasts.empty() || m.toasts.ticking {
		return nil
	}
	m.toasts.ticking = true
	return scheduleToastTick()
}

func (m *Model) notifyError(format string, args ...any) tea.Cmd {
	m.notifyBus.Errorf(format, args...)
	return m.ensureToastTick()
}

func (m *Model) notifyWarning(format string, args ...any) tea.Cmd {
	m.notifyBus.Warnf(format, args...)
	return m.ensureToastTick()
}

func (m *Model) notifyInfo(format string, args ...any) tea.Cmd {
	m.notifyBus.Infof(format, args...)
	return m.ensureToastTick()
}
