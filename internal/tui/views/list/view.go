package list

import (
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/styles"
)

// headerRows is the number of rows above the first entry: search and category.
const headerRows = 2

// SelectRequestMsg asks the parent to show the block with ID.
type SelectRequestMsg struct {
	ID int
}

type keyMap struct {
	up, down, top, bottom, selectEntry, search, nextCat, prevCat key.Binding
}

var keys = keyMap{
	up:          key.NewBinding(key.WithKeys("k", "up")),
	down:        key.NewBinding(key.WithKeys("j", "down")),
	top:         key.NewBinding(key.WithKeys("g", "home")),
	bottom:      key.NewBinding(key.WithKeys("G", "end")),
	selectEntry: key.NewBinding(key.WithKeys("enter")),
	search:      key.NewBinding(key.WithKeys("/")),
	nextCat:     key.NewBinding(key.WithKeys("c")),
	prevCat:     key.NewBinding(key.WithKeys("C")),
}

// View is the Bubble Tea sub-model for the sidebar.
type View struct {
	ctrl      *Controller
	search    textinput.Model
	searching bool
	focused   bool
	width     int
	height    int
}

// New creates a sidebar view.
func New() View {
	ti := textinput.New()
	ti.Prompt = styles.IconSearch + " "
	ti.Placeholder = "Search title or category"
	ti.CharLimit = 200
	s := textinput.DefaultStyles(true)
	s.Focused.Placeholder = styles.PlaceholderStyle
	s.Blurred.Placeholder = styles.PlaceholderStyle
	s.Cursor.Color = styles.ColorPrimary
	ti.SetStyles(s)

	return View{ctrl: NewController(), search: ti, focused: true}
}

// Controller exposes the filtering state.
func (v View) Controller() *Controller { return v.ctrl }

// SetBlocks replaces the listed blocks.
func (v View) SetBlocks(blocks []codeblock.CodeBlock, categories []string) View {
	v.ctrl.SetBlocks(blocks, categories)
	return v
}

// SetActive marks the block shown in the detail pane.
func (v View) SetActive(id int) View {
	v.ctrl.SetActive(id)
	return v
}

// SetSize sets the content size, excluding the panel border.
func (v View) SetSize(width, height int) View {
	v.width = width
	v.height = height
	v.search.SetWidth(max(width-3, 1))
	v.ctrl.SetHeight(height - headerRows)
	return v
}

// SetFocused marks the sidebar as the pane receiving navigation keys.
func (v View) SetFocused(on bool) View {
	v.focused = on
	return v
}

// Searching reports whether the search input has focus. The parent must
// route every key here while it does.
func (v View) Searching() bool { return v.searching }

// StartSearch focuses the search input.
func (v View) StartSearch() (View, tea.Cmd) {
	v.searching = true
	return v, v.search.Focus()
}

// Update handles keys for the sidebar.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if v.searching {
			var cmd tea.Cmd
			v.search, cmd = v.search.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	if v.searching {
		return v.updateSearch(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, keys.search):
		return v.StartSearch()
	case key.Matches(keyMsg, keys.up):
		v.ctrl.Move(-1)
	case key.Matches(keyMsg, keys.down):
		v.ctrl.Move(1)
	case key.Matches(keyMsg, keys.top):
		v.ctrl.Top()
	case key.Matches(keyMsg, keys.bottom):
		v.ctrl.Bottom()
	case key.Matches(keyMsg, keys.nextCat):
		v.ctrl.NextCategory()
	case key.Matches(keyMsg, keys.prevCat):
		v.ctrl.PrevCategory()
	case key.Matches(keyMsg, keys.selectEntry):
		if b, ok := v.ctrl.CursorBlock(); ok {
			return v, selectCmd(b.ID)
		}
	}
	return v, nil
}

func (v View) updateSearch(msg tea.KeyPressMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "enter":
		v.searching = false
		v.search.Blur()
		return v, nil
	case "esc":
		v.searching = false
		v.search.Blur()
		v.search.SetValue("")
		v.ctrl.SetSearch("")
		return v, nil
	}

	var cmd tea.Cmd
	v.search, cmd = v.search.Update(msg)
	v.ctrl.SetSearch(v.search.Value())
	return v, cmd
}

// Click handles a mouse click at (x, y) relative to the content origin.
func (v View) Click(x, y int) (View, tea.Cmd) {
	switch {
	case y == 0:
		return v.StartSearch()
	case y == 1:
		v.ctrl.NextCategory()
		return v, nil
	}

	b, ok := v.ctrl.Row(y - headerRows)
	if !ok {
		return v, nil
	}
	return v, selectCmd(b.ID)
}

func selectCmd(id int) tea.Cmd {
	return func() tea.Msg { return SelectRequestMsg{ID: id} }
}

// View renders the sidebar content.
func (v View) View() string {
	lines := make([]string, 0, v.height)

	searchStyle := styles.SearchStyle
	if v.searching {
		searchStyle = styles.SearchFocusedStyle
	}
	lines = append(lines, searchStyle.Render(v.search.View()))

	category := v.ctrl.Category()
	if category == "" {
		category = "All categories"
	}
	lines = append(lines, styles.CategoryFilterStyle.Render(
		ansi.Truncate(styles.IconFolder+" "+category+"  (c/C)", v.width, "…")))

	visible := v.ctrl.Visible()
	if len(visible) == 0 {
		lines = append(lines, styles.PlaceholderStyle.Render(v.ctrl.EmptyMessage()))
		return strings.Join(lines, "\n")
	}

	rows := max(v.height-headerRows, 1)
	end := min(v.ctrl.Offset()+rows, len(visible))
	for i := v.ctrl.Offset(); i < end; i++ {
		lines = append(lines, v.renderEntry(visible[i], i == v.ctrl.Cursor()))
	}
	return strings.Join(lines, "\n")
}

func (v View) renderEntry(b codeblock.CodeBlock, atCursor bool) string {
	width := max(v.width-2, 4)
	cat := ""
	if b.Category != "" {
		cat = " " + b.Category
	}
	titleWidth := max(width-lipgloss.Width(cat), width/2)
	title := ansi.Truncate(b.Title, titleWidth, "…")
	cat = ansi.Truncate(cat, max(width-lipgloss.Width(title), 0), "…")
	pad := max(width-lipgloss.Width(title)-lipgloss.Width(cat), 0)

	style := styles.ListItemStyle
	if v.ctrl.IsActive(b) {
		style = styles.ListItemActiveStyle
	}
	line := style.Render(title) + strings.Repeat(" ", pad) + styles.ListItemCategoryStyle.Render(cat)
	if atCursor && v.focused {
		line = styles.ListItemCursorStyle.Render(line)
	}
	return line
}
