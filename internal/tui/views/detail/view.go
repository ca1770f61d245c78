package detail

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/styles"
	"github.com/colonyops/codeblocks/internal/tui/components/form"
)

const (
	// codeStart is the content row of code line 1: title, hints, blank.
	codeStart = 3
	// gutterWidth covers the marker column and the line number.
	gutterWidth   = 7
	popupMaxWidth = 50
)

// Outbound messages (view -> parent Model).

// SaveEditRequestMsg asks the parent to persist an inline edit.
type SaveEditRequestMsg struct {
	ID    int
	Patch codeblock.Patch
}

// CancelEditRequestMsg asks the parent to leave edit mode without saving.
type CancelEditRequestMsg struct {
	ID int
}

// BackRequestMsg asks the parent to move focus back to the sidebar.
type BackRequestMsg struct{}

type keyMap struct {
	up, down, top, bottom, pageUp, pageDown, selectLine, next, prev, back key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("k", "up")),
	down:       key.NewBinding(key.WithKeys("j", "down")),
	top:        key.NewBinding(key.WithKeys("g", "home")),
	bottom:     key.NewBinding(key.WithKeys("G", "end")),
	pageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+u")),
	pageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+d")),
	selectLine: key.NewBinding(key.WithKeys("enter")),
	next:       key.NewBinding(key.WithKeys("n")),
	prev:       key.NewBinding(key.WithKeys("N")),
	back:       key.NewBinding(key.WithKeys("esc")),
}

// View is the Bubble Tea sub-model for the detail pane.
type View struct {
	ctrl    *Controller
	md      *markdown
	editor  *form.Dialog
	editID  int
	editing bool
	focused bool
	scroll  int
	width   int
	height  int
}

// New creates a detail view. When markdownOn is false explanations render
// as plain text.
func New(markdownOn bool) View {
	return View{
		ctrl: NewController(),
		md:   &markdown{enabled: markdownOn},
	}
}

// Controller exposes the read-mode state.
func (v View) Controller() *Controller { return v.ctrl }

// SetBlock shows b, or the placeholder when ok is false.
func (v View) SetBlock(b codeblock.CodeBlock, ok bool) View {
	prev, had := v.ctrl.Block()
	v.ctrl.SetBlock(b, ok)
	if !ok || !had || prev.ID != b.ID {
		v.scroll = 0
	}
	v.scroll = v.clampScroll(v.scroll)
	return v
}

// SetSize sets the content size, excluding the panel border.
func (v View) SetSize(width, height int) View {
	v.width = width
	v.height = height
	if v.editor != nil {
		v.editor.SetWidth(max(width-2, 10))
	}
	v.scroll = v.clampScroll(v.scroll)
	return v
}

// SetFocused marks the pane as receiving navigation keys.
func (v View) SetFocused(on bool) View {
	v.focused = on
	return v
}

// Editing reports whether the inline editor is open.
func (v View) Editing() bool { return v.editing }

// EditID returns the id of the block being edited.
func (v View) EditID() int { return v.editID }

// BeginEdit opens the inline editor seeded from b. Title and category stay
// read-only here; the modal editor covers them.
func (v View) BeginEdit(b codeblock.CodeBlock) View {
	codeHeight := max(v.height-19, 3)
	fields := []form.Field{
		form.NewTextAreaField("Code", "", b.Code).
			WithHeight(codeHeight).
			WithLineNumbers(true).
			WithValidation(form.FieldValidation{MaxLength: codeblock.MaxCodeSize}),
		form.NewTextAreaField("Explanation", "Markdown is supported", b.Explanation).
			WithHeight(5),
		form.NewTextAreaField("Line explanations", "3: what line 3 does",
			codeblock.FormatLineExplanations(b.LineExplanations)).
			WithHeight(5),
	}
	v.editor = form.NewDialog("Editing "+b.Title, fields, []string{"code", "explanation", "lineExplanations"})
	v.editor.SetWidth(max(v.width-2, 10))
	v.editID = b.ID
	v.editing = true
	return v
}

// EndEdit closes the inline editor.
func (v View) EndEdit() View {
	v.editor = nil
	v.editing = false
	v.editID = 0
	return v
}

// Update handles keys for the pane.
func (v View) Update(msg tea.Msg) (View, tea.Cmd) {
	if v.editing {
		return v.updateEdit(msg)
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return v, nil
	}
	if _, has := v.ctrl.Block(); !has {
		if key.Matches(keyMsg, keys.back) {
			return v, back
		}
		return v, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		v.ctrl.MoveCursor(-1)
	case key.Matches(keyMsg, keys.down):
		v.ctrl.MoveCursor(1)
	case key.Matches(keyMsg, keys.top):
		v.ctrl.SetCursor(1)
		v.scroll = 0
		return v, nil
	case key.Matches(keyMsg, keys.bottom):
		v.ctrl.SetCursor(len(v.ctrl.Lines()))
	case key.Matches(keyMsg, keys.pageUp):
		v.scroll = v.clampScroll(v.scroll - max(v.height/2, 1))
		return v, nil
	case key.Matches(keyMsg, keys.pageDown):
		v.scroll = v.clampScroll(v.scroll + max(v.height/2, 1))
		return v, nil
	case key.Matches(keyMsg, keys.selectLine):
		v.ctrl.SelectLine(v.ctrl.Cursor())
	case key.Matches(keyMsg, keys.next):
		v.ctrl.NextClickable(1)
	case key.Matches(keyMsg, keys.prev):
		v.ctrl.NextClickable(-1)
	case key.Matches(keyMsg, keys.back):
		if _, open := v.ctrl.Popup(); open {
			v.ctrl.ClosePopup()
			return v, nil
		}
		return v, back
	}
	v.scrollToCursor()
	return v, nil
}

func back() tea.Msg { return BackRequestMsg{} }

func (v View) updateEdit(msg tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)

	switch {
	case v.editor.Cancelled():
		id := v.editID
		v.editor.Resume()
		return v, tea.Batch(cmd, func() tea.Msg { return CancelEditRequestMsg{ID: id} })
	case v.editor.Submitted():
		values := v.editor.FormValues()
		code := values["code"]
		explanation := values["explanation"]
		le := codeblock.ParseLineExplanations(values["lineExplanations"])
		req := SaveEditRequestMsg{
			ID: v.editID,
			Patch: codeblock.Patch{
				Code:             &code,
				Explanation:      &explanation,
				LineExplanations: &le,
			},
		}
		// The editor stays open until the parent reports a successful save.
		v.editor.Resume()
		return v, tea.Batch(cmd, func() tea.Msg { return req })
	}
	return v, cmd
}

// Click handles a mouse click at (x, y) relative to the content origin. A
// click inside the popup keeps it open, a click on an annotated line opens
// that line's popup, a click on a plain line only moves the cursor, and a
// click outside the code and the popup closes it.
func (v View) Click(x, y int) View {
	if v.editing {
		return v
	}
	if _, has := v.ctrl.Block(); !has {
		return v
	}

	if px, py, pw, ph, open := v.popupRect(); open {
		if x >= px && x < px+pw && y >= py && y < py+ph {
			return v
		}
	}

	line := y + v.scroll - codeStart + 1
	if line >= 1 && line <= len(v.ctrl.Lines()) {
		v.ctrl.SetCursor(line)
		v.ctrl.SelectLine(line)
		return v
	}
	v.ctrl.ClosePopup()
	return v
}

// ClosePopup closes the line popup, if one is open.
func (v View) ClosePopup() View {
	v.ctrl.ClosePopup()
	return v
}

// View renders the pane content.
func (v View) View() string {
	if v.editing {
		return lipgloss.NewStyle().MaxHeight(max(v.height, 1)).Render(v.editor.View())
	}
	if _, has := v.ctrl.Block(); !has {
		return styles.PlaceholderStyle.
			Width(max(v.width, 1)).
			Height(max(v.height, 1)).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Select a code block to view its details")
	}

	lines := v.contentLines()
	end := min(v.scroll+v.height, len(lines))
	visible := append([]string(nil), lines[min(v.scroll, end):end]...)
	for len(visible) < v.height {
		visible = append(visible, "")
	}
	base := strings.Join(visible, "\n")

	px, py, _, _, open := v.popupRect()
	if !open {
		return base
	}
	p, _ := v.ctrl.Popup()
	popupLayer := lipgloss.NewLayer(v.renderPopup(p)).X(px).Y(py).Z(1)
	return lipgloss.NewCompositor(lipgloss.NewLayer(base), popupLayer).Render()
}

func (v View) contentLines() []string {
	b, _ := v.ctrl.Block()
	out := make([]string, 0, codeStart+len(v.ctrl.Lines())+8)

	title := styles.TitleStyle.Render(styles.IconCode + " " + b.Title)
	if b.Category != "" {
		title += " " + styles.CategoryBadgeStyle.Render(b.Category)
	}
	out = append(out,
		ansi.Truncate(title, max(v.width, 1), "…"),
		styles.HelpDescStyle.Render(ansi.Truncate("enter explain  n/N next note  e edit  f fullscreen  d delete", max(v.width, 1), "…")),
		"",
	)

	textWidth := max(v.width-gutterWidth, 1)
	for i, text := range v.ctrl.Lines() {
		out = append(out, v.renderCodeLine(i+1, text, textWidth))
	}

	if strings.TrimSpace(b.Explanation) != "" {
		out = append(out, "", styles.SectionTitleStyle.UnsetMarginTop().Render(styles.IconLightbulb+" Explanation"))
		out = append(out, strings.Split(v.md.Render(b.Explanation, max(v.width, 10)), "\n")...)
	}
	return out
}

func (v View) renderCodeLine(n int, text string, width int) string {
	text = ansi.Truncate(strings.ReplaceAll(text, "\t", "    "), width, "…")

	marker := "  "
	switch {
	case v.focused && n == v.ctrl.Cursor():
		marker = styles.CodeMarkerStyle.Render("▶ ")
	case v.ctrl.Clickable(n):
		marker = styles.CodeMarkerStyle.Render("● ")
	}

	style := styles.CodeLineStyle
	switch {
	case n == v.ctrl.Highlighted():
		style = styles.CodeLineHighlightStyle
	case v.ctrl.Clickable(n):
		style = styles.CodeLineExplainedStyle
	}
	if v.focused && n == v.ctrl.Cursor() {
		style = style.Inherit(styles.CodeLineCursorStyle)
	}

	return marker + styles.LineNumberStyle.Render(strconv.Itoa(n)) + style.Render(text)
}

func (v View) renderPopup(p Popup) string {
	w := min(popupMaxWidth, max(v.width-2, 12))
	title := styles.PopupTitleStyle.Render("Line " + strconv.Itoa(p.Line))
	return styles.PopupStyle.Width(w).Render(title + "\n" + p.Text)
}

// popupRect returns the popup's position and size in content coordinates.
// It reports false when no popup is open or its line is scrolled away.
func (v View) popupRect() (x, y, w, h int, ok bool) {
	p, open := v.ctrl.Popup()
	if !open {
		return 0, 0, 0, 0, false
	}
	lineY := codeStart + p.Line - 1 - v.scroll
	if lineY < 0 || lineY >= v.height {
		return 0, 0, 0, 0, false
	}
	box := v.renderPopup(p)
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	x, y = PlacePopup(gutterWidth, lineY, w, h, v.width, v.height)
	return x, y, w, h, true
}

func (v *View) scrollToCursor() {
	row := codeStart + v.ctrl.Cursor() - 1
	switch {
	case row < v.scroll:
		v.scroll = row
	case row >= v.scroll+v.height:
		v.scroll = row - v.height + 1
	}
	v.scroll = v.clampScroll(v.scroll)
}

func (v View) clampScroll(s int) int {
	if _, has := v.ctrl.Block(); !has || v.height <= 0 {
		return 0
	}
	total := len(v.contentLines())
	return min(max(s, 0), max(total-v.height, 0))
}
