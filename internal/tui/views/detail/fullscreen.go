package detail

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/x/ansi"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/internal/core/styles"
)

// CloseFullscreenRequestMsg asks the parent to close the fullscreen overlay.
type CloseFullscreenRequestMsg struct{}

// CopiedMsg reports the outcome of copying code to the clipboard.
type CopiedMsg struct {
	Err error
}

// Fullscreen shows the raw code of one block in a scrollable viewport.
type Fullscreen struct {
	block       codeblock.CodeBlock
	viewport    viewport.Model
	highlight   bool
	chromaStyle string
	width       int
	height      int
	copyFn      func(string) error
}

// NewFullscreen creates the overlay. When highlight is set, code is colored
// with the named chroma style.
func NewFullscreen(highlight bool, chromaStyle string) Fullscreen {
	return Fullscreen{
		viewport:    viewport.New(viewport.WithWidth(80), viewport.WithHeight(20)),
		highlight:   highlight,
		chromaStyle: chromaStyle,
		copyFn:      clipboard.WriteAll,
	}
}

// Open loads b and scrolls to the top.
func (f Fullscreen) Open(b codeblock.CodeBlock) Fullscreen {
	f.block = b
	code := strings.ReplaceAll(b.Code, "\t", "    ")
	if f.highlight {
		code = Highlight(code, b.Category, f.chromaStyle)
	}
	f.viewport.SetContent(code)
	f.viewport.GotoTop()
	return f
}

// SetSize sets the overlay to the full screen size.
func (f Fullscreen) SetSize(width, height int) Fullscreen {
	f.width = width
	f.height = height
	f.viewport.SetWidth(max(width-4, 1))
	f.viewport.SetHeight(max(height-6, 1))
	return f
}

// Update handles close, copy and scroll keys.
func (f Fullscreen) Update(msg tea.Msg) (Fullscreen, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "esc", "q", "f":
			return f, func() tea.Msg { return CloseFullscreenRequestMsg{} }
		case "y":
			code, copyFn := f.block.Code, f.copyFn
			return f, func() tea.Msg { return CopiedMsg{Err: copyFn(code)} }
		case "g", "home":
			f.viewport.GotoTop()
			return f, nil
		case "G", "end":
			f.viewport.GotoBottom()
			return f, nil
		}
	}

	var cmd tea.Cmd
	f.viewport, cmd = f.viewport.Update(msg)
	return f, cmd
}

// View renders the overlay filling the screen.
func (f Fullscreen) View() string {
	title := styles.TitleStyle.Render(ansi.Truncate(styles.IconCode+" "+f.block.Title, max(f.width-4, 1), "…"))
	help := styles.ModalHelpStyle.Render("j/k scroll  y copy  esc/q/f close")

	body := lipgloss.JoinVertical(lipgloss.Left, title, "", f.viewport.View(), help)
	return styles.PanelFocusedStyle.
		Width(max(f.width, 4)).
		Height(max(f.height, 4)).
		Padding(0, 1).
		Render(body)
}
