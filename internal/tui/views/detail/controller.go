// Package detail implements the detail pane: the annotated read view, inline
// edit mode, and the fullscreen code overlay.
package detail

import (
	"maps"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
)

// Popup is the explanation shown for a selected line.
type Popup struct {
	Line int
	Text string
}

// Controller holds the read-mode state for one block: the line cursor, the
// highlighted line and the open popup. At most one popup is open at a time.
type Controller struct {
	block       codeblock.CodeBlock
	has         bool
	lines       []string
	cursor      int
	highlighted int
	popup       *Popup
}

// NewController creates a controller showing nothing.
func NewController() *Controller {
	return &Controller{}
}

// SetBlock shows b, or the empty placeholder when ok is false. Line state is
// kept when the same block comes back unchanged from a reload.
func (c *Controller) SetBlock(b codeblock.CodeBlock, ok bool) {
	if !ok {
		*c = Controller{}
		return
	}

	same := c.has && c.block.ID == b.ID && c.block.Code == b.Code &&
		maps.Equal(c.block.LineExplanations, b.LineExplanations)

	c.block = b
	c.has = true
	c.lines = b.Lines()
	if same {
		return
	}
	c.cursor = 1
	c.highlighted = 0
	c.popup = nil
}

// Block returns the shown block.
func (c *Controller) Block() (codeblock.CodeBlock, bool) { return c.block, c.has }

// Lines returns the code split into lines; line n is Lines()[n-1].
func (c *Controller) Lines() []string { return c.lines }

// Clickable reports whether line n exists and carries an explanation.
func (c *Controller) Clickable(n int) bool {
	return c.has && n >= 1 && n <= len(c.lines) && c.block.HasExplanation(n)
}

// SelectLine highlights line n and opens its popup, replacing any previous
// popup and highlight. Lines without an explanation are ignored.
func (c *Controller) SelectLine(n int) bool {
	if !c.Clickable(n) {
		return false
	}
	text, _ := c.block.LineExplanation(n)

	c.ClosePopup()
	c.highlighted = n
	c.popup = &Popup{Line: n, Text: text}
	c.cursor = n
	return true
}

// ClosePopup closes the popup and clears the highlight.
func (c *Controller) ClosePopup() {
	c.popup = nil
	c.highlighted = 0
}

// Popup returns the open popup.
func (c *Controller) Popup() (Popup, bool) {
	if c.popup == nil {
		return Popup{}, false
	}
	return *c.popup, true
}

// Highlighted returns the highlighted line, 0 when none.
func (c *Controller) Highlighted() int { return c.highlighted }

// Cursor returns the 1-based cursor line, 0 when no block is shown.
func (c *Controller) Cursor() int { return c.cursor }

// MoveCursor shifts the cursor by delta lines, clamped to the code.
func (c *Controller) MoveCursor(delta int) { c.SetCursor(c.cursor + delta) }

// SetCursor moves the cursor to line n, clamped to the code.
func (c *Controller) SetCursor(n int) {
	if !c.has {
		return
	}
	c.cursor = min(max(n, 1), len(c.lines))
}

// NextClickable moves the cursor to the next annotated line in direction
// dir (1 or -1), wrapping around. It returns false when no line is annotated.
func (c *Controller) NextClickable(dir int) bool {
	n := len(c.lines)
	for step := 1; step <= n; step++ {
		line := ((c.cursor-1+dir*step)%n+n)%n + 1
		if c.Clickable(line) {
			c.cursor = line
			return true
		}
	}
	return false
}

// PlacePopup positions a popup of size popupW x popupH for the line whose
// left edge is at (lineX, lineY), inside a screen of screenW x screenH. The
// popup hangs below the line, shifts left when it would overflow the right
// edge, flips above the line when it would overflow the bottom, and never
// starts left of or above the origin.
func PlacePopup(lineX, lineY, popupW, popupH, screenW, screenH int) (x, y int) {
	x, y = lineX, lineY+1
	if x+popupW > screenW {
		x = screenW - popupW
	}
	if y+popupH > screenH {
		y = lineY - popupH
	}
	return max(x, 0), max(y, 0)
}
