// Package list implements the sidebar listing of code blocks with search and
// category filtering.
package list

import (
	"github.com/colonyops/codeblocks/internal/core/codeblock"
)

// Controller holds the list's filtering and cursor state. It has no
// rendering or Bubble Tea dependencies.
type Controller struct {
	all        []codeblock.CodeBlock
	visible    []codeblock.CodeBlock
	categories []string
	search     string
	category   string
	cursor     int
	offset     int
	height     int
	activeID   int
}

// NewController creates an empty controller.
func NewController() *Controller {
	return &Controller{height: 1}
}

// SetBlocks replaces the listed blocks and category options. A category
// filter that no longer exists is reset to all categories. The cursor stays
// on the same block when it is still visible.
func (c *Controller) SetBlocks(blocks []codeblock.CodeBlock, categories []string) {
	var cursorID int
	if b, ok := c.CursorBlock(); ok {
		cursorID = b.ID
	}

	c.all = blocks
	c.categories = categories
	if c.category != "" && c.categoryIndex() < 0 {
		c.category = ""
	}
	c.refilter(cursorID)
}

// Total returns the number of blocks before filtering.
func (c *Controller) Total() int { return len(c.all) }

// Visible returns the blocks passing the current filters, in store order.
func (c *Controller) Visible() []codeblock.CodeBlock { return c.visible }

// Search returns the search text.
func (c *Controller) Search() string { return c.search }

// SetSearch filters by title or category substring.
func (c *Controller) SetSearch(s string) {
	if s == c.search {
		return
	}
	c.search = s
	c.refilter(0)
}

// Category returns the category filter; "" means all categories.
func (c *Controller) Category() string { return c.category }

// CategoryOptions returns the selectable filters, "" first.
func (c *Controller) CategoryOptions() []string {
	return append([]string{""}, c.categories...)
}

// SetCategory selects a category filter. Unknown categories select all.
func (c *Controller) SetCategory(category string) {
	c.category = category
	if c.categoryIndex() < 0 {
		c.category = ""
	}
	c.refilter(0)
}

// NextCategory cycles the category filter forward.
func (c *Controller) NextCategory() { c.cycleCategory(1) }

// PrevCategory cycles the category filter backward.
func (c *Controller) PrevCategory() { c.cycleCategory(-1) }

func (c *Controller) cycleCategory(delta int) {
	opts := c.CategoryOptions()
	i := c.categoryIndex() + 1 // options are offset by the leading ""
	n := len(opts)
	c.category = opts[((i+delta)%n+n)%n]
	c.refilter(0)
}

// categoryIndex returns the index of the filter in categories, -1 when the
// filter is "" or unknown.
func (c *Controller) categoryIndex() int {
	for i, cat := range c.categories {
		if cat == c.category {
			return i
		}
	}
	return -1
}

// EmptyMessage returns the text shown when nothing is visible.
func (c *Controller) EmptyMessage() string {
	if len(c.all) == 0 {
		return "No code blocks yet"
	}
	return "No code blocks found"
}

// SetActive marks the block with id as the one shown in the detail pane.
func (c *Controller) SetActive(id int) { c.activeID = id }

// IsActive reports whether b is the block shown in the detail pane.
func (c *Controller) IsActive(b codeblock.CodeBlock) bool {
	return c.activeID != 0 && b.ID == c.activeID
}

// SetHeight sets the number of rows available for entries.
func (c *Controller) SetHeight(h int) {
	c.height = max(h, 1)
	c.clampOffset()
}

// Offset returns the index of the first rendered entry.
func (c *Controller) Offset() int { return c.offset }

// Cursor returns the cursor index into Visible.
func (c *Controller) Cursor() int { return c.cursor }

// CursorBlock returns the block under the cursor.
func (c *Controller) CursorBlock() (codeblock.CodeBlock, bool) {
	if c.cursor < 0 || c.cursor >= len(c.visible) {
		return codeblock.CodeBlock{}, false
	}
	return c.visible[c.cursor], true
}

// Move shifts the cursor by delta, clamped to the visible entries.
func (c *Controller) Move(delta int) { c.setCursor(c.cursor + delta) }

// Top moves the cursor to the first entry.
func (c *Controller) Top() { c.setCursor(0) }

// Bottom moves the cursor to the last entry.
func (c *Controller) Bottom() { c.setCursor(len(c.visible) - 1) }

// Row returns the block rendered at row (0-based within the list area) and
// moves the cursor onto it.
func (c *Controller) Row(row int) (codeblock.CodeBlock, bool) {
	i := c.offset + row
	if row < 0 || i >= len(c.visible) {
		return codeblock.CodeBlock{}, false
	}
	c.setCursor(i)
	return c.visible[i], true
}

func (c *Controller) setCursor(i int) {
	c.cursor = min(max(i, 0), max(len(c.visible)-1, 0))
	c.clampOffset()
}

func (c *Controller) clampOffset() {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.height {
		c.offset = c.cursor - c.height + 1
	}
	c.offset = min(max(c.offset, 0), max(len(c.visible)-c.height, 0))
}

// refilter recomputes the visible entries and places the cursor on keepID
// when it is visible, otherwise on the first entry.
func (c *Controller) refilter(keepID int) {
	c.visible = codeblock.Filter(c.all, c.search, c.category)
	c.cursor = 0
	for i, b := range c.visible {
		if keepID != 0 && b.ID == keepID {
			c.cursor = i
			break
		}
	}
	c.clampOffset()
}
