package list

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
)

func testBlocks() []codeblock.CodeBlock {
	return []codeblock.CodeBlock{
		{ID: 1, Title: "Hello", Category: "basics"},
		{ID: 2, Title: "Goroutines", Category: "concurrency"},
		{ID: 3, Title: "Channels", Category: "concurrency"},
		{ID: 4, Title: "Basic HTTP", Category: "net"},
	}
}

func newTestController() *Controller {
	blocks := testBlocks()
	c := NewController()
	c.SetHeight(10)
	c.SetBlocks(blocks, codeblock.Categories(blocks))
	return c
}

func ids(blocks []codeblock.CodeBlock) []int {
	out := make([]int, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, b.ID)
	}
	return out
}

func TestController_Search(t *testing.T) {
	c := newTestController()

	c.SetSearch("basic")
	assert.Equal(t, []int{1, 4}, ids(c.Visible()), "matches title or category, case-insensitive")

	c.SetSearch("")
	assert.Len(t, c.Visible(), 4)
}

func TestController_CategoryCycle(t *testing.T) {
	c := newTestController()
	assert.Equal(t, []string{"", "basics", "concurrency", "net"}, c.CategoryOptions())

	c.NextCategory()
	assert.Equal(t, "basics", c.Category())
	c.NextCategory()
	assert.Equal(t, "concurrency", c.Category())
	assert.Equal(t, []int{2, 3}, ids(c.Visible()))

	c.PrevCategory()
	c.PrevCategory()
	assert.Equal(t, "", c.Category())
	c.PrevCategory()
	assert.Equal(t, "net", c.Category(), "wraps backward")
}

func TestController_SearchAndCategoryCombine(t *testing.T) {
	c := newTestController()
	c.SetCategory("concurrency")
	c.SetSearch("chan")

	assert.Equal(t, []int{3}, ids(c.Visible()))
}

func TestController_FilterMatchesPredicate(t *testing.T) {
	blocks := testBlocks()
	c := newTestController()

	for _, search := range []string{"", "o", "NET", "zzz"} {
		for _, cat := range c.CategoryOptions() {
			c.SetSearch(search)
			c.SetCategory(cat)

			visible := map[int]bool{}
			for _, b := range c.Visible() {
				visible[b.ID] = true
			}
			for _, b := range blocks {
				assert.Equal(t, codeblock.Matches(b, search, cat), visible[b.ID],
					"search=%q category=%q id=%d", search, cat, b.ID)
			}
		}
	}
}

func TestController_EmptyMessage(t *testing.T) {
	c := NewController()
	assert.Equal(t, "No code blocks yet", c.EmptyMessage())

	c = newTestController()
	c.SetSearch("nothing matches")
	assert.Empty(t, c.Visible())
	assert.Equal(t, "No code blocks found", c.EmptyMessage())
}

func TestController_UnknownCategoryResetsOnReload(t *testing.T) {
	c := newTestController()
	c.SetCategory("net")

	remaining := testBlocks()[:3]
	c.SetBlocks(remaining, codeblock.Categories(remaining))

	assert.Equal(t, "", c.Category())
	assert.Len(t, c.Visible(), 3)
}

func TestController_CursorKeepsBlockAcrossReload(t *testing.T) {
	c := newTestController()
	c.Move(2)
	b, ok := c.CursorBlock()
	require.True(t, ok)
	require.Equal(t, 3, b.ID)

	blocks := append([]codeblock.CodeBlock{{ID: 9, Title: "New"}}, testBlocks()...)
	c.SetBlocks(blocks, codeblock.Categories(blocks))

	b, ok = c.CursorBlock()
	require.True(t, ok)
	assert.Equal(t, 3, b.ID)
}

func TestController_ActiveMatchesByID(t *testing.T) {
	blocks := []codeblock.CodeBlock{
		{ID: 1, Title: "Same"},
		{ID: 2, Title: "Same"},
	}
	c := NewController()
	c.SetBlocks(blocks, nil)
	c.SetActive(2)

	assert.False(t, c.IsActive(blocks[0]), "duplicate titles must not both be active")
	assert.True(t, c.IsActive(blocks[1]))
}

func TestController_ScrollKeepsCursorVisible(t *testing.T) {
	var blocks []codeblock.CodeBlock
	for i := 1; i <= 20; i++ {
		blocks = append(blocks, codeblock.CodeBlock{ID: i, Title: fmt.Sprintf("block %d", i)})
	}
	c := NewController()
	c.SetBlocks(blocks, nil)
	c.SetHeight(5)

	c.Move(7)
	assert.Equal(t, 7, c.Cursor())
	assert.Equal(t, 3, c.Offset())

	c.Bottom()
	assert.Equal(t, 19, c.Cursor())
	assert.Equal(t, 15, c.Offset())

	b, ok := c.Row(0)
	require.True(t, ok)
	assert.Equal(t, 16, b.ID)

	c.Top()
	assert.Zero(t, c.Offset())
}

func TestController_RowOutOfRange(t *testing.T) {
	c := newTestController()
	_, ok := c.Row(10)
	assert.False(t, ok)
	_, ok = c.Row(-1)
	assert.False(t, ok)
}
