package list

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/pkg/tuitest"
)

func newTestView() View {
	blocks := testBlocks()
	v := New().SetSize(40, 12)
	return v.SetBlocks(blocks, codeblock.Categories(blocks))
}

// send feeds msgs to v and returns the command from the last one. Commands
// are not run, since cursor blink commands block.
func send(v View, msgs ...tea.Msg) (View, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		v, cmd = v.Update(msg)
	}
	return v, cmd
}

func TestView_RendersEntries(t *testing.T) {
	out := tuitest.StripANSI(newTestView().View())

	assert.Contains(t, out, "All categories")
	assert.Contains(t, out, "Hello")
	assert.Contains(t, out, "Basic HTTP")
	assert.Contains(t, out, "concurrency")
}

func TestView_EnterSelectsCursorEntry(t *testing.T) {
	v := newTestView()

	_, cmd := send(v, tuitest.KeyDown(), tuitest.KeyEnter())

	require.NotNil(t, cmd)
	assert.Equal(t, SelectRequestMsg{ID: 2}, cmd())
}

func TestView_SearchFiltersLive(t *testing.T) {
	v := newTestView()

	v, _ = send(v, tuitest.KeyPress('/'))
	require.True(t, v.Searching())

	v, _ = send(v, tuitest.Type("chan")...)
	assert.Equal(t, "chan", v.Controller().Search())
	assert.Equal(t, []int{3}, ids(v.Controller().Visible()))

	v, _ = send(v, tuitest.KeyEnter())
	assert.False(t, v.Searching())
	assert.Equal(t, []int{3}, ids(v.Controller().Visible()), "enter keeps the filter")
}

func TestView_SearchEscClears(t *testing.T) {
	v := newTestView()

	v, _ = send(v, tuitest.KeyPress('/'))
	v, _ = send(v, tuitest.Type("zzz")...)
	assert.Empty(t, v.Controller().Visible())
	assert.Contains(t, tuitest.StripANSI(v.View()), "No code blocks found")

	v, _ = send(v, tuitest.KeyEsc())
	assert.False(t, v.Searching())
	assert.Len(t, v.Controller().Visible(), 4)
}

func TestView_CategoryKeys(t *testing.T) {
	v := newTestView()

	v, _ = send(v, tuitest.KeyPress('c'))
	assert.Equal(t, "basics", v.Controller().Category())
	assert.Contains(t, tuitest.StripANSI(v.View()), "basics")

	v, _ = send(v, tuitest.KeyPress('C'))
	assert.Equal(t, "", v.Controller().Category())
}

func TestView_ClickSelectsRow(t *testing.T) {
	v := newTestView()

	v, cmd := v.Click(3, headerRows+3)
	require.NotNil(t, cmd)
	assert.Equal(t, SelectRequestMsg{ID: 4}, cmd())
	assert.Equal(t, 3, v.Controller().Cursor())

	_, cmd = v.Click(3, headerRows+10)
	assert.Nil(t, cmd)
}

func TestView_EmptyStore(t *testing.T) {
	v := New().SetSize(40, 10)
	assert.Contains(t, tuitest.StripANSI(v.View()), "No code blocks yet")
}
