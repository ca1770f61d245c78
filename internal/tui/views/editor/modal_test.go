package editor

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeblocks/internal/core/codeblock"
	"github.com/colonyops/codeblocks/pkg/tuitest"
)

func send(m Modal, msgs ...tea.Msg) (Modal, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func submitted(t *testing.T, cmd tea.Cmd) SubmitRequestMsg {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(SubmitRequestMsg)
	require.True(t, ok, "expected SubmitRequestMsg")
	return msg
}

func TestModal_CreateSubmitsInput(t *testing.T) {
	m := NewCreate(100, 40)
	assert.Equal(t, 0, m.ID())

	msgs := tuitest.Type("Hello")
	msgs = append(msgs, tuitest.KeyTab())
	msgs = append(msgs, tuitest.Type("go")...)
	msgs = append(msgs, tuitest.KeyTab())
	msgs = append(msgs, tuitest.Type("fmt.Println()")...)
	msgs = append(msgs, tuitest.KeyTab(), tuitest.KeyTab())
	msgs = append(msgs, tuitest.Type("1: prints")...)
	msgs = append(msgs, tuitest.Ctrl('s'))

	_, cmd := send(m, msgs...)
	msg := submitted(t, cmd)

	assert.Equal(t, 0, msg.ID)
	assert.Equal(t, codeblock.Input{
		Title:            "Hello",
		Category:         "go",
		Code:             "fmt.Println()",
		LineExplanations: codeblock.LineExplanations{1: "prints"},
	}, msg.Input)
}

func TestModal_EmptyTitleBlocksSubmit(t *testing.T) {
	m := NewCreate(100, 40)

	m, cmd := send(m, tuitest.Ctrl('s'))

	assert.Nil(t, cmd)
	assert.Contains(t, tuitest.StripANSI(m.View()), "required")
}

func TestModal_EditSeedsFields(t *testing.T) {
	b := codeblock.CodeBlock{
		ID:               4,
		Title:            "Sorting",
		Category:         "algorithms",
		Code:             "sort.Ints(xs)",
		Explanation:      "Sorts in place.",
		LineExplanations: codeblock.LineExplanations{1: "ascending"},
	}
	m := NewEdit(b, 100, 40)
	assert.Equal(t, 4, m.ID())

	out := tuitest.StripANSI(m.View())
	assert.Contains(t, out, "Sorting")
	assert.Contains(t, out, "algorithms")
	assert.Contains(t, out, "1:ascending")

	_, cmd := send(m, tuitest.Ctrl('s'))
	msg := submitted(t, cmd)
	assert.Equal(t, 4, msg.ID)
	assert.Equal(t, b.Input(), msg.Input)
}

func TestModal_EscCloses(t *testing.T) {
	_, cmd := send(NewCreate(100, 40), tuitest.KeyEsc())

	require.NotNil(t, cmd)
	assert.Equal(t, CloseRequestMsg{}, cmd())
}

func TestModal_ResubmitAfterFailureKeepsContents(t *testing.T) {
	m := NewCreate(100, 40)
	m, cmd := send(m, append(tuitest.Type("Keep me"), tuitest.Ctrl('s'))...)
	first := submitted(t, cmd)

	m = m.Resume()
	_, cmd = send(m, tuitest.Ctrl('s'))
	second := submitted(t, cmd)

	assert.Equal(t, first, second)
	assert.Equal(t, "Keep me", second.Input.Title)
}

func TestModal_OverlayCentersOnBackground(t *testing.T) {
	bg := ""
	for i := range 40 {
		if i > 0 {
			bg += "\n"
		}
		bg += "...................................................................................................."
	}

	out := tuitest.StripANSI(NewCreate(100, 40).Overlay(bg, 100, 40))

	assert.Contains(t, out, "New code block")
	assert.Contains(t, out, "....")
}
