package detail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeblocks/pkg/tuitest"
)

func newFullscreen() Fullscreen {
	return NewFullscreen(false, "").SetSize(80, 24).Open(sampleBlock())
}

func TestFullscreen_ShowsCode(t *testing.T) {
	out := tuitest.StripANSI(newFullscreen().View())

	assert.Contains(t, out, "Hello World")
	assert.Contains(t, out, "package main")
	assert.Contains(t, out, "fmt.Println")
}

func TestFullscreen_CloseKeys(t *testing.T) {
	for _, k := range []rune{'q', 'f'} {
		_, cmd := newFullscreen().Update(tuitest.KeyPress(k))
		require.NotNil(t, cmd)
		assert.Equal(t, CloseFullscreenRequestMsg{}, cmd())
	}

	_, cmd := newFullscreen().Update(tuitest.KeyEsc())
	require.NotNil(t, cmd)
	assert.Equal(t, CloseFullscreenRequestMsg{}, cmd())
}

func TestFullscreen_CopyUsesRawCode(t *testing.T) {
	f := newFullscreen()
	var copied string
	f.copyFn = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := f.Update(tuitest.KeyPress('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, CopiedMsg{}, cmd())
	assert.Equal(t, sampleBlock().Code, copied)
}

func TestFullscreen_CopyError(t *testing.T) {
	f := newFullscreen()
	boom := errors.New("no clipboard")
	f.copyFn = func(string) error { return boom }

	_, cmd := f.Update(tuitest.KeyPress('y'))
	require.NotNil(t, cmd)
	assert.Equal(t, CopiedMsg{Err: boom}, cmd())
}
