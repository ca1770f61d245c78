package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/codeblocks/internal/core/notify"
	"github.com/colonyops/codeblocks/internal/core/styles"
	"github.com/colonyops/codeblocks/pkg/tuitest"
)

func TestToasts_PushEvictsOldest(t *testing.T) {
	var ts toasts
	for i := range maxToasts + 2 {
		ts.push(notify.Notification{Level: notify.LevelInfo, Message: strings.Repeat("x", i+1)})
	}

	require.Len(t, ts.items, maxToasts)
	assert.Equal(t, "xxx", ts.items[0].notification.Message)
}

func TestToasts_ErrorsLiveLonger(t *testing.T) {
	var ts toasts
	ts.push(notify.Notification{Level: notify.LevelInfo, Message: "info"})
	ts.push(notify.Notification{Level: notify.LevelError, Message: "error"})

	ts.tick(toastTTL)

	assert.Equal(t, []string{"error"}, ts.messages())

	ts.tick(errorToastTTL - toastTTL)
	assert.True(t, ts.empty())
}

func TestToasts_Dismiss(t *testing.T) {
	var ts toasts
	ts.dismiss()
	assert.True(t, ts.empty())

	ts.push(notify.Notification{Message: "first"})
	ts.push(notify.Notification{Message: "second"})
	ts.dismiss()

	assert.Equal(t, []string{"first"}, ts.messages())
}

func TestToasts_ViewLevels(t *testing.T) {
	tests := []struct {
		level notify.Level
		icon  string
	}{
		{notify.LevelError, styles.IconNotifyError},
		{notify.LevelWarning, styles.IconNotifyWarning},
		{notify.LevelInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var ts toasts
			ts.push(notify.Notification{Level: tt.level, Message: "test msg"})

			out := ts.view(80)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToasts_OverlayLowerRight(t *testing.T) {
	var ts toasts
	assert.Equal(t, "bg", ts.overlay("bg", 80, 24))

	ts.push(notify.Notification{Level: notify.LevelInfo, Message: "positioned"})

	width, height := 100, 20
	row := strings.Repeat(".", width)
	bg := strings.TrimSuffix(strings.Repeat(row+"\n", height), "\n")

	lines := strings.Split(tuitest.StripANSI(ts.overlay(bg, width, height)), "\n")
	require.Len(t, lines, height)

	found := -1
	for i, l := range lines {
		if strings.Contains(l, "positioned") {
			found = i
		}
	}
	require.NotEqual(t, -1, found)
	assert.Greater(t, found, height/2)
	assert.Equal(t, row, lines[height-1], "status bar row stays visible")
	assert.True(t, strings.HasPrefix(lines[found], "...."))
}

func TestToasts_TickAges(t *testing.T) {
	var ts toasts
	ts.push(notify.Notification{Message: "tick"})

	ts.tick(time.Second)

	assert.Equal(t, toastTTL-time.Second, ts.items[0].remaining)
}
