package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/codeblocks/internal/core/notify"
	"github.com/colonyops/codeblocks/internal/core/styles"
)

const (
	toastTTL          = 5 * time.Second
	errorToastTTL     = 8 * time.Second
	maxToasts         = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

// toasts is the stack of visible notifications, oldest first. Errors stay
// up longer than info and warnings.
type toasts struct {
	items   []toast
	ticking bool
}

func (t *toasts) push(n notify.Notification) {
	ttl := toastTTL
	if n.Level == notify.LevelError {
		ttl = errorToastTTL
	}
	t.items = append(t.items, toast{notification: n, remaining: ttl})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}

// tick ages every toast by d and drops the expired ones.
func (t *toasts) tick(d time.Duration) {
	alive := t.items[:0]
	for _, it := range t.items {
		it.remaining -= d
		if it.remaining > 0 {
			alive = append(alive, it)
		}
	}
	t.items = alive
}

// dismiss removes the newest toast.
func (t *toasts) dismiss() {
	if len(t.items) > 0 {
		t.items = t.items[:len(t.items)-1]
	}
}

func (t *toasts) empty() bool { return len(t.items) == 0 }

func (t *toasts) messages() []string {
	out := make([]string, len(t.items))
	for i, it := range t.items {
		out[i] = it.notification.Message
	}
	return out
}

func (t *toasts) view(screenWidth int) string {
	if len(t.items) == 0 {
		return ""
	}
	w := min(toastWidth, max(screenWidth-2, 10))

	rendered := make([]string, 0, len(t.items))
	for _, it := range t.items {
		icon, style := styles.IconNotifyInfo, styles.ToastInfoStyle
		switch it.notification.Level {
		case notify.LevelError:
			icon, style = styles.IconNotifyError, styles.ToastErrorStyle
		case notify.LevelWarning:
			icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
		}
		rendered = append(rendered, style.Width(w).Render(icon+" "+it.notification.Message))
	}
	return strings.Join(rendered, "\n")
}

// overlay draws the stack in the lower-right corner, above the status bar.
func (t *toasts) overlay(background string, width, height int) string {
	content := t.view(width)
	if content == "" {
		return background
	}

	layer := lipgloss.NewLayer(content)
	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-1-lipgloss.Height(content), 0)
	layer.X(x).Y(y).Z(2)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), layer).Render()
}
