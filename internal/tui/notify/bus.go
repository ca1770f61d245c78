// Package notify carries user-facing notifications from the TUI update loop
// to the toast overlay.
package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/colonyops/codeblocks/internal/core/logging"
	"github.com/colonyops/codeblocks/internal/core/notify"
)

// historyLimit bounds the notifications kept for History.
const historyLimit = 50

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. Subscribers run inline,
// so publishing from the Bubble Tea Update loop keeps toasts in order.
type Bus struct {
	mu          sync.Mutex
	subscribers []Subscriber
	history     []notify.Notification
	nextID      int64
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish assigns an id, records n in the history, and dispatches it.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.nextID++
	n.ID = b.nextID
	b.history = append(b.history, n)
	if len(b.history) > historyLimit {
		b.history = b.history[len(b.history)-historyLimit:]
	}
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	l := logging.Component("notify")
	l.Debug().
		Str("level", string(n.Level)).
		Str("message", n.Message).
		Msg("notification")

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelError,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelWarning,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns the recent notifications, newest first.
func (b *Bus) History() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]notify.Notification, len(b.history))
	for i, n := range b.history {
		out[len(b.history)-1-i] = n
	}
	return out
}
