// Package notify defines the user-facing notification model shared by the
// TUI bus and its toast overlay.
package notify

import "time"

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a single message shown to the user.
type Notification struct {
	ID        int64
	Level     Level
	Message   string
	CreatedAt time.Time
}
