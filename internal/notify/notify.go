// Package notify surfaces human readable messages to the user: a transient
// toast and a diagnostic log line at error level.
package notify

import (
	"log/slog"
	"time"
)

// Toast durations.
const (
	Short = 2 * time.Second
	Long  = 3500 * time.Millisecond
)

// Toast is a transient, auto-dismissing notification.
type Toast struct {
	Message  string
	Duration time.Duration
	ShownAt  time.Time
}

// ExpiresAt returns the moment the toast is dismissed.
func (t Toast) ExpiresAt() time.Time {
	return t.ShownAt.Add(t.Duration)
}

// Toaster presents toasts. Implementations must not block for long.
type Toaster interface {
	Show(Toast)
}

// Notifier reports messages to the user. Every call produces its own toast
// and its own log line.
type Notifier struct {
	logger  *slog.Logger
	toaster Toaster
	now     func() time.Time
}

// New creates a notifier. A nil toaster means only the log line is written.
func New(logger *slog.Logger, toaster Toaster) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{logger: logger, toaster: toaster, now: time.Now}
}

// Report shows message as a long toast and logs it at error level.
func (n *Notifier) Report(message string) {
	n.logger.Error(message)

	if n.toaster == nil {
		return
	}

	n.toaster.Show(Toast{Message: message, Duration: Long, ShownAt: n.now()})
}
