package notify

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// TerminalToaster prints toasts to a terminal and keeps track of the ones
// which are still on screen.
type TerminalToaster struct {
	mu     sync.Mutex
	out    *termenv.Output
	active []Toast
}

// NewTerminalToaster creates a toaster writing to w. Colors are only used
// if w is a terminal supporting them.
func NewTerminalToaster(w io.Writer) *TerminalToaster {
	return &TerminalToaster{out: termenv.NewOutput(w)}
}

// Show implements Toaster.
func (t *TerminalToaster) Show(toast Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = append(t.prune(toast.ShownAt), toast)

	styled := t.out.String(" ⚠️  " + toast.Message + " ").
		Foreground(t.out.Color("#ffffff")).
		Background(t.out.Color("#b00020")).
		Bold()

	fmt.Fprintln(t.out, styled.String())
}

// Active returns the toasts which are not yet dismissed at now.
func (t *TerminalToaster) Active(now time.Time) []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = t.prune(now)

	out := make([]Toast, len(t.active))
	copy(out, t.active)
	return out
}

func (t *TerminalToaster) prune(now time.Time) []Toast {
	kept := t.active[:0]
	for _, toast := range t.active {
		if now.Before(toast.ExpiresAt()) {
			kept = append(kept, toast)
		}
	}
	return kept
}

// Recorder is a Toaster keeping every toast it was shown.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

// Show implements Toaster.
func (r *Recorder) Show(toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

// Toasts returns the recorded toasts in order.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

// Messages returns the messages of the recorded toasts in order.
func (r *Recorder) Messages() []string {
	var out []string
	for _, toast := range r.Toasts() {
		out = append(out, toast.Message)
	}
	return out
}
