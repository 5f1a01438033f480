// Package workflow drives the async resource attach: acquire read access,
// load the elevation source, then attach it to the scene or report why it
// could not be loaded.
package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gruppe-adler/rasterscene/internal/ctxlog"
	"github.com/gruppe-adler/rasterscene/internal/elevation"
	"github.com/gruppe-adler/rasterscene/internal/permission"
)

// DeniedMessage is reported when the user declines read access.
const DeniedMessage = "Read permission denied: the raster package cannot be loaded"

// Gate checks and requests read access.
type Gate interface {
	Check() bool
	Request(onResult func(granted bool))
}

// Loader starts elevation source loads.
type Loader interface {
	Load(ctx context.Context, paths []string) (*elevation.Handle, error)
}

// Reporter surfaces messages to the user.
type Reporter interface {
	Report(message string)
}

// Poster runs functions on the UI loop.
type Poster interface {
	Post(fn func()) bool
}

// Workflow runs once. All transitions happen on the UI loop.
type Workflow struct {
	gate     Gate
	loader   Loader
	notifier Reporter
	post     Poster
	paths    []string

	mu     sync.Mutex
	state  State
	handle *elevation.Handle
	err    error
	start  sync.Once
	done   chan struct{}
}

// New creates a workflow loading paths.
func New(gate Gate, loader Loader, notifier Reporter, post Poster, paths []string) *Workflow {
	return &Workflow{
		gate:     gate,
		loader:   loader,
		notifier: notifier,
		post:     post,
		paths:    paths,
		done:     make(chan struct{}),
	}
}

// Start kicks the workflow off on the UI loop. Only the first call has an
// effect. It returns false if the UI loop no longer accepts work.
func (w *Workflow) Start(ctx context.Context) bool {
	started := true
	w.start.Do(func() {
		started = w.post.Post(func() { w.run(ctx) })
	})
	return started
}

// State returns the current state.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Err returns the error that ended the workflow in PermissionDenied or
// LoadFailed.
func (w *Workflow) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Handle returns the load handle once loading started.
func (w *Workflow) Handle() *elevation.Handle {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.handle
}

// Done is closed once a terminal state is reached.
func (w *Workflow) Done() <-chan struct{} {
	return w.done
}

// Wait blocks until a terminal state is reached or ctx is done.
func (w *Workflow) Wait(ctx context.Context) (State, error) {
	select {
	case <-w.done:
		return w.State(), nil
	case <-ctx.Done():
		return w.State(), ctx.Err()
	}
}

func (w *Workflow) run(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	if w.gate.Check() {
		logger.Debug("Read permission already granted.")
		w.load(ctx, logger)
		return
	}

	w.transition(logger, AwaitingPermission, nil)
	w.gate.Request(func(granted bool) {
		if !granted {
			w.notifier.Report(DeniedMessage)
			w.transition(logger, PermissionDenied, permission.ErrDenied)
			return
		}
		w.load(ctx, logger)
	})
}

func (w *Workflow) load(ctx context.Context, logger *slog.Logger) {
	w.transition(logger, Loading, nil)

	h, err := w.loader.Load(ctx, w.paths)
	if err != nil {
		w.notifier.Report(fmt.Sprintf(elevation.FailureMessage, err))
		w.transition(logger, LoadFailed, err)
		return
	}

	w.mu.Lock()
	w.handle = h
	w.mu.Unlock()

	go func() {
		<-h.Done()
		res := h.Result()

		posted := w.post.Post(func() { w.finishLoad(logger, res) })
		if !posted {
			w.finishLoad(logger, res)
		}
	}()
}

func (w *Workflow) finishLoad(logger *slog.Logger, res elevation.Result) {
	if res.Status == elevation.Loaded {
		w.transition(logger, Attached, nil)
		return
	}
	w.transition(logger, LoadFailed, res.Err)
}

func (w *Workflow) transition(logger *slog.Logger, to State, err error) {
	w.mu.Lock()
	from := w.state
	if !canTransition(from, to) {
		w.mu.Unlock()
		logger.Warn("Ignoring invalid workflow transition.", "from", from.String(), "to", to.String())
		return
	}
	w.state = to
	w.err = err
	w.mu.Unlock()

	logger.Debug("Workflow transition.", "from", from.String(), "to", to.String())

	if to.Terminal() {
		close(w.done)
	}
}
