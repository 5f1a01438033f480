package elevation

import (
	"context"
	"fmt"
	"sync"

	"github.com/gruppe-adler/rasterscene/internal/ctxlog"
	"github.com/gruppe-adler/rasterscene/internal/scene"
)

// FailureMessage is the user facing text for a failed load. The verb is
// replaced by the error reported by the raster reader.
const FailureMessage = "Raster elevation source failed to load: %s"

// Attacher receives loaded sources. It is only called on the UI loop.
type Attacher interface {
	AttachElevationSource(s scene.Source)
}

// Reporter surfaces messages to the user.
type Reporter interface {
	Report(message string)
}

// Poster runs functions on the UI loop.
type Poster interface {
	Post(fn func()) bool
}

// Result is the terminal outcome of a load.
type Result struct {
	Source *RasterSource
	Status LoadStatus
	Err    error
}

// Handle tracks one load started by Loader.Load.
type Handle struct {
	source *RasterSource
	done   chan struct{}
	result Result
}

// Source returns the source being loaded.
func (h *Handle) Source() *RasterSource {
	return h.source
}

// Done is closed after the terminal side effect (attach or report) ran.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Result returns the outcome. It is only valid after Done is closed.
func (h *Handle) Result() Result {
	return h.result
}

// Wait blocks until the load finished or ctx is done. Returning early does
// not cancel the load.
func (h *Handle) Wait(ctx context.Context) (Result, error) {
	select {
	case <-h.done:
		return h.result, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Loader creates raster sources, loads them and attaches them to a scene or
// reports their failure.
type Loader struct {
	scene      Attacher
	notifier   Reporter
	post       Poster
	sourceOpts []SourceOption

	mu       sync.Mutex
	inFlight bool
}

// NewLoader creates a loader. Attach and report calls run through post.
func NewLoader(sc Attacher, notifier Reporter, post Poster, opts ...SourceOption) *Loader {
	return &Loader{
		scene:      sc,
		notifier:   notifier,
		post:       post,
		sourceOpts: opts,
	}
}

// Load constructs a source for paths and starts loading it. Construction
// problems are returned as *ConfigurationError and no load is started.
// Only one load can be in flight; ErrLoadInProgress is returned otherwise.
func (l *Loader) Load(ctx context.Context, paths []string) (*Handle, error) {
	if len(paths) == 0 {
		return nil, &ConfigurationError{Err: ErrNoPaths}
	}

	l.mu.Lock()
	if l.inFlight {
		l.mu.Unlock()
		return nil, ErrLoadInProgress
	}
	l.inFlight = true
	l.mu.Unlock()

	src, err := NewRasterSource(paths, l.sourceOpts...)
	if err != nil {
		l.release()
		return nil, err
	}

	logger := ctxlog.FromContext(ctx).With("source", src.ID())
	h := &Handle{source: src, done: make(chan struct{})}

	src.OnStatusChanged(func(ev StatusChangedEvent) {
		switch ev.NewStatus {
		case Loading:
			logger.Debug("Loading elevation source.", "files", src.Files())

		case Loaded:
			l.complete(h, func() {
				l.scene.AttachElevationSource(src)
				logger.Info("Elevation source attached.", "bound", src.Bound())
			}, Result{Source: src, Status: Loaded})

		case FailedToLoad:
			loadErr := src.LoadError()
			l.complete(h, func() {
				l.notifier.Report(fmt.Sprintf(FailureMessage, loadErr))
			}, Result{Source: src, Status: FailedToLoad, Err: loadErr})
		}
	})

	src.LoadAsync()
	return h, nil
}

// complete runs the terminal side effect on the UI loop and then resolves h.
func (l *Loader) complete(h *Handle, effect func(), result Result) {
	finish := func() {
		h.result = result
		l.release()
		close(h.done)
	}

	posted := l.post.Post(func() {
		effect()
		finish()
	})
	if !posted {
		// UI loop is gone, nothing to attach to or show on
		finish()
	}
}

func (l *Loader) release() {
	l.mu.Lock()
	l.inFlight = false
	l.mu.Unlock()
}
