package elevation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gruppe-adler/rasterscene/internal/scene"
	"github.com/stretchr/testify/require"
)

type inlinePoster struct{}

func (inlinePoster) Post(fn func()) bool {
	fn()
	return true
}

type closedPoster struct{}

func (closedPoster) Post(func()) bool { return false }

type recordingReporter struct {
	mu       sync.Mutex
	messages []string
}

func (r *recordingReporter) Report(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, message)
}

func (r *recordingReporter) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}

func waitHandle(t *testing.T, h *Handle) Result {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := h.Wait(ctx)
	require.NoError(t, err, "load did not finish")
	return res
}

func newTestLoader(opts ...SourceOption) (*Loader, *scene.Context, *recordingReporter) {
	sc := scene.New(scene.Imagery)
	rep := &recordingReporter{}
	return NewLoader(sc, rep, inlinePoster{}, opts...), sc, rep
}

func newTestLoaderParts() (*scene.Context, *recordingReporter) {
	return scene.New(scene.Imagery), &recordingReporter{}
}
