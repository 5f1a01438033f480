package elevation

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/gruppe-adler/rasterscene/internal/dem"
	"github.com/gruppe-adler/rasterscene/internal/testutil"
	"github.com/gruppe-adler/rasterscene/internal/validate"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitDone(t *testing.T, s *RasterSource) {
	t.Helper()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("source did not reach a terminal status")
	}
}

func TestNewRasterSourceConfigurationErrors(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr error
	}{
		{"no paths", nil, ErrNoPaths},
		{"empty path", []string{""}, validate.ErrEmptyPath},
		{"relative path", []string{"terrain.tpkx"}, validate.ErrRelativePath},
		{"unsupported", []string{"/data/terrain.png"}, validate.ErrUnsupported},
		{"one bad path", []string{"/data/a.tpkx", "b.tpkx"}, validate.ErrRelativePath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewRasterSource(tt.paths)
			assert.Nil(t, s)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewRasterSource(t *testing.T) {
	s, err := NewRasterSource([]string{"/data/a.tpkx", "/data/b.tpkx", "/data/a.tpkx"})
	require.NoError(t, err)

	assert.Equal(t, NotLoaded, s.Status())
	assert.NoError(t, s.LoadError())
	assert.Equal(t, []string{"/data/a.tpkx", "/data/b.tpkx"}, s.Files())
	assert.Len(t, s.ID(), 36)

	other, err := NewRasterSource([]string{"/data/a.tpkx"})
	require.NoError(t, err)
	assert.NotEqual(t, s.ID(), other.ID())
}

func TestLoadAsyncLoaded(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WritePackage(t, dir, "terrain.tpkx", map[string]any{"name": "test"}, testutil.SmallGrid())

	s, err := NewRasterSource([]string{p})
	require.NoError(t, err)

	var mu sync.Mutex
	var events []StatusChangedEvent
	s.OnStatusChanged(func(ev StatusChangedEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	})

	s.LoadAsync()
	s.LoadAsync()
	waitDone(t, s)

	assert.Equal(t, Loaded, s.Status())
	assert.NoError(t, s.LoadError())

	mu.Lock()
	transitions := make([][2]LoadStatus, len(events))
	for i, ev := range events {
		transitions[i] = [2]LoadStatus{ev.OldStatus, ev.NewStatus}
		assert.Same(t, s, ev.Source)
	}
	mu.Unlock()

	want := [][2]LoadStatus{{NotLoaded, Loading}, {Loading, Loaded}}
	if diff := cmp.Diff(want, transitions); diff != "" {
		t.Errorf("status transitions mismatch (-want +got):\n%s", diff)
	}

	require.Len(t, s.Grids(), 1)
	z, ok := s.ElevationAt(orb.Point{-121.795, 36.535})
	assert.True(t, ok)
	assert.Equal(t, 95.0, z)

	bound := s.Bound()
	assert.InDelta(t, -121.81, bound.Min.X(), 1e-9)
	assert.InDelta(t, 36.55, bound.Max.Y(), 1e-9)
}

func TestLoadAsyncFailed(t *testing.T) {
	s, err := NewRasterSource([]string{"/nonexistent/file.tpkx"})
	require.NoError(t, err)

	s.LoadAsync()
	waitDone(t, s)

	assert.Equal(t, FailedToLoad, s.Status())

	var loadErr *LoadError
	require.ErrorAs(t, s.LoadError(), &loadErr)
	assert.Equal(t, s.ID(), loadErr.SourceID)
	assert.Contains(t, loadErr.Error(), "/nonexistent/file.tpkx")
	assert.Empty(t, s.Grids())
	assert.Equal(t, orb.Bound{}, s.Bound())
}

func TestLoadAsyncOneFileFails(t *testing.T) {
	boom := errors.New("corrupt raster")
	open := func(path string) (*dem.Package, error) {
		if path == "/data/bad.tpkx" {
			return nil, boom
		}
		return &dem.Package{Path: path}, nil
	}

	s, err := NewRasterSource([]string{"/data/good.tpkx", "/data/bad.tpkx"}, WithOpenFunc(open))
	require.NoError(t, err)

	s.LoadAsync()
	waitDone(t, s)

	assert.Equal(t, FailedToLoad, s.Status())
	assert.ErrorIs(t, s.LoadError(), boom)
}

func TestLoadAsyncMultipleFiles(t *testing.T) {
	dir := t.TempDir()
	east := testutil.SmallGrid()
	east.XLLCorner += 0.03
	east.Rows = [][]float64{{1, 1, 1}, {1, 7, 1}, {1, 1, 1}}

	a := testutil.WriteGrid(t, dir, "west.asc", testutil.SmallGrid())
	b := testutil.WriteGrid(t, dir, "east.asc.gz", east)

	s, err := NewRasterSource([]string{a, b})
	require.NoError(t, err)

	s.LoadAsync()
	waitDone(t, s)
	require.Equal(t, Loaded, s.Status())

	require.Len(t, s.Packages(), 2)
	assert.Equal(t, a, s.Packages()[0].Path, "packages keep file order")

	z, ok := s.ElevationAt(orb.Point{-121.765, 36.535})
	assert.True(t, ok)
	assert.Equal(t, 7.0, z)
}

func TestLoadStatusString(t *testing.T) {
	assert.Equal(t, "Loaded", Loaded.String())
	assert.Equal(t, "FailedToLoad", FailedToLoad.String())
	assert.Equal(t, "LoadStatus(9)", LoadStatus(9).String())
	assert.True(t, Loaded.Terminal())
	assert.False(t, Loading.Terminal())
}
