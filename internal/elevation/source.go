// Package elevation loads raster packages as elevation sources and attaches
// them to a scene once they are loaded.
package elevation

import (
	"runtime"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/gruppe-adler/rasterscene/internal/dem"
	"github.com/gruppe-adler/rasterscene/internal/validate"
	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"
)

// OpenFunc reads one raster package.
type OpenFunc func(path string) (*dem.Package, error)

// RasterSource is an elevation source backed by one or more raster
// packages.
type RasterSource struct {
	id    uuid.UUID
	files []string
	open  OpenFunc

	mu        sync.Mutex
	status    LoadStatus
	loadErr   error
	packages  []*dem.Package
	listeners []func(StatusChangedEvent)

	once sync.Once
	done chan struct{}
}

// SourceOption configures a RasterSource.
type SourceOption func(*RasterSource)

// WithOpenFunc replaces the function used to read raster packages.
func WithOpenFunc(open OpenFunc) SourceOption {
	return func(s *RasterSource) { s.open = open }
}

// NewRasterSource creates a source for the given raster package paths.
// Duplicate paths are collapsed. A *ConfigurationError is returned if no
// path is given or any path is structurally invalid.
func NewRasterSource(paths []string, opts ...SourceOption) (*RasterSource, error) {
	if len(paths) == 0 {
		return nil, &ConfigurationError{Err: ErrNoPaths}
	}

	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if err := validate.RasterPackagePath(p); err != nil {
			return nil, &ConfigurationError{Path: p, Err: err}
		}
		if !slices.Contains(files, p) {
			files = append(files, p)
		}
	}

	s := &RasterSource{
		id:    uuid.New(),
		files: files,
		open:  dem.ReadPackage,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the unique id of the source.
func (s *RasterSource) ID() string {
	return s.id.String()
}

// Files returns the raster package paths of the source.
func (s *RasterSource) Files() []string {
	return slices.Clone(s.files)
}

// Status returns the current load status.
func (s *RasterSource) Status() LoadStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// LoadError returns the error the load failed with, if any.
func (s *RasterSource) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// OnStatusChanged registers fn for all following status changes. fn is
// called from the goroutine performing the change and must not block.
func (s *RasterSource) OnStatusChanged(fn func(StatusChangedEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Done is closed once the source reached a terminal status and all
// listeners were notified.
func (s *RasterSource) Done() <-chan struct{} {
	return s.done
}

// LoadAsync starts loading the source in the background. Only the first
// call has an effect. A started load can not be cancelled.
func (s *RasterSource) LoadAsync() {
	s.once.Do(func() {
		s.setStatus(Loading, nil, nil)
		go s.load()
	})
}

func (s *RasterSource) load() {
	packages := make([]*dem.Package, len(s.files))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())

	for i, file := range s.files {
		i, file := i, file
		g.Go(func() error {
			pkg, err := s.open(file)
			if err != nil {
				return err
			}
			packages[i] = pkg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.setStatus(FailedToLoad, &LoadError{SourceID: s.ID(), Err: err}, nil)
		return
	}

	s.setStatus(Loaded, nil, packages)
}

func (s *RasterSource) setStatus(status LoadStatus, loadErr error, packages []*dem.Package) {
	s.mu.Lock()
	old := s.status
	s.status = status
	s.loadErr = loadErr
	if packages != nil {
		s.packages = packages
	}
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	event := StatusChangedEvent{Source: s, OldStatus: old, NewStatus: status}
	for _, fn := range listeners {
		fn(event)
	}

	if status.Terminal() {
		close(s.done)
	}
}

// Packages returns the decoded raster packages. It is empty until the source
// is loaded.
func (s *RasterSource) Packages() []*dem.Package {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.packages)
}

// Grids returns all grids of all packages in file order.
func (s *RasterSource) Grids() []*dem.EsriASCIIRaster {
	var grids []*dem.EsriASCIIRaster
	for _, pkg := range s.Packages() {
		for i := range pkg.Grids {
			grids = append(grids, &pkg.Grids[i])
		}
	}
	return grids
}

// Bound returns the area covered by the loaded grids.
func (s *RasterSource) Bound() orb.Bound {
	grids := s.Grids()
	if len(grids) == 0 {
		return orb.Bound{}
	}

	bound := grids[0].Bound()
	for _, g := range grids[1:] {
		bound = bound.Union(g.Bound())
	}
	return bound
}

// ElevationAt returns the elevation at p from the first grid holding data
// for p.
func (s *RasterSource) ElevationAt(p orb.Point) (float64, bool) {
	for _, g := range s.Grids() {
		if z, ok := g.At(p); ok {
			return z, true
		}
	}
	return 0, false
}
