// Package scene holds the scene a terrain viewer displays: its basemap,
// its camera viewpoint and the elevation sources of its base surface.
package scene

import (
	"sync"

	"github.com/paulmach/orb"
)

// Source is an elevation source which can be attached to a scene surface.
type Source interface {
	ID() string
	Bound() orb.Bound
	ElevationAt(p orb.Point) (float64, bool)
}

// Context owns a scene. It is created once at startup and closed at exit.
type Context struct {
	mu      sync.RWMutex
	basemap Basemap
	camera  Camera
	sources []Source
	closed  bool
}

// New creates a scene with the given basemap.
func New(basemap Basemap) *Context {
	return &Context{basemap: basemap}
}

// Basemap returns the basemap of the scene.
func (c *Context) Basemap() Basemap {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.basemap
}

// SetViewpoint sets the camera viewpoint.
func (c *Context) SetViewpoint(camera Camera) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.camera = camera
}

// Viewpoint returns the current camera viewpoint.
func (c *Context) Viewpoint() Camera {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.camera
}

// AttachElevationSource appends s to the elevation sources of the base
// surface. Sources attached to a closed scene are dropped.
func (c *Context) AttachElevationSource(s Source) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.sources = append(c.sources, s)
}

// ElevationSources returns a snapshot of the attached sources in attach order.
func (c *Context) ElevationSources() []Source {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Source, len(c.sources))
	copy(out, c.sources)
	return out
}

// ElevationAt samples the attached sources in attach order. The first source
// holding data for p wins.
func (c *Context) ElevationAt(p orb.Point) (float64, bool) {
	for _, s := range c.ElevationSources() {
		if z, ok := s.ElevationAt(p); ok {
			return z, true
		}
	}
	return 0, false
}

// Extent returns the union of the bounds of all attached sources. ok is
// false if no source is attached.
func (c *Context) Extent() (bound orb.Bound, ok bool) {
	sources := c.ElevationSources()
	if len(sources) == 0 {
		return orb.Bound{}, false
	}

	bound = sources[0].Bound()
	for _, s := range sources[1:] {
		bound = bound.Union(s.Bound())
	}
	return bound, true
}

// Close tears the scene down and releases its sources.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.sources = nil
	return nil
}
