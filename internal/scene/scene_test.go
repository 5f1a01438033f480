package scene

import (
	"fmt"
	"sync"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	id    string
	bound orb.Bound
	z     float64
}

func (f fakeSource) ID() string       { return f.id }
func (f fakeSource) Bound() orb.Bound { return f.bound }

func (f fakeSource) ElevationAt(p orb.Point) (float64, bool) {
	if !f.bound.Contains(p) {
		return 0, false
	}
	return f.z, true
}

func TestNew(t *testing.T) {
	sc := New(Imagery)
	camera := NewCamera(36.525, -121.80, 300.0, 180, 80.0, 0.0)
	sc.SetViewpoint(camera)

	assert.Equal(t, Imagery, sc.Basemap())
	assert.Equal(t, camera, sc.Viewpoint())
	assert.Equal(t, orb.Point{-121.80, 36.525}, sc.Viewpoint().Location())
	assert.Empty(t, sc.ElevationSources())
}

func TestAttachElevationSource(t *testing.T) {
	sc := New(Imagery)

	a := fakeSource{id: "a", bound: orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}, z: 1}
	b := fakeSource{id: "b", bound: orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{5, 3}}, z: 2}
	sc.AttachElevationSource(a)
	sc.AttachElevationSource(b)

	sources := sc.ElevationSources()
	require.Len(t, sources, 2)
	assert.Equal(t, "a", sources[0].ID())
	assert.Equal(t, "b", sources[1].ID())

	z, ok := sc.ElevationAt(orb.Point{1.5, 1.5})
	assert.True(t, ok)
	assert.Equal(t, 1.0, z, "first attached source wins")

	z, ok = sc.ElevationAt(orb.Point{4, 2})
	assert.True(t, ok)
	assert.Equal(t, 2.0, z)

	_, ok = sc.ElevationAt(orb.Point{10, 10})
	assert.False(t, ok)

	extent, ok := sc.Extent()
	assert.True(t, ok)
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{5, 3}}, extent)
}

func TestElevationSourcesSnapshot(t *testing.T) {
	sc := New(Imagery)
	sc.AttachElevationSource(fakeSource{id: "a"})

	snapshot := sc.ElevationSources()
	sc.AttachElevationSource(fakeSource{id: "b"})

	assert.Len(t, snapshot, 1)
	assert.Len(t, sc.ElevationSources(), 2)
}

func TestAttachConcurrent(t *testing.T) {
	sc := New(Imagery)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sc.AttachElevationSource(fakeSource{id: fmt.Sprint(i)})
		}(i)
	}
	wg.Wait()

	assert.Len(t, sc.ElevationSources(), 50)
}

func TestClose(t *testing.T) {
	sc := New(Imagery)
	sc.AttachElevationSource(fakeSource{id: "a"})

	require.NoError(t, sc.Close())
	assert.Empty(t, sc.ElevationSources())

	sc.AttachElevationSource(fakeSource{id: "b"})
	assert.Empty(t, sc.ElevationSources())

	_, ok := sc.Extent()
	assert.False(t, ok)
}

func TestParseBasemap(t *testing.T) {
	b, err := ParseBasemap("Imagery")
	require.NoError(t, err)
	assert.Equal(t, Imagery, b)

	b, err = ParseBasemap(" topographic ")
	require.NoError(t, err)
	assert.Equal(t, Topographic, b)

	_, err = ParseBasemap("satellite")
	assert.Error(t, err)

	assert.Equal(t, "imagery-with-labels", ImageryWithLabels.String())
	assert.Equal(t, "Basemap(42)", Basemap(42).String())

	var u Basemap
	require.NoError(t, u.UnmarshalText([]byte("oceans")))
	assert.Equal(t, Oceans, u)
}
