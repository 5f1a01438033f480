package vectortile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peaks() map[string]*geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	f := geojson.NewFeature(orb.Point{5, 5})
	f.Properties["text"] = "95"
	fc.Append(f)
	return map[string]*geojson.FeatureCollection{"peaks": fc}
}

func TestBuild(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	collections := peaks()

	data, err := Build(bound, collections)
	require.NoError(t, err)

	layers, err := mvt.UnmarshalGzipped(data)
	require.NoError(t, err)
	require.Len(t, layers, 1)
	assert.Equal(t, "peaks", layers[0].Name)
	require.Len(t, layers[0].Features, 1)

	p, ok := layers[0].Features[0].Geometry.(orb.Point)
	require.True(t, ok)
	assert.Equal(t, orb.Point{tileSize / 2, tileSize / 2}, p)
	assert.Equal(t, "95", layers[0].Features[0].Properties["text"])

	// input is untouched
	assert.Equal(t, orb.Point{5, 5}, collections["peaks"].Features[0].Geometry)
}

func TestBuildEmptyBound(t *testing.T) {
	_, err := Build(orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{1, 1}}, peaks())
	assert.ErrorIs(t, err, ErrEmptyBound)
}

func TestWrite(t *testing.T) {
	out := filepath.Join(t.TempDir(), "peaks.pbf")
	bound := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}

	require.NoError(t, Write(out, bound, peaks()))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
