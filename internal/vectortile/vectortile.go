// Package vectortile encodes point layers of a raster package as a single
// gzipped Mapbox vector tile spanning the package extent.
package vectortile

import (
	"errors"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"
)

const tileSize = mvt.DefaultExtent

// ErrEmptyBound is returned when the extent has no area to project onto.
var ErrEmptyBound = errors.New("vector tile extent is empty")

// Build projects the collections from geographic coordinates inside bound to
// tile pixels and marshals them as a gzipped tile. The collections are not
// modified.
func Build(bound orb.Bound, collections map[string]*geojson.FeatureCollection) ([]byte, error) {
	width := bound.Max.X() - bound.Min.X()
	height := bound.Max.Y() - bound.Min.Y()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyBound
	}

	projection := func(p orb.Point) orb.Point {
		return orb.Point{
			(p.X() - bound.Min.X()) / width * tileSize,
			(bound.Max.Y() - p.Y()) / height * tileSize,
		}
	}

	projected := make(map[string]*geojson.FeatureCollection, len(collections))
	for name, fc := range collections {
		clone := geojson.NewFeatureCollection()
		for _, f := range fc.Features {
			feature := geojson.NewFeature(project.Geometry(f.Geometry, projection))
			for k, v := range f.Properties {
				feature.Properties[k] = v
			}
			clone.Append(feature)
		}
		projected[name] = clone
	}

	layers := mvt.NewLayers(projected)
	for _, l := range layers {
		l.Version = 2
	}
	layers.Clip(mvt.MapboxGLDefaultExtentBound)

	return mvt.MarshalGzipped(layers)
}

// Write builds the tile and stores it at path.
func Write(path string, bound orb.Bound, collections map[string]*geojson.FeatureCollection) error {
	data, err := Build(bound, collections)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
