// Package tilejson writes the tile.json describing a Terrain-RGB preview.
package tilejson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gruppe-adler/rasterscene/internal/manifest"
	"github.com/paulmach/orb"
)

// TileJSON represents a tile.json
type TileJSON struct {
	TileJSON    string     `json:"tilejson"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Encoding    string     `json:"encoding"`
	Tiles       []string   `json:"tiles"`
	Bounds      [4]float64 `json:"bounds"`
	Center      [3]float64 `json:"center"`
	Minzoom     uint8      `json:"minzoom"`
	Maxzoom     uint8      `json:"maxzoom"`
}

// New describes the preview images of a raster package covering bound.
// Image paths are made relative to outputDirectory.
func New(outputDirectory string, meta manifest.Manifest, bound orb.Bound, images []string) (TileJSON, error) {
	tiles := make([]string, len(images))
	for i, img := range images {
		rel, err := filepath.Rel(outputDirectory, img)
		if err != nil {
			return TileJSON{}, err
		}
		tiles[i] = filepath.ToSlash(rel)
	}

	name := meta.Name
	if name == "" {
		name = "Raster package"
	}

	center := bound.Center()

	return TileJSON{
		TileJSON:    "3.0.0",
		Name:        fmt.Sprintf("%s Terrain-RGB Preview", name),
		Description: fmt.Sprintf("Terrain-RGB preview images of '%s'", name),
		Encoding:    "mapbox",
		Tiles:       tiles,
		Bounds:      [4]float64{bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y()},
		Center:      [3]float64{center.X(), center.Y(), 0},
	}, nil
}

// Write writes obj as tile.json into outputDirectory and returns its path.
func Write(outputDirectory string, obj TileJSON) (string, error) {
	bytes, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return "", err
	}

	p := filepath.Join(outputDirectory, "tile.json")
	if err := os.WriteFile(p, bytes, 0o644); err != nil {
		return "", err
	}

	return p, nil
}
