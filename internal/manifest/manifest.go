package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// FileName is the name of the manifest inside a raster package archive.
const FileName = "manifest.json"

// SpatialReference identifies the coordinate system of the grids.
type SpatialReference struct {
	WKID int    `json:"wkid"`
	WKT  string `json:"wkt,omitempty"`
}

// Manifest represents the manifest.json bundled with a raster package
type Manifest struct {
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Author           string           `json:"author"`
	ElevationOffset  float64          `json:"elevationOffset"`
	SpatialReference SpatialReference `json:"spatialReference"`
	Version          float64          `json:"version"`
}

// Read decodes a manifest from r. Unknown fields are ignored.
func Read(r io.Reader) (Manifest, error) {
	var val Manifest

	if err := json.NewDecoder(r).Decode(&val); err != nil {
		return val, fmt.Errorf("decode %s: %w", FileName, err)
	}

	return val, nil
}

// ReadFile reads a manifest from given path
func ReadFile(manifestPath string) (Manifest, error) {
	file, err := os.Open(manifestPath)
	if err != nil {
		return Manifest{}, err
	}
	defer file.Close()

	return Read(file)
}
