package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/gruppe-adler/rasterscene/internal/dem"
	"github.com/gruppe-adler/rasterscene/internal/validate"
	"github.com/gruppe-adler/rasterscene/internal/vectortile"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Inspect prints the manifest and grid metadata of a raster package and,
// on request, its peaks as GeoJSON.
func Inspect(flagSet *flag.FlagSet, args []string, outW io.Writer) error {
	inputPtr := flagSet.String("in", "", "Path to the raster package")
	peaksPtr := flagSet.Int("peaks", 0, "Print the N highest peaks as GeoJSON")
	mvtPtr := flagSet.String("mvt", "", "Write all peaks as a gzipped vector tile to this path")

	if help, err := parse(flagSet, args); help || err != nil {
		return err
	}

	if *inputPtr == "" {
		return usageError(flagSet, "missing -in")
	}

	if err := validate.RasterPackage(*inputPtr); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	pkg, err := dem.ReadPackage(*inputPtr)
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	fmt.Fprintln(outW, "ℹ️  Package:", pkg.Path)
	if pkg.Manifest.Name != "" {
		fmt.Fprintln(outW, "ℹ️  Name:", pkg.Manifest.Name)
	}
	if pkg.Manifest.SpatialReference.WKID != 0 {
		fmt.Fprintln(outW, "ℹ️  Spatial reference:", pkg.Manifest.SpatialReference.WKID)
	}
	if pkg.Manifest.ElevationOffset != 0 {
		fmt.Fprintln(outW, "ℹ️  Elevation offset:", pkg.Manifest.ElevationOffset)
	}

	peaks := geojson.NewFeatureCollection()
	var extent orb.Bound

	for i := range pkg.Grids {
		grid := &pkg.Grids[i]
		c, r := grid.Dims()
		b := grid.Bound()

		fmt.Fprintf(outW, "ℹ️  Grid %d: %dx%d cells of %g, bounds [%.5f, %.5f] - [%.5f, %.5f]\n",
			i, c, r, grid.CellSize, b.Min.X(), b.Min.Y(), b.Max.X(), b.Max.Y())

		if i == 0 {
			extent = b
		} else {
			extent = extent.Union(b)
		}

		if *peaksPtr > 0 || *mvtPtr != "" {
			peaks.Features = append(peaks.Features, dem.Peaks(grid).Features...)
		}
	}

	if *mvtPtr != "" {
		layers := map[string]*geojson.FeatureCollection{"peaks": peaks}
		if err := vectortile.Write(*mvtPtr, extent, layers); err != nil {
			return &ExitError{Code: 1, Message: err.Error()}
		}
		fmt.Fprintf(outW, "✔️  Wrote %d peaks to %s\n", len(peaks.Features), *mvtPtr)
	}

	if *peaksPtr <= 0 {
		return nil
	}

	peaks.Features = highest(peaks.Features, *peaksPtr)

	data, err := json.MarshalIndent(peaks, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(outW, string(data))

	return nil
}

// highest returns the n features with the highest elevation, highest first.
func highest(features []*geojson.Feature, n int) []*geojson.Feature {
	sorted := make([]*geojson.Feature, len(features))
	copy(sorted, features)

	sort.SliceStable(sorted, func(i, j int) bool {
		return peakElevation(sorted[i]) > peakElevation(sorted[j])
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func peakElevation(f *geojson.Feature) float64 {
	z, _ := f.Properties["elevation"].(float64)
	return z
}
