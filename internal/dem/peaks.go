package dem

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Peaks returns a feature for every cell which is higher than all of its
// direct neighbours. Features are sorted by descending elevation.
func Peaks(raster *EsriASCIIRaster) *geojson.FeatureCollection {

	peaks := geojson.NewFeatureCollection()

	if raster.Nrows < 3 || raster.Ncols < 3 {
		return peaks
	}

	// for all cells (except edges)
	for row := uint(1); row < raster.Nrows-1; row++ {
		for col := uint(1); col < raster.Ncols-1; col++ {
			elevation := raster.Z(col, row)

			if raster.IsNoData(elevation) || !isPeak(raster, col, row) {
				continue
			}

			feature := geojson.NewFeature(orb.Point{raster.X(col), raster.Y(row)})
			feature.Properties["elevation"] = elevation
			feature.Properties["text"] = fmt.Sprintf("%.0f", math.Round(elevation))

			peaks.Append(feature)
		}
	}

	sort.SliceStable(peaks.Features, func(i, j int) bool {
		return peaks.Features[i].Properties["elevation"].(float64) > peaks.Features[j].Properties["elevation"].(float64)
	})

	return peaks
}

func isPeak(raster *EsriASCIIRaster, col, row uint) bool {
	elevation := raster.Z(col, row)

	for compareRow := row - 1; compareRow <= row+1; compareRow++ {
		for compareCol := col - 1; compareCol <= col+1; compareCol++ {
			// we don't want to compare to the reference cell
			if row == compareRow && col == compareCol {
				continue
			}

			compareElev := raster.Z(compareCol, compareRow)
			if raster.IsNoData(compareElev) {
				continue
			}

			// same elevation counts as higher, a plane has no peak
			if compareElev >= elevation {
				return false
			}
		}
	}

	return true
}
