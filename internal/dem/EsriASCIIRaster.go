package dem

import (
	"math"

	"github.com/paulmach/orb"
)

// EsriASCIIRaster represents a ESRI ASCII Grid
type EsriASCIIRaster struct {
	Ncols, Nrows     uint
	Xcenter, Ycenter *float64
	Xcorner, Ycorner *float64
	CellSize         float64
	NoDataValue      float64
	HasNoData        bool
	Data             [][]float64
}

// Dims returns the dimensions of the grid.
func (raster EsriASCIIRaster) Dims() (c, r uint) {
	return raster.Ncols, raster.Nrows
}

// Z returns the value of a grid value at (c, r).
// It will panic if c or r are out of bounds for the grid.
func (raster EsriASCIIRaster) Z(c, r uint) float64 {
	return raster.Data[r][c]
}

// IsNoData reports whether z is the grid's NODATA_VALUE.
func (raster EsriASCIIRaster) IsNoData(z float64) bool {
	return raster.HasNoData && z == raster.NoDataValue
}

// origin returns the lower left corner of the lower left cell
func (raster EsriASCIIRaster) origin() (x, y float64) {
	half := raster.CellSize / 2

	switch {
	case raster.Xcorner != nil:
		x = *raster.Xcorner
	case raster.Xcenter != nil:
		x = *raster.Xcenter - half
	}

	switch {
	case raster.Ycorner != nil:
		y = *raster.Ycorner
	case raster.Ycenter != nil:
		y = *raster.Ycenter - half
	}

	return x, y
}

// X returns the coordinate of the center of the column at the index c.
func (raster EsriASCIIRaster) X(c uint) float64 {
	x, _ := raster.origin()
	return x + (float64(c)+0.5)*raster.CellSize
}

// Y returns the coordinate of the center of the row at the index r.
// Row 0 is the northernmost row.
func (raster EsriASCIIRaster) Y(r uint) float64 {
	_, y := raster.origin()
	return y + (float64(raster.Nrows-r)-0.5)*raster.CellSize
}

// Bound returns the area covered by the grid.
func (raster EsriASCIIRaster) Bound() orb.Bound {
	x, y := raster.origin()

	return orb.Bound{
		Min: orb.Point{x, y},
		Max: orb.Point{x + float64(raster.Ncols)*raster.CellSize, y + float64(raster.Nrows)*raster.CellSize},
	}
}

// At returns the elevation of the cell containing p. ok is false if p is
// outside of the grid or the cell holds no data.
func (raster EsriASCIIRaster) At(p orb.Point) (z float64, ok bool) {
	if raster.CellSize <= 0 || len(raster.Data) == 0 {
		return 0, false
	}

	if math.IsNaN(p.X()) || math.IsNaN(p.Y()) {
		return 0, false
	}

	x, y := raster.origin()

	col := math.Floor((p.X() - x) / raster.CellSize)
	rowFromBottom := math.Floor((p.Y() - y) / raster.CellSize)

	if col < 0 || rowFromBottom < 0 || col >= float64(raster.Ncols) || rowFromBottom >= float64(raster.Nrows) {
		return 0, false
	}

	row := raster.Nrows - 1 - uint(rowFromBottom)
	z = raster.Z(uint(col), row)

	if raster.IsNoData(z) {
		return 0, false
	}

	return z, true
}

// Offset adds offset to every cell holding data.
func (raster *EsriASCIIRaster) Offset(offset float64) {
	if offset == 0 {
		return
	}

	for _, row := range raster.Data {
		for i, z := range row {
			if raster.IsNoData(z) {
				continue
			}
			row[i] = z + offset
		}
	}
}
