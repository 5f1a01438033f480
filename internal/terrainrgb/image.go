package terrainrgb

import (
	"image"
	"image/color"

	"github.com/gruppe-adler/rasterscene/internal/dem"
)

// Image encodes every cell of raster as a Terrain-RGB pixel. Cells without
// data become fully transparent.
func Image(raster *dem.EsriASCIIRaster) *image.RGBA {

	w, h := raster.Dims()

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))

	for col := uint(0); col < w; col++ {
		for row := uint(0); row < h; row++ {
			z := raster.Z(col, row)

			if raster.IsNoData(z) {
				img.SetRGBA(int(col), int(row), color.RGBA{})
				continue
			}

			img.SetRGBA(int(col), int(row), HeightToRgb(z))
		}
	}

	return img
}
