// Package terrainrgb encodes elevations as Mapbox Terrain-RGB colors.
package terrainrgb

import (
	"image/color"
	"math"
)

/*
	Terrain-RGB decodes heights with

	height = -10000 + ((R * 256 * 256 + G * 256 + B) * 0.1)

	Replacing (R * 256 * 256 + G * 256 + B) with x and solving for x:
	x = 10 * height + 100000

	x is then written as a base 256 number: position 2 is r, 1 is g, 0 is b.
*/

// MaxX is the largest encodable value of x.
const MaxX = 1<<24 - 1

// HeightToRgb calculates rgb values from height. Heights outside of the
// encodable range are clamped.
func HeightToRgb(height float64) color.RGBA {
	x := int64(math.Round(10*height + 100000))

	if x < 0 {
		x = 0
	}
	if x > MaxX {
		x = MaxX
	}

	return color.RGBA{
		R: uint8(x >> 16),
		G: uint8(x >> 8),
		B: uint8(x),
		A: 255,
	}
}

// RgbToHeight calculates height from given rgb values
func RgbToHeight(c color.RGBA) float64 {
	x := int64(c.R)<<16 | int64(c.G)<<8 | int64(c.B)

	return -10000.0 + float64(x)*0.1
}
