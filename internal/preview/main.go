// Package preview writes Terrain-RGB preview images of elevation grids.
package preview

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"runtime"

	"github.com/gruppe-adler/rasterscene/internal/dem"
	"github.com/gruppe-adler/rasterscene/internal/terrainrgb"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Sizes are the preview heights written next to the original image.
var Sizes = []uint{128, 256, 512, 1024}

var sem = semaphore.NewWeighted(int64(runtime.NumCPU()))

// WriteGrid encodes raster and writes it as <name>.png plus one
// <name>_<size>.png per size into outputDirectory. It returns the written
// paths, original first.
func WriteGrid(ctx context.Context, outputDirectory, name string, raster *dem.EsriASCIIRaster, sizes []uint) ([]string, error) {
	img := terrainrgb.Image(raster)

	paths := make([]string, len(sizes)+1)
	paths[0] = filepath.Join(outputDirectory, name+".png")
	if err := saveImage(paths[0], img); err != nil {
		return nil, err
	}

	previewHeight := img.Bounds().Dy()
	previewWidth := img.Bounds().Dx()

	g, ctx := errgroup.WithContext(ctx)
	for i, size := range sizes {
		i, size := i, size
		paths[i+1] = filepath.Join(outputDirectory, fmt.Sprintf("%s_%d.png", name, size))

		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)

			factor := float64(size) / float64(previewHeight)
			w := uint(float64(previewWidth) * factor)
			if w == 0 {
				w = 1
			}

			// nearest neighbour keeps the encoded heights intact
			resized := resize.Resize(w, size, img, resize.NearestNeighbor)
			return saveImage(paths[i+1], resized)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

func saveImage(path string, img image.Image) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := png.Encode(out, img); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return out.Close()
}
