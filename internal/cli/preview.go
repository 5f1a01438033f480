package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/gruppe-adler/rasterscene/internal/elevation"
	"github.com/gruppe-adler/rasterscene/internal/preview"
	"github.com/gruppe-adler/rasterscene/internal/tilejson"
	"github.com/gruppe-adler/rasterscene/internal/validate"
)

// Preview loads a raster package and writes Terrain-RGB preview images plus
// a tile.json describing them.
func Preview(ctx context.Context, flagSet *flag.FlagSet, args []string, outW io.Writer) error {
	var timer time.Time
	start := time.Now()

	outputPtr := flagSet.String("out", "", "Path to output directory")
	inputPtr := flagSet.String("in", "", "Path to the raster package")

	if help, err := parse(flagSet, args); help || err != nil {
		return err
	}

	// make sure both flags are present
	if *outputPtr == "" || *inputPtr == "" {
		return usageError(flagSet, "both -in and -out are required")
	}

	if err := validate.OutputDirectory(*outputPtr); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	if err := validate.RasterPackage(*inputPtr); err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}
	fmt.Fprintln(outW, "✔️  Validated input and output")

	timer = time.Now()
	fmt.Fprintln(outW, "▶️  Loading raster package")
	source, err := elevation.NewRasterSource([]string{*inputPtr})
	if err != nil {
		return &ExitError{Code: 1, Message: err.Error()}
	}

	source.LoadAsync()
	select {
	case <-source.Done():
	case <-ctx.Done():
		return ctx.Err()
	}

	if source.Status() != elevation.Loaded {
		return &ExitError{Code: 1, Message: fmt.Sprintf(elevation.FailureMessage, source.LoadError())}
	}
	fmt.Fprintln(outW, "✔️  Loaded raster package in", time.Since(timer).String())

	var images []string
	for i, grid := range source.Grids() {
		timer = time.Now()
		name := fmt.Sprintf("grid_%02d", i)
		fmt.Fprintf(outW, "▶️  Building previews of %s\n", name)

		paths, err := preview.WriteGrid(ctx, *outputPtr, name, grid, preview.Sizes)
		if err != nil {
			return err
		}
		images = append(images, paths...)

		fmt.Fprintf(outW, "✔️  Built previews of %s in %s\n", name, time.Since(timer).String())
	}

	timer = time.Now()
	fmt.Fprintln(outW, "▶️  Creating tile.json")
	obj, err := tilejson.New(*outputPtr, source.Packages()[0].Manifest, source.Bound(), images)
	if err != nil {
		return err
	}
	if _, err := tilejson.Write(*outputPtr, obj); err != nil {
		return err
	}
	fmt.Fprintln(outW, "✔️  Created tile.json in", time.Since(timer).String())

	fmt.Fprintf(outW, "\n    🎉  Finished in %s\n", time.Since(start).String())
	return nil
}
