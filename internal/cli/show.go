package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/gruppe-adler/rasterscene/internal/app"
	"github.com/gruppe-adler/rasterscene/internal/notify"
	"github.com/gruppe-adler/rasterscene/internal/scene"
)

// Show builds the scene, loads the given raster packages as its elevation
// source and prints the outcome.
func Show(ctx context.Context, flagSet *flag.FlagSet, args []string, in io.Reader, outW io.Writer) error {
	start := time.Now()

	var rasters stringList
	configPtr := flagSet.String("config", "", "Path to a TOML config file")
	flagSet.Var(&rasters, "raster", "Path to a raster package (.tpkx, .tpk, .asc, .asc.gz); repeatable")
	basemapPtr := flagSet.String("basemap", "", "Basemap: imagery, imagery-with-labels, streets, topographic, oceans")
	permissionPtr := flagSet.String("permission", "", "Read permission policy: granted, grant, deny or ask")
	rootPtr := flagSet.String("storage-root", "", "Directory the read permission covers (default: directory of the first raster)")
	logLevelPtr := flagSet.String("log-level", "", "Log level: debug, info, warn, error")
	logFormatPtr := flagSet.String("log-format", "", "Log format: text or json")

	if help, err := parse(flagSet, args); help || err != nil {
		return err
	}

	cfg := app.DefaultConfig()
	if *configPtr != "" {
		if err := app.LoadFile(*configPtr, &cfg); err != nil {
			return &ExitError{Code: 2, Message: err.Error()}
		}
	}

	// explicitly set flags win over the config file
	var flagErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "raster":
			cfg.Rasters = rasters
		case "basemap":
			b, err := scene.ParseBasemap(*basemapPtr)
			if err != nil {
				flagErr = err
			}
			cfg.Basemap = b
		case "permission":
			cfg.Permission = *permissionPtr
		case "storage-root":
			cfg.StorageRoot = *rootPtr
		case "log-level":
			cfg.Log.Level = *logLevelPtr
		case "log-format":
			cfg.Log.Format = *logFormatPtr
		}
	})
	if flagErr != nil {
		return usageError(flagSet, flagErr.Error())
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return usageError(flagSet, err.Error())
	}

	fmt.Fprintln(outW, "▶️  Creating scene with", config.Basemap, "basemap")
	toaster := notify.NewTerminalToaster(outW)
	a := app.New(outW, config, app.WithInput(in), app.WithToaster(toaster))
	defer a.Close()
	fmt.Fprintln(outW, "ℹ️  Camera:", a.Scene().Viewpoint())

	fmt.Fprintln(outW, "▶️  Loading elevation source")
	state, err := a.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(outW, "ℹ️  Workflow finished in state", state)
	fmt.Fprintln(outW, "ℹ️  Elevation sources:", len(a.Scene().ElevationSources()))

	if extent, ok := a.Scene().Extent(); ok {
		fmt.Fprintf(outW, "ℹ️  Surface extent: [%.5f, %.5f] - [%.5f, %.5f]\n",
			extent.Min.X(), extent.Min.Y(), extent.Max.X(), extent.Max.Y())
	}

	if z, ok := a.Scene().ElevationAt(config.Camera.Location()); ok {
		fmt.Fprintf(outW, "ℹ️  Ground elevation below camera: %.1fm\n", z)
	}

	if active := toaster.Active(time.Now()); len(active) > 0 {
		fmt.Fprintln(outW, "ℹ️  Notifications on screen:", len(active))
	}

	fmt.Fprintf(outW, "\n    🎉  Finished in %s\n", time.Since(start).String())
	return nil
}
