// Package app wires the scene, permission gate, elevation loader and
// notifier together and runs the attach workflow on a UI loop.
package app

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/gruppe-adler/rasterscene/internal/ctxlog"
	"github.com/gruppe-adler/rasterscene/internal/elevation"
	"github.com/gruppe-adler/rasterscene/internal/notify"
	"github.com/gruppe-adler/rasterscene/internal/permission"
	"github.com/gruppe-adler/rasterscene/internal/scene"
	"github.com/gruppe-adler/rasterscene/internal/uiloop"
	"github.com/gruppe-adler/rasterscene/internal/workflow"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	config   *Config
	logger   *slog.Logger
	loop     *uiloop.Loop
	scene    *scene.Context
	notifier *notify.Notifier
	gate     *permission.Gate
	loader   *elevation.Loader
	workflow *workflow.Workflow
}

// Option configures an App.
type Option func(*appOptions)

type appOptions struct {
	in         io.Reader
	toaster    notify.Toaster
	sourceOpts []elevation.SourceOption
}

// WithInput sets the reader the terminal permission prompt reads from.
func WithInput(in io.Reader) Option {
	return func(o *appOptions) { o.in = in }
}

// WithToaster replaces the terminal toaster.
func WithToaster(t notify.Toaster) Option {
	return func(o *appOptions) { o.toaster = t }
}

// WithSourceOptions passes options to every raster source created.
func WithSourceOptions(opts ...elevation.SourceOption) Option {
	return func(o *appOptions) { o.sourceOpts = append(o.sourceOpts, opts...) }
}

// New creates the scene and all collaborators. Logs and toasts go to outW.
func New(outW io.Writer, cfg *Config, opts ...Option) *App {
	o := appOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.toaster == nil {
		o.toaster = notify.NewTerminalToaster(outW)
	}
	if o.in == nil {
		o.in = strings.NewReader("")
	}

	logger := newLogger(cfg.Log.Level, cfg.Log.Format, outW)
	logger.Debug("Logger configured successfully.")

	sc := scene.New(cfg.Basemap)
	sc.SetViewpoint(cfg.Camera)
	logger.Debug("Scene created.", "basemap", cfg.Basemap.String(), "camera", cfg.Camera.String())

	loop := uiloop.New()
	notifier := notify.New(logger, o.toaster)
	gate := permission.NewGate(cfg.StorageRoot, prompter(cfg.Permission, o.in, outW), loop, gateOptions(cfg.Permission)...)
	loader := elevation.NewLoader(sc, notifier, loop, o.sourceOpts...)

	return &App{
		config:   cfg,
		logger:   logger,
		loop:     loop,
		scene:    sc,
		notifier: notifier,
		gate:     gate,
		loader:   loader,
		workflow: workflow.New(gate, loader, notifier, loop, cfg.Rasters),
	}
}

func prompter(policy string, in io.Reader, out io.Writer) permission.Prompter {
	switch policy {
	case PermissionAsk:
		return permission.TerminalPrompter{In: in, Out: out}
	case PermissionDeny:
		return permission.StaticPrompter{Grant: false}
	default:
		return permission.StaticPrompter{Grant: true}
	}
}

func gateOptions(policy string) []permission.Option {
	if policy == PermissionGranted {
		return []permission.Option{permission.WithGranted()}
	}
	return nil
}

// Run starts the UI loop and the workflow and blocks until the workflow
// reached a terminal state or ctx is done.
func (a *App) Run(ctx context.Context) (workflow.State, error) {
	if err := ctx.Err(); err != nil {
		return a.workflow.State(), err
	}
	ctx = ctxlog.WithLogger(ctx, a.logger)

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.loop.Run(loopCtx)
	defer func() {
		a.loop.Stop()
		<-a.loop.Done()
	}()

	a.workflow.Start(ctx)
	a.logger.Debug("Workflow started.", "rasters", a.config.Rasters)

	state, err := a.workflow.Wait(ctx)
	if err != nil {
		return state, err
	}

	a.logger.Info("Workflow finished.", "state", state.String())
	return state, nil
}

// Scene returns the scene of the app.
func (a *App) Scene() *scene.Context {
	return a.scene
}

// Workflow returns the attach workflow of the app.
func (a *App) Workflow() *workflow.Workflow {
	return a.workflow
}

// Close tears the scene down.
func (a *App) Close() error {
	return a.scene.Close()
}
