package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/gruppe-adler/rasterscene/internal/scene"
	"github.com/pelletier/go-toml/v2"
)

// Permission policies.
const (
	PermissionGranted = "granted" // already granted, no prompt
	PermissionGrant   = "grant"   // prompt, answered with yes
	PermissionDeny    = "deny"    // prompt, answered with no
	PermissionAsk     = "ask"     // prompt on the terminal
)

var permissionPolicies = []string{PermissionGranted, PermissionGrant, PermissionDeny, PermissionAsk}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Basemap     scene.Basemap `toml:"basemap"`
	Camera      scene.Camera  `toml:"camera"`
	Rasters     []string      `toml:"rasters"`
	StorageRoot string        `toml:"storage_root"`
	Permission  string        `toml:"permission"`
	Log         LogConfig     `toml:"log"`
}

// DefaultConfig returns the configuration of the Monterey sample scene.
func DefaultConfig() Config {
	return Config{
		Basemap:    scene.Imagery,
		Camera:     scene.NewCamera(36.525, -121.80, 300.0, 180, 80.0, 0.0),
		Permission: PermissionAsk,
		Log:        LogConfig{Level: "info", Format: "text"},
	}
}

// LoadFile overlays the TOML file at path onto cfg.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// NewConfig validates cfg and fills in derived defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Rasters) == 0 {
		return nil, errors.New("at least one raster package is required")
	}

	if !slices.Contains(permissionPolicies, cfg.Permission) {
		return nil, fmt.Errorf("invalid permission policy %q: must be one of %v", cfg.Permission, permissionPolicies)
	}

	if err := cfg.Camera.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.Log.Format)
	}

	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Log.Level)
	}

	if cfg.StorageRoot == "" {
		cfg.StorageRoot = filepath.Dir(cfg.Rasters[0])
	}

	return &cfg, nil
}
