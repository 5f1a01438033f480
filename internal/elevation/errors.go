package elevation

import (
	"errors"
	"fmt"
)

// ErrNoPaths is returned when a source is created without any file.
var ErrNoPaths = errors.New("at least one raster package path is required")

// ErrLoadInProgress is returned by Loader.Load while another load has not
// reached a terminal state yet.
var ErrLoadInProgress = errors.New("an elevation source load is already in progress")

// ConfigurationError reports a structurally invalid argument detected while
// constructing a source. No load is started.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("invalid raster package %q: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// LoadError wraps the failure of an asynchronous load.
type LoadError struct {
	SourceID string
	Err      error
}

func (e *LoadError) Error() string {
	return e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
