package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gruppe-adler/rasterscene/internal/dem"
	"github.com/gruppe-adler/rasterscene/internal/utils"
)

var (
	// ErrEmptyPath is returned for an empty raster package path.
	ErrEmptyPath = errors.New("raster package path is empty")
	// ErrRelativePath is returned for a path which is not absolute.
	ErrRelativePath = errors.New("raster package path must be absolute")
	// ErrUnsupported is returned for a path with an unknown file extension.
	ErrUnsupported = errors.New("unsupported raster package type")
)

// RasterPackagePath checks that given path is structurally valid. It does
// not touch the filesystem.
func RasterPackagePath(packagePath string) error {
	if strings.TrimSpace(packagePath) == "" {
		return ErrEmptyPath
	}

	if strings.ContainsRune(packagePath, 0) {
		return fmt.Errorf("%q contains a NUL byte", packagePath)
	}

	if !filepath.IsAbs(packagePath) {
		return fmt.Errorf("%s: %w", packagePath, ErrRelativePath)
	}

	if dem.Extension(packagePath) == "" {
		return fmt.Errorf("%s: %w (supported: %s)", packagePath, ErrUnsupported, strings.Join(dem.Extensions, ", "))
	}

	return nil
}

// RasterPackage validates that given path is a valid raster package path and
// the file exists
func RasterPackage(packagePath string) error {
	if err := RasterPackagePath(packagePath); err != nil {
		return err
	}

	if !utils.IsFile(packagePath) {
		return fmt.Errorf("%s does not exists or is no file", packagePath)
	}

	return nil
}

// OutputDirectory validates that given directory exists
func OutputDirectory(dirPath string) error {
	if !utils.IsDirectory(dirPath) {
		return fmt.Errorf("%s does not exists or is no directory", dirPath)
	}

	return nil
}
