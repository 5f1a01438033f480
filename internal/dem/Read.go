package dem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gruppe-adler/rasterscene/internal/manifest"
	"github.com/gruppe-adler/rasterscene/internal/utils"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

// Extensions lists the raster package file extensions that can be read.
var Extensions = []string{".asc", ".asc.gz", ".tpk", ".tpkx"}

// Extension returns the supported extension of filePath or "" if the file
// type is not supported.
func Extension(filePath string) string {
	lower := strings.ToLower(filePath)

	for _, ext := range Extensions {
		if strings.HasSuffix(lower, ext) {
			return ext
		}
	}
	return ""
}

// Package is a decoded raster package.
type Package struct {
	Path     string
	Manifest manifest.Manifest
	Grids    []EsriASCIIRaster
}

// ReadPackage reads and decodes the raster package at filePath. The
// manifest's elevation offset is already applied to the returned grids. For
// a single .asc/.asc.gz grid the manifest is a manifest.json in the same
// directory, if there is one.
func ReadPackage(filePath string) (*Package, error) {
	pkg := &Package{Path: filePath}

	switch Extension(filePath) {
	case ".asc", ".asc.gz":
		raster, err := Read(filePath)
		if err != nil {
			return nil, err
		}
		pkg.Grids = []EsriASCIIRaster{raster}

		// a loose grid may carry its manifest next to it
		manifestPath := filepath.Join(filepath.Dir(filePath), manifest.FileName)
		if utils.IsFile(manifestPath) {
			if pkg.Manifest, err = manifest.ReadFile(manifestPath); err != nil {
				return nil, err
			}
		}

	case ".tpk", ".tpkx":
		if err := readArchive(filePath, pkg); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("%s: unsupported raster package type", filePath)
	}

	if len(pkg.Grids) == 0 {
		return nil, fmt.Errorf("%s: raster package contains no elevation grids", filePath)
	}

	for i := range pkg.Grids {
		pkg.Grids[i].Offset(pkg.Manifest.ElevationOffset)
	}

	return pkg, nil
}

// Read digital elevation model from given path. Files ending in .gz are
// decompressed.
func Read(filePath string) (EsriASCIIRaster, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return EsriASCIIRaster{}, err
	}
	defer file.Close()

	raster, err := decode(file, strings.HasSuffix(strings.ToLower(filePath), ".gz"))
	if err != nil {
		return raster, fmt.Errorf("%s: %w", filePath, err)
	}

	return raster, nil
}

func decode(r io.Reader, gzipped bool) (EsriASCIIRaster, error) {
	if !gzipped {
		return ParseEsriASCIIRaster(r)
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		return EsriASCIIRaster{}, err
	}

	raster, err := ParseEsriASCIIRaster(gz)
	if err != nil {
		return raster, err
	}

	return raster, gz.Close()
}

func readArchive(filePath string, pkg *Package) error {
	archive, err := zip.OpenReader(filePath)
	if err != nil {
		return err
	}
	defer archive.Close()

	files := make([]*zip.File, 0, len(archive.File))
	for _, f := range archive.File {
		if !f.FileInfo().IsDir() {
			files = append(files, f)
		}
	}

	// grids are stacked in archive name order
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	for _, f := range files {
		name := strings.ToLower(path.Base(f.Name))

		switch {
		case name == manifest.FileName:
			err = readArchiveFile(f, func(r io.Reader) error {
				m, err := manifest.Read(r)
				pkg.Manifest = m
				return err
			})

		case strings.HasSuffix(name, ".asc"), strings.HasSuffix(name, ".asc.gz"):
			err = readArchiveFile(f, func(r io.Reader) error {
				raster, err := decode(r, strings.HasSuffix(name, ".gz"))
				if err != nil {
					return err
				}
				pkg.Grids = append(pkg.Grids, raster)
				return nil
			})
		}

		if err != nil {
			return fmt.Errorf("%s: %s: %w", filePath, f.Name, err)
		}
	}

	return nil
}

func readArchiveFile(f *zip.File, fn func(io.Reader) error) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}

	err = fn(rc)
	return errors.Join(err, rc.Close())
}
