package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// Grid describes an ESRI ASCII grid fixture. Rows are listed north to south.
type Grid struct {
	XLLCorner, YLLCorner float64
	CellSize             float64
	NoData               *float64
	Rows                 [][]float64
}

// SmallGrid is a 3x3 grid around the default camera with a single peak in
// the middle.
func SmallGrid() Grid {
	return Grid{
		XLLCorner: -121.81,
		YLLCorner: 36.52,
		CellSize:  0.01,
		Rows: [][]float64{
			{10, 20, 10},
			{20, 95, 30},
			{10, 20, 10},
		},
	}
}

// ASCII renders the grid in ESRI ASCII format.
func (g Grid) ASCII() string {
	var sb strings.Builder

	ncols := 0
	if len(g.Rows) > 0 {
		ncols = len(g.Rows[0])
	}

	fmt.Fprintf(&sb, "ncols %d\n", ncols)
	fmt.Fprintf(&sb, "nrows %d\n", len(g.Rows))
	fmt.Fprintf(&sb, "xllcorner %g\n", g.XLLCorner)
	fmt.Fprintf(&sb, "yllcorner %g\n", g.YLLCorner)
	fmt.Fprintf(&sb, "cellsize %g\n", g.CellSize)
	if g.NoData != nil {
		fmt.Fprintf(&sb, "NODATA_value %g\n", *g.NoData)
	}

	for _, row := range g.Rows {
		fields := make([]string, len(row))
		for i, z := range row {
			fields[i] = fmt.Sprintf("%g", z)
		}
		sb.WriteString(strings.Join(fields, " "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// WriteGrid writes g as a plain ASCII grid (name ends in .asc) or a gzipped
// one (name ends in .asc.gz) into dir and returns its path.
func WriteGrid(t *testing.T, dir, name string, g Grid) string {
	t.Helper()

	p := filepath.Join(dir, name)
	data := []byte(g.ASCII())

	if strings.HasSuffix(name, ".gz") {
		data = gzipBytes(t, data)
	}

	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

// WritePackage writes a zip raster package containing the given grids and,
// if manifest is not nil, a manifest.json. It returns the package path.
func WritePackage(t *testing.T, dir, name string, manifest map[string]any, grids ...Grid) string {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	if manifest != nil {
		w, err := zw.Create("manifest.json")
		require.NoError(t, err)
		require.NoError(t, json.NewEncoder(w).Encode(manifest))
	}

	for i, g := range grids {
		w, err := zw.Create(fmt.Sprintf("elevation/%02d.asc.gz", i))
		require.NoError(t, err)
		_, err = w.Write(gzipBytes(t, []byte(g.ASCII())))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, buf.Bytes(), 0o644))
	return p
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write(data)
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	return buf.Bytes()
}
