package dem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gruppe-adler/rasterscene/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtension(t *testing.T) {
	assert.Equal(t, ".tpkx", Extension("/a/B.TPKX"))
	assert.Equal(t, ".tpk", Extension("/a/b.tpk"))
	assert.Equal(t, ".asc.gz", Extension("/a/dem.asc.gz"))
	assert.Equal(t, ".asc", Extension("/a/dem.asc"))
	assert.Equal(t, "", Extension("/a/dem.tif"))
}

func TestReadPackageGrid(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"dem.asc", "dem.asc.gz"} {
		t.Run(name, func(t *testing.T) {
			p := testutil.WriteGrid(t, dir, name, testutil.SmallGrid())

			pkg, err := ReadPackage(p)
			require.NoError(t, err)
			require.Len(t, pkg.Grids, 1)
			assert.Equal(t, p, pkg.Path)
			assert.Equal(t, 95.0, pkg.Grids[0].Z(1, 1))
		})
	}
}

func TestReadPackageGridManifest(t *testing.T) {
	dir := t.TempDir()
	p := testutil.WriteGrid(t, dir, "dem.asc", testutil.SmallGrid())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"),
		[]byte(`{"name": "Loose", "elevationOffset": -5}`), 0o644))

	pkg, err := ReadPackage(p)
	require.NoError(t, err)
	assert.Equal(t, "Loose", pkg.Manifest.Name)
	assert.Equal(t, 90.0, pkg.Grids[0].Z(1, 1), "offset applied")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.json"), []byte(`{`), 0o644))
	_, err = ReadPackage(p)
	assert.Error(t, err)
}

func TestReadPackageArchive(t *testing.T) {
	dir := t.TempDir()
	second := testutil.SmallGrid()
	second.XLLCorner += 0.03

	p := testutil.WritePackage(t, dir, "terrain.tpkx",
		map[string]any{"name": "Monterey", "elevationOffset": 5},
		testutil.SmallGrid(), second,
	)

	pkg, err := ReadPackage(p)
	require.NoError(t, err)

	assert.Equal(t, "Monterey", pkg.Manifest.Name)
	require.Len(t, pkg.Grids, 2)
	assert.Equal(t, 100.0, pkg.Grids[0].Z(1, 1), "offset applied")
	assert.InDelta(t, -121.78, *pkg.Grids[1].Xcorner, 1e-9)
}

func TestReadPackageErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadPackage(filepath.Join(dir, "missing.tpkx"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("no grids", func(t *testing.T) {
		p := testutil.WritePackage(t, dir, "empty.tpkx", map[string]any{"name": "empty"})
		_, err := ReadPackage(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no elevation grids")
	})

	t.Run("not a zip", func(t *testing.T) {
		p := filepath.Join(dir, "corrupt.tpkx")
		require.NoError(t, os.WriteFile(p, []byte("definitely not a zip"), 0o644))
		_, err := ReadPackage(p)
		assert.Error(t, err)
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := ReadPackage(filepath.Join(dir, "dem.tif"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported")
	})

	t.Run("broken grid", func(t *testing.T) {
		p := filepath.Join(dir, "broken.asc")
		require.NoError(t, os.WriteFile(p, []byte("ncols 1\n"), 0o644))
		_, err := ReadPackage(p)
		require.Error(t, err)
		assert.Contains(t, err.Error(), p)
	})
}
