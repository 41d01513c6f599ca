package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

func TestUnzipAndFindModel(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "room.zip")
	writeZip(t, zipPath, map[string]string{
		"room/scene.gltf":        "{}",
		"room/scene.bin":         "bin",
		"room/textures/wall.png": "png",
		"room/extra/backup.glb":  "glb",
	})

	dest := filepath.Join(dir, "out")
	files, err := Unzip(zipPath, dest)
	require.NoError(t, err)
	assert.Len(t, files, 4)

	model, err := FindModel(dest)
	require.NoError(t, err)
	assert.Equal(t, "scene.gltf", filepath.Base(model))

	data, err := os.ReadFile(filepath.Join(dest, "room", "scene.bin"))
	require.NoError(t, err)
	assert.Equal(t, "bin", string(data))
}

func TestFindModelPrefersGLB(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.gltf"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.glb"), nil, 0o644))
	model, err := FindModel(dir)
	require.NoError(t, err)
	assert.Equal(t, "c.glb", filepath.Base(model))
}

func TestFindModelEmpty(t *testing.T) {
	_, err := FindModel(t.TempDir())
	assert.ErrorIs(t, err, ErrNoModel)
}

func TestUnzipMissing(t *testing.T) {
	_, err := Unzip(filepath.Join(t.TempDir(), "missing.zip"), t.TempDir())
	assert.Error(t, err)
}
