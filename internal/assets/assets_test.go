package assets

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomview/internal/archive"
)

func bundle(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("room/scene.gltf")
	require.NoError(t, err)
	_, err = w.Write([]byte("{}"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestLocalPathPassesThrough(t *testing.T) {
	got, err := Resolver{CacheDir: t.TempDir()}.Resolve(context.Background(), "assets/room.glb")
	require.NoError(t, err)
	assert.Equal(t, "assets/room.glb", got)
}

func TestLocalZip(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "office.zip")
	require.NoError(t, os.WriteFile(zipPath, bundle(t), 0o644))

	cache := filepath.Join(dir, "cache")
	got, err := Resolver{CacheDir: cache}.Resolve(context.Background(), zipPath)
	require.NoError(t, err)
	assert.Equal(t, "scene.gltf", filepath.Base(got))
	assert.Contains(t, got, filepath.Join("cache", "office"))
}

func TestRemoteModel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models/room.glb":
			_, _ = w.Write([]byte("glTF"))
		case "/models/room.zip":
			_, _ = w.Write(bundle(t))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	r := Resolver{CacheDir: t.TempDir()}

	got, err := r.Resolve(context.Background(), srv.URL+"/models/room.glb")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(r.CacheDir, "room.glb"), got)

	got, err = r.Resolve(context.Background(), srv.URL+"/models/room.zip")
	require.NoError(t, err)
	assert.Equal(t, "scene.gltf", filepath.Base(got))

	_, err = r.Resolve(context.Background(), srv.URL+"/missing.glb")
	assert.Error(t, err)
}

func TestZipWithoutModel(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	_, err := zw.Create("readme.txt")
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	zipPath := filepath.Join(dir, "empty.zip")
	require.NoError(t, os.WriteFile(zipPath, buf.Bytes(), 0o644))

	_, err = Resolver{CacheDir: dir}.Resolve(context.Background(), zipPath)
	assert.ErrorIs(t, err, archive.ErrNoModel)
}
