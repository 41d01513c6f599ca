// Package assets turns the model reference from the command line or
// preferences into a local glTF file.
package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"roomview/internal/archive"
	"roomview/internal/download"
)

// DefaultCacheDir holds downloaded and extracted models.
const DefaultCacheDir = "assets/cache"

// Resolver maps model references to local paths.
type Resolver struct {
	CacheDir string
}

// Resolve returns a local model path for ref. http(s) URLs are downloaded
// into the cache directory first. A .zip bundle is extracted into a
// directory named after it and the model inside is returned. Anything else
// is returned unchanged.
func (r Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	dir := r.CacheDir
	if dir == "" {
		dir = DefaultCacheDir
	}
	path := ref
	if download.IsURL(ref) {
		var err error
		if path, err = download.Download(ctx, ref, dir); err != nil {
			return "", err
		}
	}
	if !strings.EqualFold(filepath.Ext(path), ".zip") {
		return path, nil
	}
	dest := filepath.Join(dir, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	if _, err := archive.Unzip(path, dest); err != nil {
		return "", err
	}
	model, err := archive.FindModel(dest)
	if err != nil {
		return "", fmt.Errorf("assets: %s: %w", ref, err)
	}
	return model, nil
}
