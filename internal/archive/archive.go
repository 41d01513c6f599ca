// Package archive unpacks zipped room bundles (a .gltf with its buffers and
// textures) and locates the model inside.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoModel is returned when a directory holds no .glb or .gltf file.
var ErrNoModel = errors.New("archive: no glTF model found")

// Unzip extracts zipPath into destDir, preserving directory structure.
// Entries that would escape destDir are skipped. destDir is created if
// needed. Returns the extracted file paths.
func Unzip(zipPath, destDir string) (extracted []string, err error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	defer r.Close()
	absDir, err := filepath.Abs(destDir)
	if err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	for _, f := range r.File {
		dest := filepath.Join(absDir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(dest, absDir+string(os.PathSeparator)) {
			continue
		}
		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0755)
			continue
		}
		if err := extract(f, dest); err != nil {
			return nil, fmt.Errorf("archive: %s: %w", f.Name, err)
		}
		extracted = append(extracted, dest)
	}
	return extracted, nil
}

func extract(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// FindModel returns the model file under dir. Shallower files win, then
// .glb over .gltf, then lexical order.
func FindModel(dir string) (string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(p)) {
		case ".glb", ".gltf":
			found = append(found, p)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("archive: %w", err)
	}
	if len(found) == 0 {
		return "", ErrNoModel
	}
	rank := func(p string) (int, int) {
		depth := strings.Count(filepath.ToSlash(p), "/")
		kind := 1
		if strings.EqualFold(filepath.Ext(p), ".glb") {
			kind = 0
		}
		return depth, kind
	}
	sort.SliceStable(found, func(i, j int) bool {
		di, ki := rank(found[i])
		dj, kj := rank(found[j])
		if di != dj {
			return di < dj
		}
		if ki != kj {
			return ki < kj
		}
		return found[i] < found[j]
	})
	return found[0], nil
}
