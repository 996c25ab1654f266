// Package resolve locates screenshot files referenced by image id from an
// ordered list of candidate locations.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrImageNotFound indicates that no candidate location contained the image.
var ErrImageNotFound = errors.New("image not found")

// DefaultExtensions is the extension search order for image ids.
var DefaultExtensions = []string{".png", ".jpg", ".jpeg"}

// Resolver finds image files by logical id. Search order:
//  1. ImagesDir/<id><ext>
//  2. recursive walk of ImagesDir (archives often nest images in subfolders)
//  3. JSONDir/<id><ext>
//  4. JSONDir/images/<id><ext>
//  5. each FallbackDir/<id><ext>
//
// The first existing regular file wins.
type Resolver struct {
	ImagesDir    string
	JSONDir      string
	FallbackDirs []string
	Extensions   []string
}

// New constructs a Resolver with the default extension order.
func New(jsonDir, imagesDir string, fallbackDirs []string) *Resolver {
	return &Resolver{
		ImagesDir:    imagesDir,
		JSONDir:      jsonDir,
		FallbackDirs: fallbackDirs,
		Extensions:   DefaultExtensions,
	}
}

// Resolve returns the path of the first existing file for imageID, or an
// error wrapping ErrImageNotFound.
func (r *Resolver) Resolve(imageID string) (string, error) {
	exts := r.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	if r.ImagesDir != "" {
		for _, ext := range exts {
			if p := existingFile(filepath.Join(r.ImagesDir, imageID+ext)); p != "" {
				return p, nil
			}
		}
		if p := r.findNested(imageID); p != "" {
			return p, nil
		}
	}

	dirs := []string{r.JSONDir, filepath.Join(r.JSONDir, "images")}
	dirs = append(dirs, r.FallbackDirs...)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, ext := range exts {
			if p := existingFile(filepath.Join(dir, imageID+ext)); p != "" {
				return p, nil
			}
		}
	}

	return "", fmt.Errorf("%w: %s", ErrImageNotFound, imageID)
}

// findNested walks ImagesDir looking for a file whose base name equals
// imageID (extension-insensitive) or starts with "imageID.".
func (r *Resolver) findNested(imageID string) string {
	var found string
	_ = filepath.Walk(r.ImagesDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}
		if found != "" {
			return filepath.SkipAll
		}
		if info.IsDir() {
			return nil
		}
		name := info.Name()
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if base == imageID || strings.HasPrefix(name, imageID+".") {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

func existingFile(path string) string {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	return path
}
