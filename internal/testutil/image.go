// Package testutil provides fixtures for tests: synthetic screenshots and
// capture documents.
package testutil

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// GenerateScreenshot creates a synthetic screenshot-like image with a
// gradient pattern, so annotation marks are visible against it.
func GenerateScreenshot(width, height int) *image.NRGBA {
	img := imaging.New(width, height, color.White)
	for y := range height {
		for x := range width {
			val := uint8((x + y) % 256)
			img.Set(x, y, color.NRGBA{R: val, G: val, B: 255, A: 255})
		}
	}
	return img
}

// WriteScreenshot writes a synthetic screenshot to path. The encoding is
// chosen from the file extension.
func WriteScreenshot(t *testing.T, path string, width, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, imaging.Save(GenerateScreenshot(width, height), path))
}

// WriteFile writes arbitrary content to path, creating parent directories.
func WriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, content, 0o600))
}
