package utils

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage("shot.png"))
	assert.True(t, IsSupportedImage("shot.JPG"))
	assert.True(t, IsSupportedImage("dir/shot.jpeg"))
	assert.False(t, IsSupportedImage("shot.gif"))
	assert.False(t, IsSupportedImage("shot"))
}

func TestSaveAndLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	src := image.NewRGBA(image.Rect(0, 0, 64, 48))
	require.NoError(t, SaveImagePNG(path, src))

	img, meta, err := LoadImage(path)
	require.NoError(t, err)
	require.NotNil(t, img)
	assert.Equal(t, 64, meta.Width)
	assert.Equal(t, 48, meta.Height)
	assert.Equal(t, "png", meta.Format)
	assert.Positive(t, meta.SizeBytes)
}

func TestLoadImage_Errors(t *testing.T) {
	_, _, err := LoadImage("")
	var procErr *ImageProcessingError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, "load", procErr.Operation)

	_, _, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	require.ErrorAs(t, err, &procErr)

	_, _, err = LoadImage("unsupported.gif")
	require.ErrorAs(t, err, &procErr)
}

func TestImageDimensions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, SaveImagePNG(path, image.NewRGBA(image.Rect(0, 0, 123, 45))))

	w, h, err := ImageDimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 123, w)
	assert.Equal(t, 45, h)
}
