package resolve

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/stepreport/internal/testutil"
)

func TestResolve_ImagesDirWinsOverFallback(t *testing.T) {
	imagesDir := t.TempDir()
	fallback := t.TempDir()
	testutil.WriteScreenshot(t, filepath.Join(imagesDir, "foo.png"), 10, 10)
	testutil.WriteScreenshot(t, filepath.Join(fallback, "foo.jpg"), 10, 10)

	r := New(t.TempDir(), imagesDir, []string{fallback})
	path, err := r.Resolve("foo")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(imagesDir, "foo.png"), path)
}

func TestResolve_ExtensionOrder(t *testing.T) {
	imagesDir := t.TempDir()
	testutil.WriteScreenshot(t, filepath.Join(imagesDir, "shot.jpeg"), 10, 10)
	testutil.WriteScreenshot(t, filepath.Join(imagesDir, "shot.jpg"), 10, 10)

	r := New(t.TempDir(), imagesDir, nil)
	path, err := r.Resolve("shot")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(imagesDir, "shot.jpg"), path)
}

func TestResolve_NestedInImagesDir(t *testing.T) {
	imagesDir := t.TempDir()
	nested := filepath.Join(imagesDir, "archive", "screens", "bar.png")
	testutil.WriteScreenshot(t, nested, 10, 10)

	r := New(t.TempDir(), imagesDir, nil)
	path, err := r.Resolve("bar")
	require.NoError(t, err)
	assert.Equal(t, nested, path)
}

func TestResolve_JSONDir(t *testing.T) {
	jsonDir := t.TempDir()
	testutil.WriteScreenshot(t, filepath.Join(jsonDir, "baz.png"), 10, 10)

	r := New(jsonDir, "", nil)
	path, err := r.Resolve("baz")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(jsonDir, "baz.png"), path)
}

func TestResolve_JSONDirImagesSubfolder(t *testing.T) {
	jsonDir := t.TempDir()
	testutil.WriteScreenshot(t, filepath.Join(jsonDir, "images", "qux.jpg"), 10, 10)

	r := New(jsonDir, "", nil)
	path, err := r.Resolve("qux")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(jsonDir, "images", "qux.jpg"), path)
}

func TestResolve_FallbackDir(t *testing.T) {
	fallback := t.TempDir()
	testutil.WriteScreenshot(t, filepath.Join(fallback, "last.png"), 10, 10)

	r := New(t.TempDir(), "", []string{fallback})
	path, err := r.Resolve("last")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fallback, "last.png"), path)
}

func TestResolve_NotFound(t *testing.T) {
	r := New(t.TempDir(), t.TempDir(), nil)
	_, err := r.Resolve("ghost")
	require.ErrorIs(t, err, ErrImageNotFound)
	assert.Contains(t, err.Error(), "ghost")
}

func TestResolve_DirectoryIsNotAMatch(t *testing.T) {
	jsonDir := t.TempDir()
	// A directory named like the candidate must not resolve.
	testutil.WriteScreenshot(t, filepath.Join(jsonDir, "trap.png", "inner.png"), 10, 10)

	r := New(jsonDir, "", nil)
	_, err := r.Resolve("trap")
	require.ErrorIs(t, err, ErrImageNotFound)
}
