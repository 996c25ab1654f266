package optimize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/stepreport/internal/testutil"
	"github.com/MeKo-Tech/stepreport/internal/utils"
)

func TestOptimize_NoOpWithinBounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.png")
	testutil.WriteScreenshot(t, path, 400, 300)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := Default().Optimize(path)
	require.NoError(t, err)
	assert.Equal(t, path, out)

	// No recompression happened.
	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestOptimize_DownsizesOversized(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.png")
	testutil.WriteScreenshot(t, path, 1600, 1200)

	out, err := Default().Optimize(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "opt_big.png"), out)

	w, h, err := utils.ImageDimensions(out)
	require.NoError(t, err)
	assert.LessOrEqual(t, w, 800)
	assert.LessOrEqual(t, h, 800)
	// Aspect ratio preserved: 4:3 input.
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	// The original remains on disk untouched.
	ow, oh, err := utils.ImageDimensions(path)
	require.NoError(t, err)
	assert.Equal(t, 1600, ow)
	assert.Equal(t, 1200, oh)
}

func TestOptimize_ReducedProfile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "big.png")
	testutil.WriteScreenshot(t, path, 1000, 500)

	out, err := Reduced().Optimize(path)
	require.NoError(t, err)

	w, h, err := utils.ImageDimensions(out)
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)
}

func TestOptimize_FailureFallsBackToOriginal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")

	out, err := Default().Optimize(path)
	require.Error(t, err)
	assert.Equal(t, path, out)
}

func TestProfiles(t *testing.T) {
	d := Default()
	assert.Equal(t, 800, d.MaxWidth)
	assert.Equal(t, 85, d.Quality)

	r := Reduced()
	assert.Equal(t, 400, r.MaxWidth)
	assert.Equal(t, 70, r.Quality)
}
