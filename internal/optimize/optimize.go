// Package optimize downsizes oversized screenshots before annotation to
// bound memory usage and processing time.
package optimize

import (
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/stepreport/internal/utils"
)

// Optimizer holds the resize bounds and re-encode quality.
type Optimizer struct {
	MaxWidth  int
	MaxHeight int
	Quality   int
}

// Default returns the standard optimizer profile.
func Default() *Optimizer {
	return &Optimizer{MaxWidth: 800, MaxHeight: 800, Quality: 85}
}

// Reduced returns the low-resource profile for constrained deployments.
func Reduced() *Optimizer {
	return &Optimizer{MaxWidth: 400, MaxHeight: 400, Quality: 70}
}

// Optimize downsizes the image at path if it exceeds the configured bounds,
// writing the result to a sibling "opt_" file and returning its path. Images
// already within bounds are returned unchanged without re-encoding. On any
// failure the original path is returned together with the error, so callers
// can log and proceed with the unoptimized image.
func (o *Optimizer) Optimize(path string) (string, error) {
	w, h, err := utils.ImageDimensions(path)
	if err != nil {
		return path, err
	}
	if w <= o.MaxWidth && h <= o.MaxHeight {
		return path, nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return path, &utils.ImageProcessingError{Operation: "optimize", Err: err}
	}

	resized := imaging.Fit(img, o.MaxWidth, o.MaxHeight, imaging.Lanczos)

	dir := filepath.Dir(path)
	name := filepath.Base(path)
	optimized := filepath.Join(dir, "opt_"+name)
	if err := imaging.Save(resized, optimized, imaging.JPEGQuality(o.Quality)); err != nil {
		return path, &utils.ImageProcessingError{Operation: "optimize", Err: err}
	}
	return optimized, nil
}
