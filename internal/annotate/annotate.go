// Package annotate draws step annotations (target boxes, tap crosshairs,
// swipe arrows) onto screenshot images.
package annotate

import (
	"image"
	"image/color"
	"math"

	"github.com/MeKo-Tech/stepreport/internal/utils"
)

// BoundingBox is a pixel-space rectangle highlighting a UI element.
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Tap is a tap point in normalized (0-1) image coordinates.
type Tap struct {
	X float64
	Y float64
}

// Swipe is a swipe gesture with normalized (0-1) endpoints.
type Swipe struct {
	StartX float64
	StartY float64
	EndX   float64
	EndY   float64
}

// Annotator draws annotations with a fixed style.
type Annotator struct {
	Color         color.Color
	BoxThickness  int
	LineThickness int
	CrossHalfSize int
	ArrowLength   float64
}

// New returns an Annotator with the default style: red marks, 2px box
// outlines, 5px lines, 40px crosshair half-length, 20px arrowheads.
func New() *Annotator {
	return &Annotator{
		Color:         color.RGBA{R: 255, A: 255},
		BoxThickness:  2,
		LineThickness: 5,
		CrossHalfSize: 40,
		ArrowLength:   utils.ArrowLength,
	}
}

// Annotate loads the image at srcPath, draws all boxes, taps and swipes onto
// a copy, and writes the result as PNG to dstPath. The source file is never
// modified. Boxes are drawn first, then taps, then swipes. Shapes falling
// outside the image are clamped to its bounds.
func (a *Annotator) Annotate(srcPath string, boxes []BoundingBox, taps []Tap, swipes []Swipe, dstPath string) (string, error) {
	img, meta, err := utils.LoadImage(srcPath)
	if err != nil {
		return "", err
	}

	dst := utils.CloneRGBA(img)
	w, h := meta.Width, meta.Height

	for _, box := range boxes {
		a.drawBox(dst, box, w, h)
	}
	for _, tap := range taps {
		a.drawTap(dst, tap, w, h)
	}
	for _, swipe := range swipes {
		a.drawSwipe(dst, swipe, w, h)
	}

	if err := utils.SaveImagePNG(dstPath, dst); err != nil {
		return "", err
	}
	return dstPath, nil
}

func (a *Annotator) drawBox(dst *image.RGBA, box BoundingBox, w, h int) {
	x := utils.ClampFloat(box.X, 0, float64(w))
	y := utils.ClampFloat(box.Y, 0, float64(h))
	bw := math.Min(box.Width, float64(w)-x)
	bh := math.Min(box.Height, float64(h)-y)
	if bw <= 0 || bh <= 0 {
		return
	}
	rect := image.Rect(int(math.Round(x)), int(math.Round(y)), int(math.Round(x+bw)), int(math.Round(y+bh)))
	utils.DrawRect(dst, rect, a.Color, a.BoxThickness)
}

func (a *Annotator) drawTap(dst *image.RGBA, tap Tap, w, h int) {
	px, py := utils.ToPixels(w, h, tap.X, tap.Y)
	px = utils.ClampInt(px, 0, w)
	py = utils.ClampInt(py, 0, h)
	s := a.CrossHalfSize
	utils.DrawLine(dst, image.Pt(px-s, py), image.Pt(px+s, py), a.Color, a.LineThickness)
	utils.DrawLine(dst, image.Pt(px, py-s), image.Pt(px, py+s), a.Color, a.LineThickness)
}

func (a *Annotator) drawSwipe(dst *image.RGBA, swipe Swipe, w, h int) {
	x1, y1 := utils.ToPixels(w, h, swipe.StartX, swipe.StartY)
	x2, y2 := utils.ToPixels(w, h, swipe.EndX, swipe.EndY)
	x1 = utils.ClampInt(x1, 0, w)
	y1 = utils.ClampInt(y1, 0, h)
	x2 = utils.ClampInt(x2, 0, w)
	y2 = utils.ClampInt(y2, 0, h)

	utils.DrawLine(dst, image.Pt(x1, y1), image.Pt(x2, y2), a.Color, a.LineThickness)

	p3, p4 := utils.ArrowheadPoints(float64(x1), float64(y1), float64(x2), float64(y2), a.ArrowLength, utils.ArrowHalfAngle)
	tip := utils.Point{X: float64(x2), Y: float64(y2)}
	utils.FillTriangle(dst, tip, p3, p4, a.Color)
}
