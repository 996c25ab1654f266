package utils

import (
	"math"
)

// Point represents a 2D coordinate in float space.
type Point struct {
	X float64
	Y float64
}

// Default arrowhead dimensions for swipe annotations.
const (
	ArrowLength    = 20.0
	ArrowHalfAngle = math.Pi / 6 // 30 degrees
)

// ToPixels converts normalized (0-1) coordinates into pixel coordinates for
// an image of the given dimensions. Results are rounded, not clamped;
// clamping is the caller's responsibility.
func ToPixels(width, height int, fracX, fracY float64) (int, int) {
	return int(math.Round(fracX * float64(width))), int(math.Round(fracY * float64(height)))
}

// ClampInt restricts v to the range [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat restricts v to the range [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ArrowheadPoints computes the two base points of an arrowhead for a line
// from (x1,y1) to (x2,y2). The triangle {(x2,y2), p3, p4} forms the head.
func ArrowheadPoints(x1, y1, x2, y2, length, halfAngle float64) (Point, Point) {
	angle := math.Atan2(y2-y1, x2-x1)
	p3 := Point{
		X: x2 - length*math.Cos(angle-halfAngle),
		Y: y2 - length*math.Sin(angle-halfAngle),
	}
	p4 := Point{
		X: x2 - length*math.Cos(angle+halfAngle),
		Y: y2 - length*math.Sin(angle+halfAngle),
	}
	return p3, p4
}
