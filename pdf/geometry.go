package pdf

import (
	"fmt"
	"math"
)

// Size is a width/height pair in PDF points
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// usable reports whether both dimensions are positive finite numbers
func (s Size) usable() bool {
	return isPositive(s.Width) && isPositive(s.Height)
}

func isPositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Rect is a placement rectangle on a canvas. X and Y are offsets from the
// canvas edges.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Within reports whether r lies inside a canvas of the given size, allowing
// for floating point rounding.
func (r Rect) Within(canvas Size) bool {
	const eps = 1e-9
	return r.X >= -eps && r.Y >= -eps &&
		r.X+r.Width <= canvas.Width+eps &&
		r.Y+r.Height <= canvas.Height+eps
}

// FitPage scales page uniformly by the largest factor that keeps it inside
// canvas and centers it on both axes.
func FitPage(page, canvas Size) (Rect, error) {
	if !page.usable() {
		return Rect{}, &GeometryError{Width: page.Width, Height: page.Height}
	}
	if !canvas.usable() {
		return Rect{}, fmt.Errorf("canvas %s is not a usable size", canvas)
	}

	scale := math.Min(canvas.Width/page.Width, canvas.Height/page.Height)
	w := page.Width * scale
	h := page.Height * scale

	return Rect{
		X:      (canvas.Width - w) / 2,
		Y:      (canvas.Height - h) / 2,
		Width:  w,
		Height: h,
	}, nil
}
