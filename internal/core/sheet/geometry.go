package sheet

import "github.com/google/uuid"

// Region is an axis-aligned rectangle in surface coordinates (y grows downwards).
type Region struct {
	X, Y          float64
	Width, Height float64
}

// Contains reports whether the point lies inside the region. The right and
// bottom edges are exclusive.
func (r Region) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Empty reports whether the region has no area.
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Surface is a handle on the presenting surface the sheet is shown over.
type Surface struct {
	ID     string
	Width  float64
	Height float64
}

// NewSurface returns a surface handle with a fresh ID.
func NewSurface(width, height float64) Surface {
	return Surface{
		ID:     uuid.NewString(),
		Width:  width,
		Height: height,
	}
}

// IsZero reports whether the handle refers to no surface at all.
func (s Surface) IsZero() bool {
	return s.ID == "" || s.Width <= 0 || s.Height <= 0
}

// BottomRegion returns the region of the given height anchored at the
// bottom edge of the surface.
func (s Surface) BottomRegion(height float64) Region {
	return Region{
		X:      0,
		Y:      s.Height - height,
		Width:  s.Width,
		Height: height,
	}
}
