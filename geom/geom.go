// Package geom holds the coordinate types shared by the viewer core and the
// page-space / raster-space mapping built on them.
//
// Page space is the coordinate system native to one page, independent of
// zoom. Raster space is the pixel coordinate system of a rendered bitmap at
// a given zoom. The two share orientation; only the scale differs, and the
// X and Y scale factors may legitimately differ when a raster is fitted
// non-uniformly.
package geom

// Point is a location in page space or raster space.
type Point struct {
	X, Y float64
}

// Size is a width/height pair.
type Size struct {
	W, H float64
}

// Positive reports whether both dimensions are strictly positive.
func (s Size) Positive() bool { return s.W > 0 && s.H > 0 }

// Rect is an axis-aligned rectangle. A canonical rect has X0 <= X1 and
// Y0 <= Y1.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

func (r Rect) Width() float64  { return r.X1 - r.X0 }
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{W: r.Width(), H: r.Height()} }

// Canon returns the rectangle with its corners ordered.
func (r Rect) Canon() Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}

// Contains reports whether p lies within the rectangle, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}
