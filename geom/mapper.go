package geom

import "fmt"

// Mapper converts between page space and raster space for one rendered page.
// It is a value type; build a new one whenever the page or the raster size
// changes.
type Mapper struct {
	forward Matrix // page -> raster
	inverse Matrix // raster -> page
}

// NewMapper builds the transform pair for a page of the given native size
// rendered into a raster of the given pixel size. Both sizes must be
// strictly positive.
func NewMapper(page, raster Size) (Mapper, error) {
	if !page.Positive() {
		return Mapper{}, fmt.Errorf("page size %gx%g is degenerate", page.W, page.H)
	}
	if !raster.Positive() {
		return Mapper{}, fmt.Errorf("raster size %gx%g is degenerate", raster.W, raster.H)
	}
	forward := Scale(raster.W/page.W, raster.H/page.H)
	inverse, err := forward.Inverse()
	if err != nil {
		return Mapper{}, fmt.Errorf("invert page transform: %w", err)
	}
	return Mapper{forward: forward, inverse: inverse}, nil
}

// ToRaster maps a page-space rectangle into raster space.
func (m Mapper) ToRaster(r Rect) Rect {
	p0 := m.forward.Transform(Point{X: r.X0, Y: r.Y0})
	p1 := m.forward.Transform(Point{X: r.X1, Y: r.Y1})
	return Rect{X0: p0.X, Y0: p0.Y, X1: p1.X, Y1: p1.Y}
}

// ToRasterPoint maps a page-space point into raster space.
func (m Mapper) ToRasterPoint(p Point) Point { return m.forward.Transform(p) }

// ToPage maps a raster-space point (a pointer position, typically) back into
// page space.
func (m Mapper) ToPage(p Point) Point { return m.inverse.Transform(p) }
