package geom

import (
	"math"
	"testing"
)

func TestRectCanonContains(t *testing.T) {
	r := Rect{X0: 10, Y0: 20, X1: 4, Y1: 2}.Canon()
	if r.X0 != 4 || r.Y0 != 2 || r.X1 != 10 || r.Y1 != 20 {
		t.Fatalf("canon failed: %+v", r)
	}
	if !r.Contains(Point{X: 4, Y: 2}) || !r.Contains(Point{X: 10, Y: 20}) {
		t.Fatalf("edges should be inside")
	}
	if r.Contains(Point{X: 3.9, Y: 5}) {
		t.Fatalf("point left of rect should be outside")
	}
	if r.Width() != 6 || r.Height() != 18 {
		t.Fatalf("unexpected dimensions: %gx%g", r.Width(), r.Height())
	}
}

func TestMatrixInverse(t *testing.T) {
	m := Scale(2, 4).Multiply(Translate(10, -5))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("inverse: %v", err)
	}
	p := Point{X: 3, Y: 7}
	back := inv.Transform(m.Transform(p))
	if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
		t.Fatalf("round trip moved point: %+v", back)
	}

	if _, err := Scale(0, 1).Inverse(); err == nil {
		t.Fatalf("singular matrix should not invert")
	}
}

func TestMapperRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		page   Size
		raster Size
	}{
		{"uniform", Size{W: 612, H: 792}, Size{W: 1224, H: 1584}},
		{"non-uniform", Size{W: 612, H: 792}, Size{W: 1000, H: 2000}},
		{"downscale", Size{W: 612, H: 792}, Size{W: 153, H: 198}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := NewMapper(tc.page, tc.raster)
			if err != nil {
				t.Fatalf("new mapper: %v", err)
			}
			rect := Rect{X0: 72, Y0: 100, X1: 300, Y1: 420}
			out := m.ToRaster(rect)
			wantW := rect.Width() * tc.raster.W / tc.page.W
			if math.Abs(out.Width()-wantW) > 1e-9 {
				t.Fatalf("raster width = %g, want %g", out.Width(), wantW)
			}
			for _, p := range []Point{{X: rect.X0, Y: rect.Y0}, {X: rect.X1, Y: rect.Y1}, {X: 123.456, Y: 654.321}} {
				back := m.ToPage(m.ToRasterPoint(p))
				if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
					t.Fatalf("round trip for %+v gave %+v", p, back)
				}
			}
		})
	}
}

func TestMapperDegenerate(t *testing.T) {
	if _, err := NewMapper(Size{W: 0, H: 792}, Size{W: 100, H: 100}); err == nil {
		t.Fatalf("zero page width should fail")
	}
	if _, err := NewMapper(Size{W: 612, H: 792}, Size{W: 100, H: -1}); err == nil {
		t.Fatalf("negative raster height should fail")
	}
}
