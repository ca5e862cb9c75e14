package document

import (
	"fmt"
	"image"
)

// Raster is a rendered page bitmap. Pix holds 8-bit RGBA samples, 4 bytes
// per pixel, row-major.
type Raster struct {
	Pix    []byte
	Width  int
	Height int
}

// Size reports the pixel dimensions.
func (r Raster) Size() (int, int) { return r.Width, r.Height }

// Image wraps the raster as a standard library image without copying the
// pixel data.
func (r Raster) Image() (*image.RGBA, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("invalid raster dimensions %dx%d", r.Width, r.Height)
	}
	if want := r.Width * r.Height * 4; len(r.Pix) != want {
		return nil, fmt.Errorf("raster data length %d, want %d for %dx%d RGBA", len(r.Pix), want, r.Width, r.Height)
	}
	return &image.RGBA{
		Pix:    r.Pix,
		Stride: r.Width * 4,
		Rect:   image.Rect(0, 0, r.Width, r.Height),
	}, nil
}
