// Package preview computes where a transient asset-preview popup should be
// anchored. It is pure geometry; rendering the popup is the UI layer's job.
package preview

import "github.com/wudi/pdfview/geom"

// Placement defaults, in screen pixels.
const (
	DefaultMargin     = 15
	DefaultEdgeMargin = 10
	DefaultMaxPreview = 400
)

// Anchor is the screen position and size computed for one popup. It lives
// for a single hover session and is never persisted.
type Anchor struct {
	X, Y          float64
	Width, Height float64
}

// Placer positions popups relative to the pointer. Margin separates the
// popup from the pointer; EdgeMargin keeps it off the screen edges.
type Placer struct {
	Margin     float64
	EdgeMargin float64
}

// NewPlacer returns a placer with the default margins.
func NewPlacer() Placer {
	return Placer{Margin: DefaultMargin, EdgeMargin: DefaultEdgeMargin}
}

// Place anchors a popup of the given size near the pointer within the
// screen bounds. The popup goes immediately left of the pointer, vertically
// centered on it; if that would run off the left edge it flips to the right
// side, and both axes are then clamped inside the screen.
func (pl Placer) Place(pointer geom.Point, popup geom.Size, screen geom.Size) Anchor {
	x := pointer.X - popup.W - pl.Margin
	y := pointer.Y - popup.H/2

	if x < 0 {
		x = pointer.X + pl.Margin
	}
	if x+popup.W > screen.W {
		x = screen.W - popup.W - pl.EdgeMargin
	}
	if y < pl.EdgeMargin {
		y = pl.EdgeMargin
	}
	if y+popup.H > screen.H-pl.EdgeMargin {
		y = screen.H - popup.H - pl.EdgeMargin
	}

	return Anchor{X: x, Y: y, Width: popup.W, Height: popup.H}
}

// FitPreview shrinks an asset's pixel dimensions proportionally so neither
// exceeds max. Dimensions already within bounds are returned unchanged.
func FitPreview(width, height, max int) (int, int) {
	if max <= 0 || (width <= max && height <= max) {
		return width, height
	}
	ratioW := float64(max) / float64(width)
	ratioH := float64(max) / float64(height)
	ratio := ratioW
	if ratioH < ratio {
		ratio = ratioH
	}
	w := int(float64(width) * ratio)
	h := int(float64(height) * ratio)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
