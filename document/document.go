// Package document defines the surface the viewer core consumes from a
// document-parsing collaborator. Turning a file's internal object tables
// into pixels and raw asset bytes happens behind these interfaces; the core
// only works with page sizes, rendered rasters, and asset placements.
package document

import (
	"context"

	"github.com/wudi/pdfview/geom"
)

// AssetID identifies the underlying content of an embedded raster asset.
// All placements of the same visual asset share one AssetID, the way every
// occurrence of an image XObject shares one cross-reference number.
type AssetID int

// RawPlacement is one occurrence of an asset on a page, as reported by the
// document service. The rectangle is in page space.
type RawPlacement struct {
	AssetID AssetID
	Rect    geom.Rect
}

// Service opens documents.
type Service interface {
	Open(ctx context.Context, path string) (Document, error)
}

// Document is an open document handle. Implementations are driven from a
// single control thread; they do not need to be safe for concurrent use
// unless they are shared across goroutines by the caller.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the native page-space size of one page.
	PageSize(pageIndex int) (geom.Size, error)

	// RenderRaster renders a page into an RGBA raster at the given scale
	// factors. Failures are reported as *RenderError.
	RenderRaster(ctx context.Context, pageIndex int, scaleX, scaleY float64) (Raster, error)

	// ListPlacements returns every asset occurrence on a page in discovery
	// order, degenerate rectangles included.
	ListPlacements(pageIndex int) ([]RawPlacement, error)

	// ExtractAssetBytes returns the raw encoded bytes of one asset.
	// Failures are reported as *ExtractError.
	ExtractAssetBytes(id AssetID) ([]byte, error)

	// Outline returns the document's bookmark tree, possibly empty.
	Outline() []Bookmark

	// Close releases the document.
	Close() error
}
