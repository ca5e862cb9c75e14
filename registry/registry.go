// Package registry builds the per-page snapshot of placed assets used for
// hit-testing, listing, and deduplicated export.
package registry

import (
	"fmt"

	"github.com/wudi/pdfview/document"
	"github.com/wudi/pdfview/geom"
)

// DefaultMinAssetSize is the page-space width/height below which a
// placement is discarded as a rendering artifact.
const DefaultMinAssetSize = 1.0

// Placement is one occurrence of an asset on the current page. LocalIndex
// is dense and zero-based in discovery order; it is rebuilt on every page or
// zoom change, so only AssetID is a stable cross-call key.
type Placement struct {
	LocalIndex int
	AssetID    document.AssetID
	PageRect   geom.Rect
	RasterRect geom.Rect
}

// Registry is an immutable snapshot of the placements on one rendered page.
// It is replaced wholesale whenever the page or the zoom changes.
type Registry struct {
	placements []Placement
	mapper     geom.Mapper
}

// Build filters degenerate placements, assigns local indices, and maps every
// rectangle into raster space. minAssetSize <= 0 selects the default
// threshold.
func Build(raw []document.RawPlacement, pageSize, rasterSize geom.Size, minAssetSize float64) (*Registry, error) {
	if minAssetSize <= 0 {
		minAssetSize = DefaultMinAssetSize
	}
	mapper, err := geom.NewMapper(pageSize, rasterSize)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	placements := make([]Placement, 0, len(raw))
	for _, rp := range raw {
		rect := rp.Rect.Canon()
		if rect.Width() < minAssetSize || rect.Height() < minAssetSize {
			continue
		}
		placements = append(placements, Placement{
			LocalIndex: len(placements),
			AssetID:    rp.AssetID,
			PageRect:   rect,
			RasterRect: mapper.ToRaster(rect),
		})
	}
	return &Registry{placements: placements, mapper: mapper}, nil
}

// Len returns the number of placements.
func (r *Registry) Len() int { return len(r.placements) }

// At returns the placement with the given local index.
func (r *Registry) At(i int) (Placement, bool) {
	if i < 0 || i >= len(r.placements) {
		return Placement{}, false
	}
	return r.placements[i], true
}

// List returns the placements in discovery order. The slice is a copy; the
// snapshot itself never changes.
func (r *Registry) List() []Placement {
	out := make([]Placement, len(r.placements))
	copy(out, r.placements)
	return out
}

// HitTest returns the first placement, in discovery order, whose raster
// rectangle contains the point. Overlaps resolve to the first-discovered
// placement.
func (r *Registry) HitTest(p geom.Point) (Placement, bool) {
	for _, pl := range r.placements {
		if pl.RasterRect.Contains(p) {
			return pl, true
		}
	}
	return Placement{}, false
}

// UniqueAssetIDs returns the distinct asset identities on the page, ordered
// by first occurrence.
func (r *Registry) UniqueAssetIDs() []document.AssetID {
	seen := make(map[document.AssetID]bool, len(r.placements))
	var ids []document.AssetID
	for _, pl := range r.placements {
		if seen[pl.AssetID] {
			continue
		}
		seen[pl.AssetID] = true
		ids = append(ids, pl.AssetID)
	}
	return ids
}

// Mapper exposes the page/raster transform the registry was built with, for
// callers that need to map pointer positions back into page space.
func (r *Registry) Mapper() geom.Mapper { return r.mapper }
