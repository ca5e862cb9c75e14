package document

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/wudi/pdfview/geom"
)

// MemoryAsset is one asset definition for a MemoryPage. Data holds the
// encoded bytes returned by ExtractAssetBytes; Rects lists the page-space
// placements of the asset on its page.
type MemoryAsset struct {
	ID    AssetID
	Data  []byte
	Rects []geom.Rect
}

// MemoryPage describes one page of a MemoryDocument. RenderErr, when set,
// makes every render of the page fail — tests use it to exercise the
// render-failure paths.
type MemoryPage struct {
	Size      geom.Size
	Assets    []MemoryAsset
	RenderErr error
}

// MemoryDocument is a deterministic in-memory Document used by the tests
// and the CLI harness. Rendered rasters are plain white pages at the
// requested scale.
type MemoryDocument struct {
	pages      []MemoryPage
	outline    []Bookmark
	extractErr map[AssetID]error
	renderHook func(pageIndex int)
	renders    int
	closed     bool
}

// NewMemoryDocument builds a document from page descriptions.
func NewMemoryDocument(pages []MemoryPage) *MemoryDocument {
	return &MemoryDocument{
		pages:      pages,
		extractErr: make(map[AssetID]error),
	}
}

// SetOutline installs a bookmark tree.
func (d *MemoryDocument) SetOutline(outline []Bookmark) { d.outline = outline }

// FailExtract makes ExtractAssetBytes fail for one asset.
func (d *MemoryDocument) FailExtract(id AssetID, err error) { d.extractErr[id] = err }

// SetRenderHook installs a callback that runs while a render is in flight.
// Tests use it to interleave requests with an ongoing render.
func (d *MemoryDocument) SetRenderHook(fn func(pageIndex int)) { d.renderHook = fn }

// RenderCount reports how many successful renders the document performed.
func (d *MemoryDocument) RenderCount() int { return d.renders }

// Closed reports whether Close has been called.
func (d *MemoryDocument) Closed() bool { return d.closed }

func (d *MemoryDocument) PageCount() int { return len(d.pages) }

func (d *MemoryDocument) PageSize(pageIndex int) (geom.Size, error) {
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return geom.Size{}, fmt.Errorf("page %d out of range [0,%d)", pageIndex, len(d.pages))
	}
	return d.pages[pageIndex].Size, nil
}

func (d *MemoryDocument) RenderRaster(ctx context.Context, pageIndex int, scaleX, scaleY float64) (Raster, error) {
	if err := ctx.Err(); err != nil {
		return Raster{}, &RenderError{Page: pageIndex, Err: err}
	}
	if d.closed {
		return Raster{}, &RenderError{Page: pageIndex, Err: errors.New("document closed")}
	}
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return Raster{}, &RenderError{Page: pageIndex, Err: errors.New("page out of range")}
	}
	page := d.pages[pageIndex]
	if page.RenderErr != nil {
		return Raster{}, &RenderError{Page: pageIndex, Err: page.RenderErr}
	}
	if d.renderHook != nil {
		d.renderHook(pageIndex)
	}
	w := int(math.Round(page.Size.W * scaleX))
	h := int(math.Round(page.Size.H * scaleY))
	if w <= 0 || h <= 0 {
		return Raster{}, &RenderError{Page: pageIndex, Err: fmt.Errorf("scale %gx%g yields empty raster", scaleX, scaleY)}
	}
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = 0xff
	}
	d.renders++
	return Raster{Pix: pix, Width: w, Height: h}, nil
}

func (d *MemoryDocument) ListPlacements(pageIndex int) ([]RawPlacement, error) {
	if pageIndex < 0 || pageIndex >= len(d.pages) {
		return nil, fmt.Errorf("page %d out of range [0,%d)", pageIndex, len(d.pages))
	}
	var placements []RawPlacement
	for _, asset := range d.pages[pageIndex].Assets {
		for _, rect := range asset.Rects {
			placements = append(placements, RawPlacement{AssetID: asset.ID, Rect: rect})
		}
	}
	return placements, nil
}

func (d *MemoryDocument) ExtractAssetBytes(id AssetID) ([]byte, error) {
	if d.closed {
		return nil, &ExtractError{Asset: id, Err: errors.New("document closed")}
	}
	if err, ok := d.extractErr[id]; ok {
		return nil, &ExtractError{Asset: id, Err: err}
	}
	for _, page := range d.pages {
		for _, asset := range page.Assets {
			if asset.ID == id {
				out := make([]byte, len(asset.Data))
				copy(out, asset.Data)
				return out, nil
			}
		}
	}
	return nil, &ExtractError{Asset: id, Err: errors.New("unknown asset")}
}

func (d *MemoryDocument) Outline() []Bookmark { return d.outline }

func (d *MemoryDocument) Close() error {
	d.closed = true
	return nil
}

// MemoryService resolves paths to prebuilt MemoryDocuments.
type MemoryService struct {
	docs map[string]*MemoryDocument
}

// NewMemoryService builds a service over a path-to-document table.
func NewMemoryService(docs map[string]*MemoryDocument) *MemoryService {
	return &MemoryService{docs: docs}
}

func (s *MemoryService) Open(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	doc, ok := s.docs[path]
	if !ok {
		return nil, &OpenError{Path: path, Err: errors.New("no such document")}
	}
	if doc.closed {
		// A memory document cannot be reopened once closed.
		return nil, &OpenError{Path: path, Err: errors.New("document closed")}
	}
	return doc, nil
}
