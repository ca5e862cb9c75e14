// Package session coordinates one document viewing session: the current
// page and zoom, the placement registry rebuilt on every transition, the
// thumbnail cache, hover previews, and asset export. A session is driven
// from a single control thread; its mutex only covers state reads and
// writes, never a render call.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wudi/pdfview/config"
	"github.com/wudi/pdfview/document"
	"github.com/wudi/pdfview/export"
	"github.com/wudi/pdfview/geom"
	"github.com/wudi/pdfview/observability"
	"github.com/wudi/pdfview/preview"
	"github.com/wudi/pdfview/registry"
	"github.com/wudi/pdfview/thumbnail"
)

// State is the session's lifecycle phase.
type State int

const (
	NoDocument State = iota
	DocumentLoaded
)

// InvalidRequestError reports a request the session rejected without
// changing state, such as navigation to a page that does not exist.
type InvalidRequestError struct {
	Op  string
	Msg string
}

func (e *InvalidRequestError) Error() string { return fmt.Sprintf("%s: %s", e.Op, e.Msg) }

// Geometry describes the currently displayed page: its native size, the
// zoom factor, and the pixel size of the rendered raster. It is recomputed
// on every page or zoom change and never persisted.
type Geometry struct {
	PageIndex  int
	PageSize   geom.Size
	Zoom       float64
	RasterSize geom.Size
}

// Option configures a Session.
type Option func(*Session)

// WithConfig overrides the default configuration.
func WithConfig(cfg config.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session owns the current document and the per-page state derived from it.
type Session struct {
	svc    document.Service
	cfg    config.Config
	logger observability.Logger
	placer preview.Placer
	gate   renderGate

	mu          sync.Mutex
	doc         document.Document
	path        string
	pageIndex   int
	zoom        float64
	geometry    Geometry
	reg         *registry.Registry
	raster      document.Raster
	thumbs      *thumbnail.Cache
	hoverIndex  int
	hoverAnchor preview.Anchor
}

// New builds a session over a document service. No document is loaded yet.
func New(svc document.Service, opts ...Option) *Session {
	s := &Session{
		svc:        svc,
		cfg:        config.Default(),
		logger:     observability.NopLogger{},
		hoverIndex: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.placer = preview.Placer{Margin: s.cfg.PopupMargin, EdgeMargin: s.cfg.PopupEdgeMargin}
	return s
}

// view bundles the state produced by one render, applied atomically.
type view struct {
	geometry Geometry
	reg      *registry.Registry
	raster   document.Raster
}

func (s *Session) render(ctx context.Context, doc document.Document, pageIndex int, zoom float64) (view, error) {
	start := time.Now()
	pageSize, err := doc.PageSize(pageIndex)
	if err != nil {
		return view{}, &document.RenderError{Page: pageIndex, Err: err}
	}
	scale := zoom * s.cfg.BaseScale
	raster, err := doc.RenderRaster(ctx, pageIndex, scale, scale)
	if err != nil {
		return view{}, err
	}
	raw, err := doc.ListPlacements(pageIndex)
	if err != nil {
		return view{}, &document.RenderError{Page: pageIndex, Err: err}
	}
	rasterSize := geom.Size{W: float64(raster.Width), H: float64(raster.Height)}
	reg, err := registry.Build(raw, pageSize, rasterSize, s.cfg.MinAssetSize)
	if err != nil {
		return view{}, &document.RenderError{Page: pageIndex, Err: err}
	}
	s.logger.Debug("page displayed",
		observability.Int("page", pageIndex),
		observability.Float64("zoom", zoom),
		observability.Int(observability.MetricRegistrySize, reg.Len()),
		observability.Float64(observability.MetricRenderTime, time.Since(start).Seconds()))
	return view{
		geometry: Geometry{
			PageIndex:  pageIndex,
			PageSize:   pageSize,
			Zoom:       zoom,
			RasterSize: rasterSize,
		},
		reg:    reg,
		raster: raster,
	}, nil
}

// Open loads a document and displays its first page at the default zoom.
// On failure the session keeps whatever it was showing before. Replacing a
// document clears the previous thumbnail cache and closes the old handle.
func (s *Session) Open(ctx context.Context, path string) error {
	doc, err := s.svc.Open(ctx, path)
	if err != nil {
		s.logger.Error("open failed", observability.String("path", path), observability.Error("err", err))
		return err
	}

	gen := s.gate.begin()
	v, err := s.render(ctx, doc, 0, s.cfg.DefaultZoom)
	if err != nil {
		doc.Close()
		s.logger.Error("initial render failed", observability.String("path", path), observability.Error("err", err))
		return err
	}

	s.mu.Lock()
	if !s.gate.current(gen) {
		s.mu.Unlock()
		doc.Close()
		return nil
	}
	oldDoc := s.doc
	oldThumbs := s.thumbs
	s.doc = doc
	s.path = path
	s.pageIndex = 0
	s.zoom = s.cfg.DefaultZoom
	s.thumbs = thumbnail.New(doc,
		thumbnail.WithScale(s.cfg.ThumbnailScale),
		thumbnail.WithWidth(s.cfg.ThumbnailWidth),
		thumbnail.WithLogger(s.logger))
	s.apply(v)
	s.mu.Unlock()

	if oldThumbs != nil {
		oldThumbs.InvalidateAll()
	}
	if oldDoc != nil {
		oldDoc.Close()
	}
	s.logger.Info("document opened",
		observability.String("path", path),
		observability.Int("pages", doc.PageCount()))
	return nil
}

// apply installs a rendered view; the caller holds the mutex.
func (s *Session) apply(v view) {
	s.geometry = v.geometry
	s.reg = v.reg
	s.raster = v.raster
	s.hoverIndex = -1
	s.hoverAnchor = preview.Anchor{}
}

// Close releases the document and returns the session to NoDocument.
func (s *Session) Close() error {
	s.gate.begin() // invalidate any in-flight render
	s.mu.Lock()
	doc := s.doc
	thumbs := s.thumbs
	s.doc = nil
	s.path = ""
	s.reg = nil
	s.thumbs = nil
	s.geometry = Geometry{}
	s.raster = document.Raster{}
	s.hoverIndex = -1
	s.mu.Unlock()

	if thumbs != nil {
		thumbs.InvalidateAll()
	}
	if doc == nil {
		return nil
	}
	return doc.Close()
}

// display renders (pageIndex, zoom) and commits the result unless a newer
// request superseded it in the meantime.
func (s *Session) display(ctx context.Context, doc document.Document, pageIndex int, zoom float64) error {
	gen := s.gate.begin()
	v, err := s.render(ctx, doc, pageIndex, zoom)
	if err != nil {
		s.logger.Warn("page render failed",
			observability.Int("page", pageIndex),
			observability.Error("err", err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.gate.current(gen) || s.doc != doc {
		// Superseded; drop the result.
		return nil
	}
	s.pageIndex = pageIndex
	s.zoom = zoom
	s.apply(v)
	return nil
}

func (s *Session) snapshot() (document.Document, int, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc, s.pageIndex, s.zoom
}

// SetPage navigates to page n. Out-of-range requests are rejected with an
// InvalidRequestError and the session stays on the current page.
func (s *Session) SetPage(ctx context.Context, n int) error {
	doc, _, zoom := s.snapshot()
	if doc == nil {
		return &InvalidRequestError{Op: "set page", Msg: "no document loaded"}
	}
	if n < 0 || n >= doc.PageCount() {
		return &InvalidRequestError{Op: "set page", Msg: fmt.Sprintf("page %d outside [0, %d)", n, doc.PageCount())}
	}
	return s.display(ctx, doc, n, zoom)
}

// NextPage advances one page; at the last page it does nothing.
func (s *Session) NextPage(ctx context.Context) error {
	doc, page, zoom := s.snapshot()
	if doc == nil || page >= doc.PageCount()-1 {
		return nil
	}
	return s.display(ctx, doc, page+1, zoom)
}

// PrevPage goes back one page; at the first page it does nothing.
func (s *Session) PrevPage(ctx context.Context) error {
	doc, page, zoom := s.snapshot()
	if doc == nil || page <= 0 {
		return nil
	}
	return s.display(ctx, doc, page-1, zoom)
}

// SetZoom changes the zoom factor, silently clamped to the configured
// range, and rebuilds the registry at the new raster size.
func (s *Session) SetZoom(ctx context.Context, z float64) error {
	doc, page, _ := s.snapshot()
	if doc == nil {
		return &InvalidRequestError{Op: "set zoom", Msg: "no document loaded"}
	}
	return s.display(ctx, doc, page, s.cfg.ClampZoom(z))
}

// ZoomIn steps the zoom up by the configured factor.
func (s *Session) ZoomIn(ctx context.Context) error {
	_, _, zoom := s.snapshot()
	return s.SetZoom(ctx, zoom*s.cfg.ZoomInFactor)
}

// ZoomOut steps the zoom down by the configured factor.
func (s *Session) ZoomOut(ctx context.Context) error {
	_, _, zoom := s.snapshot()
	return s.SetZoom(ctx, zoom*s.cfg.ZoomOutFactor)
}

// ZoomToFit picks the largest zoom, capped at 100%, at which the whole page
// fits inside the given viewport.
func (s *Session) ZoomToFit(ctx context.Context, viewport geom.Size) error {
	doc, page, _ := s.snapshot()
	if doc == nil {
		return &InvalidRequestError{Op: "zoom to fit", Msg: "no document loaded"}
	}
	if !viewport.Positive() {
		return &InvalidRequestError{Op: "zoom to fit", Msg: "viewport is empty"}
	}
	pageSize, err := doc.PageSize(page)
	if err != nil {
		return &document.RenderError{Page: page, Err: err}
	}
	fitX := viewport.W / (pageSize.W * s.cfg.BaseScale)
	fitY := viewport.H / (pageSize.H * s.cfg.BaseScale)
	zoom := fitX
	if fitY < zoom {
		zoom = fitY
	}
	if zoom > 1.0 {
		zoom = 1.0
	}
	return s.display(ctx, doc, page, s.cfg.ClampZoom(zoom))
}

// State reports whether a document is loaded.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return NoDocument
	}
	return DocumentLoaded
}

// PageCount returns the number of pages in the loaded document, or 0.
func (s *Session) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return 0
	}
	return s.doc.PageCount()
}

// PageLabel formats the current position as "N / M" for a toolbar or
// status line, or "" when no document is loaded.
func (s *Session) PageLabel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return ""
	}
	return fmt.Sprintf("%d / %d", s.pageIndex+1, s.doc.PageCount())
}

// PreviewSize fits an asset's pixel dimensions inside the configured
// preview bound, preserving aspect ratio.
func (s *Session) PreviewSize(w, h int) (int, int) {
	return preview.FitPreview(w, h, s.cfg.PreviewMaxSize)
}

// Geometry returns the current page geometry. ok is false in NoDocument.
func (s *Session) Geometry() (Geometry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return Geometry{}, false
	}
	return s.geometry, true
}

// Placements lists the current page's registry snapshot in discovery order.
func (s *Session) Placements() []registry.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reg == nil {
		return nil
	}
	return s.reg.List()
}

// HitTest resolves a raster-space point against the current registry.
func (s *Session) HitTest(p geom.Point) (registry.Placement, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reg == nil {
		return registry.Placement{}, false
	}
	return s.reg.HitTest(p)
}

// Raster returns the raster of the currently displayed page.
func (s *Session) Raster() (document.Raster, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return document.Raster{}, false
	}
	return s.raster, true
}

// Hover starts or continues a preview for the placement at the given local
// index and returns the popup anchor. Re-hovering the same index returns
// the anchor computed when the hover began. An index with no placement
// reports ok=false.
func (s *Session) Hover(index int, pointer geom.Point, popup geom.Size, screen geom.Size) (preview.Anchor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reg == nil {
		return preview.Anchor{}, false
	}
	if _, ok := s.reg.At(index); !ok {
		return preview.Anchor{}, false
	}
	if index == s.hoverIndex {
		return s.hoverAnchor, true
	}
	anchor := s.placer.Place(pointer, popup, screen)
	s.hoverIndex = index
	s.hoverAnchor = anchor
	return anchor, true
}

// Leave ends the current hover session.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hoverIndex = -1
	s.hoverAnchor = preview.Anchor{}
}

// Thumbnail returns the cached preview for a page, generating it lazily.
func (s *Session) Thumbnail(ctx context.Context, pageIndex int) (thumbnail.Entry, error) {
	s.mu.Lock()
	thumbs := s.thumbs
	s.mu.Unlock()
	if thumbs == nil {
		return thumbnail.Entry{}, &InvalidRequestError{Op: "thumbnail", Msg: "no document loaded"}
	}
	return thumbs.Get(ctx, pageIndex)
}

// Outline returns the document's bookmark tree, possibly empty.
func (s *Session) Outline() []document.Bookmark {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()
	if doc == nil {
		return nil
	}
	return doc.Outline()
}

// TableOfContents flattens the outline; documents without one get a
// synthetic per-page listing so the navigation pane is never empty.
func (s *Session) TableOfContents() []document.TOCEntry {
	s.mu.Lock()
	doc := s.doc
	s.mu.Unlock()
	if doc == nil {
		return nil
	}
	if toc := document.FlattenOutline(doc.Outline()); len(toc) > 0 {
		return toc
	}
	entries := make([]document.TOCEntry, doc.PageCount())
	for i := range entries {
		entries[i] = document.TOCEntry{Title: fmt.Sprintf("Page %d", i+1), Page: i}
	}
	return entries
}

// ExportAsset returns the raw bytes of the placement at the given local
// index on the current page.
func (s *Session) ExportAsset(ctx context.Context, localIndex int) ([]byte, error) {
	s.mu.Lock()
	doc := s.doc
	reg := s.reg
	s.mu.Unlock()
	if doc == nil || reg == nil {
		return nil, &InvalidRequestError{Op: "export asset", Msg: "no document loaded"}
	}
	pl, ok := reg.At(localIndex)
	if !ok {
		return nil, &InvalidRequestError{Op: "export asset", Msg: fmt.Sprintf("no placement at index %d", localIndex)}
	}
	return export.New(doc, export.WithLogger(s.logger)).ExportOne(ctx, pl.AssetID)
}

// ExportAll writes every distinct asset on the current page into dir and
// returns the batch summary.
func (s *Session) ExportAll(ctx context.Context, dir string) (export.Result, error) {
	s.mu.Lock()
	doc := s.doc
	reg := s.reg
	page := s.pageIndex
	s.mu.Unlock()
	if doc == nil || reg == nil {
		return export.Result{}, &InvalidRequestError{Op: "export all", Msg: "no document loaded"}
	}
	return export.New(doc, export.WithLogger(s.logger)).ExportAll(ctx, page, reg.List(), dir)
}
