// Package thumbnail keeps small page previews for the lifetime of one
// document. Entries are generated lazily at a fixed scale, independent of
// the main viewer's zoom, and the whole cache is invalidated when the
// document is replaced. There is deliberately no per-entry eviction: a
// document's thumbnails are bounded by its page count.
package thumbnail

import (
	"context"
	"fmt"
	"image"
	"math"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/image/draw"
	"golang.org/x/sync/singleflight"

	"github.com/wudi/pdfview/document"
	"github.com/wudi/pdfview/observability"
)

// Defaults for thumbnail generation.
const (
	DefaultScale = 0.2
	DefaultWidth = 150
)

// Entry is one cached page preview.
type Entry struct {
	PageIndex int
	Image     *image.RGBA
	Width     int
	Height    int
}

// Option configures a Cache.
type Option func(*Cache)

// WithScale sets the render scale used for thumbnail rasters.
func WithScale(scale float64) Option {
	return func(c *Cache) {
		if scale > 0 {
			c.scale = scale
		}
	}
}

// WithWidth sets the pixel width thumbnails are downscaled to.
func WithWidth(width int) Option {
	return func(c *Cache) {
		if width > 0 {
			c.width = width
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// Cache is a page-indexed thumbnail store bound to one open document.
// Concurrent Get calls for the same page collapse into a single render.
type Cache struct {
	doc    document.Document
	store  *gocache.Cache
	group  singleflight.Group
	scale  float64
	width  int
	logger observability.Logger
}

// New builds a cache over an open document.
func New(doc document.Document, opts ...Option) *Cache {
	c := &Cache{
		doc:    doc,
		store:  gocache.New(gocache.NoExpiration, 0),
		scale:  DefaultScale,
		width:  DefaultWidth,
		logger: observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached thumbnail for a page, generating it on first use.
// Repeated calls return the identical entry until InvalidateAll.
func (c *Cache) Get(ctx context.Context, pageIndex int) (Entry, error) {
	key := strconv.Itoa(pageIndex)
	if v, ok := c.store.Get(key); ok {
		return v.(Entry), nil
	}
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		if v, ok := c.store.Get(key); ok {
			return v.(Entry), nil
		}
		start := time.Now()
		entry, err := c.generate(ctx, pageIndex)
		if err != nil {
			return Entry{}, err
		}
		c.store.Set(key, entry, gocache.NoExpiration)
		c.logger.Debug("thumbnail generated",
			observability.Int("page", pageIndex),
			observability.Int("width", entry.Width),
			observability.Int("height", entry.Height),
			observability.Float64(observability.MetricThumbnailTime, time.Since(start).Seconds()))
		return entry, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return v.(Entry), nil
}

// Len reports how many thumbnails are cached.
func (c *Cache) Len() int { return c.store.ItemCount() }

// InvalidateAll drops every cached thumbnail. Called once per document
// replacement; there is no finer-grained eviction.
func (c *Cache) InvalidateAll() { c.store.Flush() }

func (c *Cache) generate(ctx context.Context, pageIndex int) (Entry, error) {
	raster, err := c.doc.RenderRaster(ctx, pageIndex, c.scale, c.scale)
	if err != nil {
		return Entry{}, fmt.Errorf("thumbnail page %d: %w", pageIndex, err)
	}
	img, err := raster.Image()
	if err != nil {
		return Entry{}, fmt.Errorf("thumbnail page %d: %w", pageIndex, err)
	}
	img = fitWidth(img, c.width)
	b := img.Bounds()
	return Entry{
		PageIndex: pageIndex,
		Image:     img,
		Width:     b.Dx(),
		Height:    b.Dy(),
	}, nil
}

// fitWidth downscales an image to the target width, preserving aspect
// ratio. Images already narrow enough pass through untouched.
func fitWidth(img *image.RGBA, width int) *image.RGBA {
	b := img.Bounds()
	if b.Dx() <= width {
		return img
	}
	aspect := float64(b.Dy()) / float64(b.Dx())
	height := int(math.Round(float64(width) * aspect))
	if height < 1 {
		height = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
