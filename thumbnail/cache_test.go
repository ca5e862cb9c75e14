package thumbnail

import (
	"context"
	"errors"
	"testing"

	"github.com/wudi/pdfview/document"
	"github.com/wudi/pdfview/geom"
)

func twoPageDoc() *document.MemoryDocument {
	return document.NewMemoryDocument([]document.MemoryPage{
		{Size: geom.Size{W: 612, H: 792}},
		{Size: geom.Size{W: 1000, H: 500}},
	})
}

func TestGetCachesEntry(t *testing.T) {
	doc := twoPageDoc()
	c := New(doc)

	first, err := c.Get(context.Background(), 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	second, err := c.Get(context.Background(), 0)
	if err != nil {
		t.Fatalf("get again: %v", err)
	}
	if first.Image != second.Image {
		t.Fatalf("second get should return the identical cached entry")
	}
	if doc.RenderCount() != 1 {
		t.Fatalf("want exactly one render, got %d", doc.RenderCount())
	}
	if c.Len() != 1 {
		t.Fatalf("cache size = %d", c.Len())
	}
}

func TestInvalidateAllForcesRegeneration(t *testing.T) {
	doc := twoPageDoc()
	c := New(doc)

	if _, err := c.Get(context.Background(), 0); err != nil {
		t.Fatalf("get: %v", err)
	}
	c.InvalidateAll()
	if c.Len() != 0 {
		t.Fatalf("cache should be empty after invalidation, has %d", c.Len())
	}
	if _, err := c.Get(context.Background(), 0); err != nil {
		t.Fatalf("get after invalidation: %v", err)
	}
	if doc.RenderCount() != 2 {
		t.Fatalf("want a second render after invalidation, got %d", doc.RenderCount())
	}
}

func TestDownscaleToWidth(t *testing.T) {
	// Page 1 is 1000x500; at scale 0.2 the raster is 200x100, wider than
	// the default 150, so it gets downscaled to 150x75.
	doc := twoPageDoc()
	c := New(doc)
	entry, err := c.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Width != 150 || entry.Height != 75 {
		t.Fatalf("thumbnail = %dx%d, want 150x75", entry.Width, entry.Height)
	}

	// Page 0 renders at 122x158 and stays below the width cap.
	entry, err = c.Get(context.Background(), 0)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Width != 122 || entry.Height != 158 {
		t.Fatalf("thumbnail = %dx%d, want 122x158", entry.Width, entry.Height)
	}
}

func TestRenderFailureNotCached(t *testing.T) {
	doc := document.NewMemoryDocument([]document.MemoryPage{
		{Size: geom.Size{W: 612, H: 792}, RenderErr: errors.New("bad content stream")},
	})
	c := New(doc)

	var renderErr *document.RenderError
	if _, err := c.Get(context.Background(), 0); !errors.As(err, &renderErr) {
		t.Fatalf("want wrapped RenderError, got %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("failed render should not be cached")
	}

	if _, err := c.Get(context.Background(), 5); err == nil {
		t.Fatalf("out-of-range page should fail")
	}
}

func TestOptions(t *testing.T) {
	doc := twoPageDoc()
	c := New(doc, WithScale(0.5), WithWidth(80))
	entry, err := c.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	// 1000x500 at 0.5 is 500x250, capped to width 80 -> 80x40.
	if entry.Width != 80 || entry.Height != 40 {
		t.Fatalf("thumbnail = %dx%d, want 80x40", entry.Width, entry.Height)
	}
}
