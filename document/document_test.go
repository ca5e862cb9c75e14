package document

import (
	"context"
	"errors"
	"testing"

	"github.com/wudi/pdfview/geom"
)

func buildFixtureDoc(t *testing.T) *MemoryDocument {
	t.Helper()
	return NewMemoryDocument([]MemoryPage{
		{
			Size: geom.Size{W: 612, H: 792},
			Assets: []MemoryAsset{
				{ID: 7, Data: []byte("logo"), Rects: []geom.Rect{{X0: 10, Y0: 10, X1: 110, Y1: 60}}},
			},
		},
		{
			Size: geom.Size{W: 612, H: 792},
			Assets: []MemoryAsset{
				{ID: 7, Data: []byte("logo"), Rects: []geom.Rect{
					{X0: 10, Y0: 10, X1: 110, Y1: 60},
					{X0: 200, Y0: 300, X1: 300, Y1: 350},
				}},
				{ID: 9, Data: []byte("chart"), Rects: []geom.Rect{{X0: 50, Y0: 400, X1: 550, Y1: 700}}},
			},
		},
	})
}

func TestMemoryDocumentRender(t *testing.T) {
	doc := buildFixtureDoc(t)
	raster, err := doc.RenderRaster(context.Background(), 0, 2, 2)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if raster.Width != 1224 || raster.Height != 1584 {
		t.Fatalf("unexpected raster size %dx%d", raster.Width, raster.Height)
	}
	img, err := raster.Image()
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if img.Bounds().Dx() != 1224 {
		t.Fatalf("unexpected image width %d", img.Bounds().Dx())
	}

	var renderErr *RenderError
	if _, err := doc.RenderRaster(context.Background(), 99, 1, 1); !errors.As(err, &renderErr) {
		t.Fatalf("out-of-range render should be a RenderError, got %v", err)
	}
	if renderErr.Page != 99 {
		t.Fatalf("render error page = %d", renderErr.Page)
	}
}

func TestMemoryDocumentPlacements(t *testing.T) {
	doc := buildFixtureDoc(t)
	placements, err := doc.ListPlacements(1)
	if err != nil {
		t.Fatalf("list placements: %v", err)
	}
	if len(placements) != 3 {
		t.Fatalf("want 3 placements, got %d", len(placements))
	}
	if placements[0].AssetID != 7 || placements[1].AssetID != 7 || placements[2].AssetID != 9 {
		t.Fatalf("unexpected discovery order: %+v", placements)
	}
}

func TestMemoryDocumentExtract(t *testing.T) {
	doc := buildFixtureDoc(t)
	data, err := doc.ExtractAssetBytes(9)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(data) != "chart" {
		t.Fatalf("unexpected asset bytes %q", data)
	}

	doc.FailExtract(7, errors.New("corrupt stream"))
	var extractErr *ExtractError
	if _, err := doc.ExtractAssetBytes(7); !errors.As(err, &extractErr) {
		t.Fatalf("want ExtractError, got %v", err)
	}
	if extractErr.Asset != 7 {
		t.Fatalf("extract error asset = %d", extractErr.Asset)
	}
}

func TestMemoryService(t *testing.T) {
	svc := NewMemoryService(map[string]*MemoryDocument{
		"a.pdf": buildFixtureDoc(t),
	})
	doc, err := svc.Open(context.Background(), "a.pdf")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("page count = %d", doc.PageCount())
	}

	var openErr *OpenError
	if _, err := svc.Open(context.Background(), "missing.pdf"); !errors.As(err, &openErr) {
		t.Fatalf("want OpenError, got %v", err)
	}
}

func TestFlattenOutline(t *testing.T) {
	toc := FlattenOutline([]Bookmark{
		{Title: "Intro", Page: 0, Children: []Bookmark{
			{Title: "Motivation", Page: 1},
		}},
		{Title: "Results", Page: 2},
	})
	want := []TOCEntry{
		{Title: "Intro", Page: 0, Depth: 0},
		{Title: "Motivation", Page: 1, Depth: 1},
		{Title: "Results", Page: 2, Depth: 0},
	}
	if len(toc) != len(want) {
		t.Fatalf("want %d entries, got %d", len(want), len(toc))
	}
	for i := range want {
		if toc[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, toc[i], want[i])
		}
	}
}

func TestRasterImageValidation(t *testing.T) {
	if _, err := (Raster{Pix: []byte{1, 2, 3}, Width: 2, Height: 2}).Image(); err == nil {
		t.Fatalf("short pixel buffer should fail")
	}
	if _, err := (Raster{Width: 0, Height: 4}).Image(); err == nil {
		t.Fatalf("zero width should fail")
	}
}
