// Command pdfview is a flag-driven harness around the viewer core. It runs
// against any document.Service; without a real parsing backend wired in it
// falls back to a built-in sample document, which is enough to exercise
// navigation, placement listing, thumbnails, and export end to end.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/wudi/pdfview/config"
	"github.com/wudi/pdfview/document"
	"github.com/wudi/pdfview/export"
	"github.com/wudi/pdfview/geom"
	"github.com/wudi/pdfview/observability"
	"github.com/wudi/pdfview/session"
)

type options struct {
	path       string
	configPath string
	page       int
	zoom       float64
	list       bool
	toc        bool
	extract    bool
	outDir     string
	thumbs     bool
	verbose    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "pdfview: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "pdfview: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pdfview [flags] [document]\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	flag.IntVar(&opts.page, "page", 0, "Page to display (0-based)")
	flag.Float64Var(&opts.zoom, "zoom", 1.0, "Zoom factor")
	flag.BoolVar(&opts.list, "list", false, "List asset placements on the page")
	flag.BoolVar(&opts.toc, "toc", false, "Print the table of contents")
	flag.BoolVar(&opts.extract, "extract", false, "Export every asset on the page")
	flag.StringVar(&opts.outDir, "out", "pdfview_output", "Directory for exported assets")
	flag.BoolVar(&opts.thumbs, "thumbs", false, "Generate thumbnails for all pages")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.Parse()

	opts.path = "sample.pdf"
	if flag.NArg() > 0 {
		opts.path = flag.Arg(0)
	}
	return opts, nil
}

func run(opts options) error {
	ctx := context.Background()

	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := observability.Logger(observability.NopLogger{})
	if opts.verbose {
		l, err := observability.NewDevelopmentLogger()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		logger = l
	}

	svc, err := sampleService()
	if err != nil {
		return fmt.Errorf("build sample document: %w", err)
	}

	s := session.New(svc, session.WithConfig(cfg), session.WithLogger(logger))
	if err := s.Open(ctx, opts.path); err != nil {
		return err
	}
	defer s.Close()

	if opts.page != 0 {
		if err := s.SetPage(ctx, opts.page); err != nil {
			return err
		}
	}
	if opts.zoom != 1.0 {
		if err := s.SetZoom(ctx, opts.zoom); err != nil {
			return err
		}
	}

	g, _ := s.Geometry()
	fmt.Printf("%s: page %s at %.0f%%, %gx%g pts, %gx%g px\n",
		opts.path, s.PageLabel(), g.Zoom*100,
		g.PageSize.W, g.PageSize.H, g.RasterSize.W, g.RasterSize.H)

	if opts.list {
		placements := s.Placements()
		if len(placements) == 0 {
			fmt.Println("no assets on this page")
		}
		for _, pl := range placements {
			fmt.Printf("  #%d asset %d at (%.1f, %.1f)-(%.1f, %.1f) %gx%g pts\n",
				pl.LocalIndex+1, pl.AssetID,
				pl.PageRect.X0, pl.PageRect.Y0, pl.PageRect.X1, pl.PageRect.Y1,
				pl.PageRect.Width(), pl.PageRect.Height())
		}
	}

	if opts.toc {
		for _, entry := range s.TableOfContents() {
			for i := 0; i < entry.Depth; i++ {
				fmt.Print("  ")
			}
			fmt.Printf("%s (p.%d)\n", entry.Title, entry.Page+1)
		}
	}

	if opts.thumbs {
		for i := 0; i < s.PageCount(); i++ {
			entry, err := s.Thumbnail(ctx, i)
			if err != nil {
				return err
			}
			fmt.Printf("  thumbnail page %d: %dx%d\n", i+1, entry.Width, entry.Height)
		}
	}

	if opts.extract {
		res, err := s.ExportAll(ctx, opts.outDir)
		if err != nil {
			return err
		}
		fmt.Printf("exported %d unique asset(s) to %s\n", res.SavedCount, opts.outDir)
		for _, f := range res.Failures {
			fmt.Printf("  asset %d failed: %v\n", f.AssetID, f.Err)
		}
	}

	return nil
}

// sampleService builds a three-page in-memory document with PNG assets: a
// logo repeated on pages 1 and 2, and a larger chart on page 2.
func sampleService() (document.Service, error) {
	logo, err := export.EncodePNG(flatRaster(40, 20, 0x33, 0x66, 0xcc))
	if err != nil {
		return nil, err
	}
	chart, err := export.EncodePNG(flatRaster(120, 80, 0xcc, 0x66, 0x33))
	if err != nil {
		return nil, err
	}

	page := geom.Size{W: 612, H: 792}
	doc := document.NewMemoryDocument([]document.MemoryPage{
		{
			Size: page,
			Assets: []document.MemoryAsset{
				{ID: 4, Data: logo, Rects: []geom.Rect{{X0: 36, Y0: 36, X1: 136, Y1: 86}}},
			},
		},
		{
			Size: page,
			Assets: []document.MemoryAsset{
				{ID: 4, Data: logo, Rects: []geom.Rect{
					{X0: 36, Y0: 36, X1: 136, Y1: 86},
					{X0: 440, Y0: 700, X1: 540, Y1: 750},
				}},
				{ID: 6, Data: chart, Rects: []geom.Rect{{X0: 72, Y0: 200, X1: 540, Y1: 560}}},
			},
		},
		{Size: page},
	})
	doc.SetOutline([]document.Bookmark{
		{Title: "Cover", Page: 0},
		{Title: "Figures", Page: 1, Children: []document.Bookmark{
			{Title: "Revenue chart", Page: 1},
		}},
		{Title: "Appendix", Page: 2},
	})

	return document.NewMemoryService(map[string]*document.MemoryDocument{
		"sample.pdf": doc,
	}), nil
}

func flatRaster(w, h int, r, g, b byte) document.Raster {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 0xff
	}
	return document.Raster{Pix: pix, Width: w, Height: h}
}
