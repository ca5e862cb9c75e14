// Package export writes embedded assets out to files. Batches deduplicate
// on asset identity, name outputs deterministically, and collect per-asset
// failures instead of aborting.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/wudi/pdfview/document"
	"github.com/wudi/pdfview/observability"
	"github.com/wudi/pdfview/registry"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger attaches a logger.
func WithLogger(l observability.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithPassthroughNaming names output files after the asset's original
// encoding, sniffed from its bytes, instead of the default png extension.
func WithPassthroughNaming() Option {
	return func(p *Pipeline) { p.passthrough = true }
}

// Pipeline exports assets from one open document.
type Pipeline struct {
	doc         document.Document
	logger      observability.Logger
	passthrough bool
}

// New builds a pipeline over an open document.
func New(doc document.Document, opts ...Option) *Pipeline {
	p := &Pipeline{doc: doc, logger: observability.NopLogger{}}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Failure records one asset that could not be exported.
type Failure struct {
	AssetID    document.AssetID
	LocalIndex int
	Err        error
}

// Result summarizes a batch export.
type Result struct {
	SavedCount    int
	SavedAssetIDs []document.AssetID
	Files         []string
	Failures      []Failure
}

// Err folds the per-asset failures into one error, or nil if every asset
// was saved.
func (r Result) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f.Err)
	}
	return err
}

// ExportOne returns the raw bytes of a single asset, unchanged.
func (p *Pipeline) ExportOne(ctx context.Context, id document.AssetID) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := p.doc.ExtractAssetBytes(id)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// ExportAll walks the placements in order and writes each distinct asset to
// dir exactly once, named after the page and the asset's first occurrence.
// A failing asset is recorded in the result and the batch continues; only a
// batch-level problem (an unusable destination, a cancelled context) aborts.
func (p *Pipeline) ExportAll(ctx context.Context, pageIndex int, placements []registry.Placement, dir string) (Result, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("export destination: %w", err)
	}
	var res Result
	seen := make(map[document.AssetID]bool, len(placements))
	for _, pl := range placements {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if seen[pl.AssetID] {
			continue
		}
		seen[pl.AssetID] = true

		data, err := p.doc.ExtractAssetBytes(pl.AssetID)
		if err != nil {
			p.logger.Warn("asset export failed",
				observability.Int("asset", int(pl.AssetID)),
				observability.Error("err", err))
			res.Failures = append(res.Failures, Failure{AssetID: pl.AssetID, LocalIndex: pl.LocalIndex, Err: err})
			continue
		}

		ext := "png"
		if p.passthrough {
			ext = SniffExtension(data)
		}
		path := filepath.Join(dir, FileName(pageIndex, pl.LocalIndex, ext))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			p.logger.Warn("asset write failed",
				observability.Int("asset", int(pl.AssetID)),
				observability.String("path", path),
				observability.Error("err", err))
			res.Failures = append(res.Failures, Failure{AssetID: pl.AssetID, LocalIndex: pl.LocalIndex, Err: err})
			continue
		}

		res.SavedCount++
		res.SavedAssetIDs = append(res.SavedAssetIDs, pl.AssetID)
		res.Files = append(res.Files, path)
	}
	p.logger.Info("batch export finished",
		observability.Int("page", pageIndex),
		observability.Int(observability.MetricExportedAssets, res.SavedCount),
		observability.Int(observability.MetricExportFailures, len(res.Failures)))
	return res, nil
}

// FileName builds the deterministic output name for an asset: 1-based page
// number and 1-based local index of its first occurrence.
func FileName(pageIndex, localIndex int, ext string) string {
	return fmt.Sprintf("page%d_image%d.%s", pageIndex+1, localIndex+1, ext)
}
