// Package rollscan searches scanned Bengali electoral-roll PDFs for a list
// of target names.
//
// Each document in an input directory is validated, rasterized page by
// page, recognized with Tesseract under a per-page deadline, parsed into
// voter records, and fuzzy-compared against every query name. Matches and
// per-document outcomes accumulate into a [Report].
//
// Basic usage:
//
//	cfg := config.Default()
//	engine, err := ocr.New(cfg.Lang)
//	if err != nil {
//	    // fatal: nothing can be recognized
//	}
//	defer engine.Close()
//
//	queries, err := rollscan.LoadNames("names.txt", cfg)
//	if err != nil {
//	    // fatal: bad names list
//	}
//
//	p := rollscan.New(cfg, logger, engine)
//	report, err := p.Run(ctx, "./rolls", queries)
//
// Documents are processed strictly sequentially, and every per-document
// failure is caught at the document boundary and recorded in the report's
// statistics; a batch always runs to completion unless its context is
// canceled.
package rollscan

import (
	"context"

	"rollscan/ingest"
	"rollscan/model"
)

// Recognizer turns a rasterized page image into text. ocr.Engine is the
// production implementation; tests substitute fakes.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Source is a validated document whose pages are rasterized on demand, in
// order, exactly once. ingest.Document is the production implementation.
type Source interface {
	Path() string
	PageCount() int
	Next(ctx context.Context) (*ingest.Page, error)
	Close() error
}

// OpenFunc validates a candidate document and returns its page source.
type OpenFunc func(path string) (Source, error)

// ResultCache looks up and stores per-document results so unchanged
// documents are not re-recognized across runs. Implementations must key on
// document content and search parameters; see the cache package.
type ResultCache interface {
	Get(path string, queryNames []string, threshold int) ([]model.SearchResult, bool)
	Put(path string, queryNames []string, threshold int, results []model.SearchResult)
}

// Report is the outcome of one batch: every match in production order plus
// the final statistics snapshot. Serialization and presentation are the
// caller's concern.
type Report struct {
	Results []model.SearchResult
	Stats   model.ProcessingStats
}
