package rollscan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"rollscan/bntext"
	"rollscan/config"
	"rollscan/extract"
	"rollscan/format"
	"rollscan/ingest"
	"rollscan/match"
	"rollscan/model"
	"rollscan/ocr"
)

// Pipeline drives one batch: every document in a directory, sequentially,
// against a fixed query list. It owns its stats tracker and aggregator for
// the duration of a run; no other goroutine touches them.
type Pipeline struct {
	cfg config.Config
	log *zap.SugaredLogger
	rec Recognizer

	// Open validates a document and yields its pages. Defaults to
	// ingest.Open with limits taken from the configuration.
	Open OpenFunc

	// Cache, when set, short-circuits documents whose content and search
	// parameters were seen in an earlier run.
	Cache ResultCache
}

// New builds a pipeline over the given configuration, logger, and
// recognizer. The recognizer's availability must already have been
// established (ocr.New fails fast when the engine or language data is
// missing).
func New(cfg config.Config, log *zap.SugaredLogger, rec Recognizer) *Pipeline {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Pipeline{
		cfg: cfg,
		log: log,
		rec: rec,
		Open: func(path string) (Source, error) {
			return ingest.Open(path, ingest.Options{
				DPI:      cfg.DPI,
				MaxBytes: cfg.MaxPDFBytes(),
				MaxPages: cfg.MaxPDFPages,
			})
		},
	}
}

// Run processes every document file in dir, in sorted name order, and
// returns the batch report. Per-document failures are recorded in the
// report, never returned: the only errors Run itself returns are an
// unreadable directory and context cancellation.
func (p *Pipeline) Run(ctx context.Context, dir string, queries []Query) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var stats StatsTracker
	var agg Aggregator

	queryNames := make([]string, len(queries))
	for i, q := range queries {
		queryNames[i] = q.Raw
	}

	for _, entry := range entries {
		if entry.IsDir() || format.Detect(entry.Name()) != format.PDF {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p.processDocument(ctx, filepath.Join(dir, entry.Name()), queries, queryNames, &stats, &agg)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Report{Results: agg.Results(), Stats: stats.Snapshot()}, nil
}

// processDocument is the per-document failure boundary: it always resolves
// to an outcome recorded in stats, and never lets a document's error reach
// the batch loop.
func (p *Pipeline) processDocument(ctx context.Context, path string, queries []Query, queryNames []string, stats *StatsTracker, agg *Aggregator) {
	name := filepath.Base(path)

	if p.Cache != nil {
		if results, ok := p.Cache.Get(path, queryNames, p.cfg.Threshold); ok {
			p.log.Infow("cache hit", "file", name, "matches", len(results))
			agg.AddAll(results)
			for range results {
				stats.MatchFound()
			}
			stats.FileProcessed()
			return
		}
	}

	src, err := p.Open(path)
	if err != nil {
		p.log.Warnw("document rejected", "file", name, "error", err)
		stats.FileFailed(name, "validate", err)
		return
	}
	defer src.Close()

	p.log.Infow("processing document", "file", name, "pages", src.PageCount())
	var docResults []model.SearchResult

	for {
		page, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			// Corruption mid-rasterization abandons the rest of the
			// document but not the batch.
			p.log.Warnw("document abandoned", "file", name, "error", err)
			stats.FileFailed(name, "rasterize", err)
			return
		}

		text, err := p.recognizePage(ctx, page)
		if err != nil {
			page.Close()
			if errors.Is(err, ocr.ErrTimeout) {
				p.log.Warnw("page timed out, skipping", "file", name, "page", page.Number)
				stats.PageSkipped()
				continue
			}
			if ctx.Err() != nil {
				// Run canceled; Run's caller sees ctx.Err.
				return
			}
			p.log.Warnw("page recognition failed, skipping", "file", name, "page", page.Number, "error", err)
			stats.PageSkipped()
			continue
		}

		res := extract.Records(text, name, page.Number)
		page.Close()
		if res.Misses > 0 {
			p.log.Debugw("extraction misses", "file", name, "page", page.Number, "misses", res.Misses)
		}

		matched := p.matchRecords(res.Records, queries, stats)
		docResults = append(docResults, matched...)
		agg.AddAll(matched)
		stats.PageProcessed()
	}

	stats.FileProcessed()
	if p.Cache != nil {
		p.Cache.Put(path, queryNames, p.cfg.Threshold, docResults)
	}
}

// recognizePage runs the recognizer under the per-page deadline.
func (p *Pipeline) recognizePage(ctx context.Context, page *ingest.Page) (string, error) {
	pageCtx, cancel := context.WithTimeout(ctx, p.cfg.PageTimeout)
	defer cancel()
	return p.rec.Recognize(pageCtx, page.PNG)
}

// matchRecords compares every extracted record against every query, in
// record-then-query order. Each candidate name is normalized exactly once,
// and every comparison runs over normalized text on both sides.
func (p *Pipeline) matchRecords(records []model.VoterInfo, queries []Query, stats *StatsTracker) []model.SearchResult {
	var out []model.SearchResult
	for _, rec := range records {
		candidate := bntext.Normalize(rec.Name)
		if candidate == "" {
			continue
		}
		for _, q := range queries {
			score := match.Score(q.Norm, candidate)
			if score < p.cfg.Threshold {
				continue
			}
			out = append(out, model.SearchResult{
				QueryName:  q.Raw,
				Matched:    rec,
				Score:      score,
				SourceFile: rec.SourceFile,
				PageNumber: rec.PageNumber,
			})
			stats.MatchFound()
			p.log.Infow("match",
				"query", q.Raw, "name", rec.Name,
				"file", rec.SourceFile, "page", rec.PageNumber, "score", score)
		}
	}
	return out
}
