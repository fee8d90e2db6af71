package rollscan

import "rollscan/model"

// StatsTracker accumulates batch counters and error records. Counters only
// ever increase. The tracker is owned by the pipeline loop and mutated from
// that single goroutine; it is not safe for concurrent use and does not
// need to be.
type StatsTracker struct {
	stats model.ProcessingStats
}

// FileProcessed records a document that ran to the end of its page sequence.
func (t *StatsTracker) FileProcessed() { t.stats.FilesProcessed++ }

// FileFailed records a document abandoned at stage with the given reason,
// both in the failure counter and in the ordered error list.
func (t *StatsTracker) FileFailed(file, stage string, err error) {
	t.stats.FilesFailed++
	t.stats.Errors = append(t.stats.Errors, model.ProcessingError{
		File:    file,
		Stage:   stage,
		Message: err.Error(),
	})
}

// PageProcessed records a page that was recognized and parsed.
func (t *StatsTracker) PageProcessed() { t.stats.PagesProcessed++ }

// PageSkipped records a page abandoned to a timeout or recognition failure.
func (t *StatsTracker) PageSkipped() { t.stats.PagesSkipped++ }

// MatchFound records one produced search result.
func (t *StatsTracker) MatchFound() { t.stats.MatchesFound++ }

// Snapshot returns a frozen copy of the accumulated statistics. The copy
// shares nothing with the tracker, so later mutation cannot leak into it.
func (t *StatsTracker) Snapshot() model.ProcessingStats {
	out := t.stats
	out.Errors = append([]model.ProcessingError(nil), t.stats.Errors...)
	return out
}

// Aggregator collects search results in production order. It never
// deduplicates or sorts; presentation ordering is the exporter's concern.
type Aggregator struct {
	results []model.SearchResult
}

// Add appends one result.
func (a *Aggregator) Add(r model.SearchResult) {
	a.results = append(a.results, r)
}

// AddAll appends a batch of results, preserving their order.
func (a *Aggregator) AddAll(rs []model.SearchResult) {
	a.results = append(a.results, rs...)
}

// Len returns the number of collected results.
func (a *Aggregator) Len() int { return len(a.results) }

// Results returns the collected results in the order they were added. The
// returned slice is a copy; mutating it does not affect the aggregator.
func (a *Aggregator) Results() []model.SearchResult {
	return append([]model.SearchResult(nil), a.results...)
}
