package rollscan

import (
	"errors"
	"testing"

	"rollscan/model"
)

func TestStatsTrackerCounters(t *testing.T) {
	var tr StatsTracker
	tr.FileProcessed()
	tr.FileProcessed()
	tr.FileFailed("bad.pdf", "validate", errors.New("not a PDF"))
	tr.PageProcessed()
	tr.PageSkipped()
	tr.MatchFound()

	s := tr.Snapshot()
	if s.FilesProcessed != 2 || s.FilesFailed != 1 {
		t.Errorf("Files = %d/%d, want 2/1", s.FilesProcessed, s.FilesFailed)
	}
	if s.PagesProcessed != 1 || s.PagesSkipped != 1 {
		t.Errorf("Pages = %d/%d, want 1/1", s.PagesProcessed, s.PagesSkipped)
	}
	if s.MatchesFound != 1 {
		t.Errorf("MatchesFound = %d, want 1", s.MatchesFound)
	}
	if len(s.Errors) != 1 {
		t.Fatalf("Errors = %d entries, want 1", len(s.Errors))
	}
	e := s.Errors[0]
	if e.File != "bad.pdf" || e.Stage != "validate" || e.Message != "not a PDF" {
		t.Errorf("Error entry = %+v", e)
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	var tr StatsTracker
	tr.FileFailed("a.pdf", "validate", errors.New("x"))

	snap := tr.Snapshot()
	tr.FileFailed("b.pdf", "rasterize", errors.New("y"))
	tr.FileProcessed()

	if snap.FilesFailed != 1 || len(snap.Errors) != 1 {
		t.Errorf("Snapshot mutated after later tracking: %+v", snap)
	}
}

func TestAggregatorOrderPreserved(t *testing.T) {
	var agg Aggregator
	first := model.SearchResult{QueryName: "ক", PageNumber: 2}
	second := model.SearchResult{QueryName: "খ", PageNumber: 1}
	dup := first

	agg.Add(first)
	agg.Add(second)
	agg.Add(dup) // no deduplication

	got := agg.Results()
	if len(got) != 3 {
		t.Fatalf("Results = %d entries, want 3", len(got))
	}
	if got[0] != first || got[1] != second || got[2] != dup {
		t.Errorf("Order not preserved: %+v", got)
	}

	// The returned slice is detached from the aggregator.
	got[0].QueryName = "mutated"
	if agg.Results()[0].QueryName != "ক" {
		t.Error("Results() exposed internal storage")
	}
}
