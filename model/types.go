package model

import "fmt"

// VoterInfo is a single voter record recovered from one recognized page.
// GuardianName holds the father's or husband's name, whichever label the
// source block carried; it is empty when the block had a name label only.
// Values are never mutated after construction.
type VoterInfo struct {
	Name         string `json:"name"`
	GuardianName string `json:"guardian_name,omitempty"`
	PageNumber   int    `json:"page_number"`
	SourceFile   string `json:"source_file"`
}

// SearchResult records that a query name matched an extracted record at or
// above the configured threshold. Score is the similarity in [0, 100]
// computed over normalized text. Multiple results may reference the same
// query or the same record; no deduplication is performed.
type SearchResult struct {
	QueryName  string    `json:"query_name"`
	Matched    VoterInfo `json:"matched_record"`
	Score      int       `json:"score"`
	SourceFile string    `json:"source_file"`
	PageNumber int       `json:"page_number"`
}

// ProcessingError describes one failure recorded during a batch, attributed
// to the file and pipeline stage where it occurred.
type ProcessingError struct {
	File    string `json:"file"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (e ProcessingError) String() string {
	return fmt.Sprintf("%s [%s]: %s", e.File, e.Stage, e.Message)
}

// ProcessingStats is the read-only snapshot of a completed batch. Counters
// are monotonic over the run; Errors preserves the order in which failures
// were recorded.
type ProcessingStats struct {
	FilesProcessed int               `json:"files_processed"`
	FilesFailed    int               `json:"files_failed"`
	PagesProcessed int               `json:"pages_processed"`
	PagesSkipped   int               `json:"pages_skipped"`
	MatchesFound   int               `json:"matches_found"`
	Errors         []ProcessingError `json:"errors,omitempty"`
}
