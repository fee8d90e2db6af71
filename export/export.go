// Package export writes search results to JSON and CSV files.
//
// The exporters serialize results exactly as produced - no reordering, no
// deduplication. An empty result set still yields a well-formed file (an
// empty JSON array, or a CSV header with no rows) so downstream tooling
// never has to special-case it.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"rollscan/model"
)

// WriteJSON writes results as a UTF-8 JSON array to path.
func WriteJSON(results []model.SearchResult, path string) error {
	if results == nil {
		results = []model.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// csvHeader is the fixed column order of CSV exports.
var csvHeader = []string{"query_name", "matched_name", "guardian_name", "score", "source_file", "page_number"}

// WriteCSV writes results as UTF-8 CSV (no BOM) to path, header row first.
func WriteCSV(results []model.SearchResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	w.Write(csvHeader)
	for _, r := range results {
		w.Write([]string{
			r.QueryName,
			r.Matched.Name,
			r.Matched.GuardianName,
			strconv.Itoa(r.Score),
			r.SourceFile,
			strconv.Itoa(r.PageNumber),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write %q: %w", path, err)
	}
	return f.Close()
}

// Write picks the format from the output path's extension: .json or .csv.
func Write(results []model.SearchResult, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return WriteJSON(results, path)
	case ".csv":
		return WriteCSV(results, path)
	default:
		return fmt.Errorf("cannot infer export format from %q (use .json or .csv)", path)
	}
}
