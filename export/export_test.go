package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"rollscan/model"
)

func sampleResults() []model.SearchResult {
	return []model.SearchResult{
		{
			QueryName:  "রহিম আলী",
			Matched:    model.VoterInfo{Name: "রহিম আলি", GuardianName: "করিম মিয়া", PageNumber: 2, SourceFile: "ward-07.pdf"},
			Score:      86,
			SourceFile: "ward-07.pdf",
			PageNumber: 2,
		},
		{
			QueryName:  "করিম মিয়া",
			Matched:    model.VoterInfo{Name: "করিম মিয়া", PageNumber: 5, SourceFile: "ward-09.pdf"},
			Score:      100,
			SourceFile: "ward-09.pdf",
			PageNumber: 5,
		},
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(sampleResults(), path); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []model.SearchResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if len(got) != 2 || got[0].QueryName != "রহিম আলী" || got[1].Score != 100 {
		t.Errorf("Round-tripped results = %+v", got)
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := WriteJSON(nil, path); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got []model.SearchResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Empty export is not valid JSON: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Expected empty array, got %v", got)
	}
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(sampleResults(), path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "query_name" {
		t.Errorf("Header = %v", rows[0])
	}
	if rows[1][1] != "রহিম আলি" || rows[1][3] != "86" {
		t.Errorf("Row 1 = %v", rows[1])
	}
	if rows[2][2] != "" {
		t.Errorf("Empty guardian should export as empty field, got %q", rows[2][2])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSV(nil, path); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("Expected header only, got %d rows", len(rows))
	}
}

func TestWriteAutoDetect(t *testing.T) {
	dir := t.TempDir()
	if err := Write(sampleResults(), filepath.Join(dir, "r.JSON")); err != nil {
		t.Errorf("Write(.JSON) failed: %v", err)
	}
	if err := Write(sampleResults(), filepath.Join(dir, "r.csv")); err != nil {
		t.Errorf("Write(.csv) failed: %v", err)
	}
	if err := Write(sampleResults(), filepath.Join(dir, "r.txt")); err == nil {
		t.Error("Expected error for unknown extension")
	}
}
