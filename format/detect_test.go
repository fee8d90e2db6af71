package format

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"roll.pdf", PDF},
		{"ROLL.PDF", PDF},
		{"ward-07.Pdf", PDF},
		{"notes.txt", Unknown},
		{"archive.zip", Unknown},
		{"noextension", Unknown},
		{"", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"pdf", []byte("%PDF-1.7\n"), PDF},
		{"pdf exact", []byte("%PDF-"), PDF},
		{"truncated", []byte("%PDF"), Unknown},
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04, 0x00}, Unknown},
		{"text", []byte("hello world"), Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectMagic(tt.data); got != tt.want {
				t.Errorf("DetectMagic = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSniffFile(t *testing.T) {
	dir := t.TempDir()

	pdf := filepath.Join(dir, "real.pdf")
	if err := os.WriteFile(pdf, []byte("%PDF-1.4 rest of file"), 0o644); err != nil {
		t.Fatal(err)
	}
	fake := filepath.Join(dir, "fake.pdf")
	if err := os.WriteFile(fake, []byte("plain text pretending"), 0o644); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(empty, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if got, err := SniffFile(pdf); err != nil || got != PDF {
		t.Errorf("SniffFile(real) = %v, %v; want PDF", got, err)
	}
	if got, err := SniffFile(fake); err != nil || got != Unknown {
		t.Errorf("SniffFile(fake) = %v, %v; want Unknown", got, err)
	}
	if got, err := SniffFile(empty); err != nil || got != Unknown {
		t.Errorf("SniffFile(empty) = %v, %v; want Unknown", got, err)
	}
	if _, err := SniffFile(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestFormatString(t *testing.T) {
	if PDF.String() != "PDF" {
		t.Errorf("PDF.String() = %q", PDF.String())
	}
	if Unknown.String() != "Unknown" {
		t.Errorf("Unknown.String() = %q", Unknown.String())
	}
}
