// Package format provides document format detection for rollscan.
//
// Detection is two-stage: Detect gives a cheap extension-based guess used to
// skip non-document files while walking an input directory, and SniffFile
// confirms the format from magic bytes before any further processing. Only
// the sniffed result is trusted; the extension never is.
package format

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents a recognized document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
)

// pdfMagic is the signature every PDF file starts with.
var pdfMagic = []byte("%PDF-")

// MagicLen is the number of leading bytes needed to identify any supported
// format. Callers that already have the file open can read this many bytes
// and pass them to DetectMagic.
const MagicLen = 5

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	default:
		return "Unknown"
	}
}

// Detect determines the likely format from the filename extension alone.
// It is suitable only for filtering directory listings; use SniffFile to
// verify the content.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	default:
		return Unknown
	}
}

// DetectMagic determines the format from leading file bytes. At least
// MagicLen bytes should be supplied; shorter input yields Unknown.
func DetectMagic(data []byte) Format {
	if bytes.HasPrefix(data, pdfMagic) {
		return PDF
	}
	return Unknown
}

// SniffFile reads only the first MagicLen bytes of the named file and
// returns the detected format. The rest of the file is never read, so
// sniffing an arbitrarily large file is cheap.
func SniffFile(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Unknown, fmt.Errorf("sniff %q: %w", path, err)
	}
	defer f.Close()

	magic := make([]byte, MagicLen)
	n, err := io.ReadFull(f, magic)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Unknown, fmt.Errorf("sniff %q: %w", path, err)
	}
	return DetectMagic(magic[:n]), nil
}
