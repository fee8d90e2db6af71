package rollscan

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"rollscan/bntext"
	"rollscan/config"
)

// ErrNamesFileTooLarge is returned when the names file exceeds the
// configured size cap. The check runs against metadata before the file is
// read.
var ErrNamesFileTooLarge = errors.New("names file exceeds size limit")

// ErrTooManyNames is returned when the names file holds more distinct names
// than the configured cap. The load is rejected outright rather than
// silently truncated.
var ErrTooManyNames = errors.New("names file exceeds name count limit")

// ErrNamesNotUTF8 is returned when the names file is not valid UTF-8.
var ErrNamesNotUTF8 = errors.New("names file is not valid UTF-8")

// ErrNoNames is returned when the names file holds no usable names.
var ErrNoNames = errors.New("names file holds no names")

// Query is one target name. Norm is the comparison form, computed exactly
// once at load time and reused for every comparison in the batch.
type Query struct {
	Raw  string
	Norm string
}

// LoadNames reads the UTF-8 names file at path: one name per line, blank
// lines ignored, CRLF tolerated, duplicates collapsed (first occurrence
// kept). Size and count caps come from cfg; exceeding either is an error
// for the whole load. Every failure here is pre-batch fatal - a run never
// starts with a defective names list.
func LoadNames(path string, cfg config.Config) ([]Query, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("names file: %w", err)
	}
	if info.Size() > cfg.MaxNamesFileBytes() {
		return nil, fmt.Errorf("names file is %d bytes (limit %d): %w",
			info.Size(), cfg.MaxNamesFileBytes(), ErrNamesFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("names file: %w", err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%q: %w", path, ErrNamesNotUTF8)
	}

	seen := make(map[string]struct{})
	var queries []Query
	for _, line := range strings.Split(string(data), "\n") {
		name := strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		norm := bntext.Normalize(name)
		if norm == "" {
			// Nothing comparable survives normalization; a query
			// like this would match everything or nothing.
			continue
		}
		queries = append(queries, Query{Raw: name, Norm: norm})
		if len(queries) > cfg.MaxNames {
			return nil, fmt.Errorf("more than %d names: %w", cfg.MaxNames, ErrTooManyNames)
		}
	}

	if len(queries) == 0 {
		return nil, fmt.Errorf("%q: %w", path, ErrNoNames)
	}
	return queries, nil
}
