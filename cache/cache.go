// Package cache stores per-document search results between runs.
//
// OCR dominates the cost of a batch, so a document whose content, query
// list, and threshold all match an earlier run can reuse that run's
// results. Entries are keyed by the SHA-256 of the document's bytes plus a
// fingerprint of the sorted queries and the threshold: touching the file,
// editing the names list, or changing the threshold all miss cleanly.
//
// The cache is advisory. Every failure - unreadable entry, version drift,
// expired TTL - behaves as a miss, and corrupt entries are removed rather
// than reported.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"rollscan/model"
)

// Version tags the entry layout. Bump it when the result schema changes so
// stale entries invalidate themselves.
const Version = "1"

// DefaultTTL is how long an entry stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// entry is the on-disk layout of one cached document.
type entry struct {
	Version   string               `json:"version"`
	CreatedAt time.Time            `json:"created_at"`
	Results   []model.SearchResult `json:"results"`
}

// Cache is a directory of JSON result entries. The zero value is not
// usable; construct with New.
type Cache struct {
	dir string
	ttl time.Duration
}

// New opens (creating if needed) a cache rooted at dir. A zero ttl means
// DefaultTTL.
func New(dir string, ttl time.Duration) (*Cache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Get returns the cached results for the document at path under the given
// search parameters, and whether a valid entry existed. Queries carry the
// raw names; ordering does not matter.
func (c *Cache) Get(path string, queryNames []string, threshold int) ([]model.SearchResult, bool) {
	key, err := c.key(path, queryNames, threshold)
	if err != nil {
		return nil, false
	}
	entryPath := filepath.Join(c.dir, key+".json")

	data, err := os.ReadFile(entryPath)
	if err != nil {
		return nil, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil || e.Version != Version {
		os.Remove(entryPath)
		return nil, false
	}
	if time.Since(e.CreatedAt) > c.ttl {
		os.Remove(entryPath)
		return nil, false
	}
	return e.Results, true
}

// Put stores results for the document at path under the given search
// parameters. Storage failures are deliberately swallowed: a cache that
// cannot write only costs time on the next run.
func (c *Cache) Put(path string, queryNames []string, threshold int, results []model.SearchResult) {
	key, err := c.key(path, queryNames, threshold)
	if err != nil {
		return
	}
	data, err := json.Marshal(entry{
		Version:   Version,
		CreatedAt: time.Now().UTC(),
		Results:   results,
	})
	if err != nil {
		return
	}

	// Write-then-rename keeps readers from ever seeing a partial entry.
	tmp, err := os.CreateTemp(c.dir, "entry-*")
	if err != nil {
		return
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return
	}
	tmp.Close()
	if err := os.Rename(tmp.Name(), filepath.Join(c.dir, key+".json")); err != nil {
		os.Remove(tmp.Name())
	}
}

// key derives the entry name from document content and search parameters.
func (c *Cache) key(path string, queryNames []string, threshold int) (string, error) {
	fileHash, err := hashFile(path)
	if err != nil {
		return "", err
	}

	names := append([]string(nil), queryNames...)
	sort.Strings(names)
	nameHash := sha256.Sum256([]byte(strings.Join(names, "|")))

	return fmt.Sprintf("%s_%s_%d", fileHash, hex.EncodeToString(nameHash[:8]), threshold), nil
}

// hashFile streams the file through SHA-256 so large documents never load
// wholesale.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
