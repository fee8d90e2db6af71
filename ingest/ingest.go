// Package ingest validates candidate documents and rasterizes their pages.
//
// Validation is ordered so that the cheap checks run first and nothing
// expensive happens to a file that will be rejected: the size gate reads
// only file metadata, the signature gate reads the first few bytes, and the
// page-count gate parses structure without rasterizing. Only a document
// that passes all three ever reaches poppler.
//
// Rasterization is lazy: each page is rendered by its own pdftoppm
// invocation when requested, loaded, and deleted from disk immediately, so
// peak memory holds one page image no matter how large the document is.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"rollscan/format"
)

// ErrNotPDF is returned when a file does not carry the PDF magic signature.
var ErrNotPDF = errors.New("not a PDF document")

// ErrTooLarge is returned when a file exceeds the configured size limit.
// The check runs against file metadata, before any content is read.
var ErrTooLarge = errors.New("document exceeds size limit")

// ErrTooManyPages is returned when a document declares more pages than the
// configured limit. The check runs before any page is rasterized.
var ErrTooManyPages = errors.New("document exceeds page limit")

// ErrNoRasterizer is returned when the pdftoppm binary cannot be found.
var ErrNoRasterizer = errors.New("pdftoppm not found; install poppler-utils")

// DocumentError reports corruption encountered while reading or rasterizing
// a document. The document is abandoned from Page onward; earlier pages may
// already have been processed.
type DocumentError struct {
	Path string
	Page int
	Err  error
}

func (e *DocumentError) Error() string {
	if e.Page > 0 {
		return fmt.Sprintf("document %s page %d: %v", e.Path, e.Page, e.Err)
	}
	return fmt.Sprintf("document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// countPages is a seam over pdfcpu so tests can exercise the validation
// order without crafting real multi-page PDFs.
var countPages = func(path string) (int, error) {
	return api.PageCountFile(path)
}

// Options configures document validation and rasterization.
type Options struct {
	// DPI is the rasterization resolution. Zero means 350.
	DPI int
	// MaxBytes caps the document file size. Zero means no cap.
	MaxBytes int64
	// MaxPages caps the declared page count. Zero means no cap.
	MaxPages int
	// Pdftoppm is the rasterizer binary name or absolute path.
	// Empty means "pdftoppm".
	Pdftoppm string
}

func (o Options) withDefaults() Options {
	if o.DPI <= 0 {
		o.DPI = 350
	}
	if o.Pdftoppm == "" {
		o.Pdftoppm = "pdftoppm"
	}
	return o
}

// CheckRasterizer verifies that the configured rasterizer binary is on the
// PATH. Call it once before a batch: a missing binary fails every document,
// so it should be reported up front rather than once per file.
func CheckRasterizer(opts Options) error {
	opts = opts.withDefaults()
	if _, err := exec.LookPath(opts.Pdftoppm); err != nil {
		return fmt.Errorf("%w (%v)", ErrNoRasterizer, err)
	}
	return nil
}

// Document is a validated document whose pages can be rasterized once, in
// order. It is a one-shot sequence: Next walks forward only, and a Document
// cannot be rewound or reused after Close.
type Document struct {
	path      string
	pageCount int
	opts      Options

	next   int // next page to rasterize, 1-based
	tmpDir string
	prev   *Page
	dead   error // set once rasterization fails; all further Next calls fail
	closed bool
}

// Open validates the file at path and returns a Document ready for page
// iteration. The size limit is enforced from metadata before any content
// read, the magic signature from the first bytes only, and the page count
// before any rasterization. Structural parse failures surface as
// *DocumentError.
func Open(path string, opts Options) (*Document, error) {
	opts = opts.withDefaults()

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", path, err)
	}
	if opts.MaxBytes > 0 && info.Size() > opts.MaxBytes {
		return nil, fmt.Errorf("%q is %d bytes (limit %d): %w",
			path, info.Size(), opts.MaxBytes, ErrTooLarge)
	}

	f, err := format.SniffFile(path)
	if err != nil {
		return nil, err
	}
	if f != format.PDF {
		return nil, fmt.Errorf("%q: %w", path, ErrNotPDF)
	}

	n, err := countPages(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	if n < 1 {
		return nil, &DocumentError{Path: path, Err: errors.New("no pages")}
	}
	if opts.MaxPages > 0 && n > opts.MaxPages {
		return nil, fmt.Errorf("%q has %d pages (limit %d): %w",
			path, n, opts.MaxPages, ErrTooManyPages)
	}

	return &Document{path: path, pageCount: n, opts: opts, next: 1}, nil
}

// Path returns the document's file path.
func (d *Document) Path() string { return d.path }

// PageCount returns the declared number of pages.
func (d *Document) PageCount() int { return d.pageCount }

// Page is one rasterized page. PNG holds the image bytes until Close, which
// releases them. Requesting the next page also invalidates the previous one,
// so a page is freed whether its consumer succeeds, skips, or fails.
type Page struct {
	Number int
	PNG    []byte
}

// Close releases the page image.
func (p *Page) Close() error {
	if p != nil {
		p.PNG = nil
	}
	return nil
}

// Next rasterizes and returns the next page. It returns io.EOF after the
// last page. A rasterization failure marks the whole document dead: the
// failing page and all pages after it are unreachable, and every further
// call returns the same *DocumentError.
func (d *Document) Next(ctx context.Context) (*Page, error) {
	if d.dead != nil {
		return nil, d.dead
	}
	if d.closed {
		return nil, errors.New("document closed")
	}
	if d.next > d.pageCount {
		return nil, io.EOF
	}

	// One page resident at a time: drop the previous image before
	// rendering the next.
	d.prev.Close()

	if d.tmpDir == "" {
		dir, err := os.MkdirTemp("", "rollscan-pages-")
		if err != nil {
			return nil, fmt.Errorf("create page dir: %w", err)
		}
		d.tmpDir = dir
	}

	pageNo := d.next
	png, err := d.rasterize(ctx, pageNo)
	if err != nil {
		d.dead = &DocumentError{Path: d.path, Page: pageNo, Err: err}
		return nil, d.dead
	}

	d.next++
	d.prev = &Page{Number: pageNo, PNG: png}
	return d.prev, nil
}

// rasterize renders a single page to PNG via pdftoppm and returns the image
// bytes. The on-disk file is removed before returning.
func (d *Document) rasterize(ctx context.Context, pageNo int) ([]byte, error) {
	prefix := filepath.Join(d.tmpDir, "page")
	no := strconv.Itoa(pageNo)

	cmd := exec.CommandContext(ctx, d.opts.Pdftoppm,
		"-png",
		"-r", strconv.Itoa(d.opts.DPI),
		"-f", no,
		"-l", no,
		d.path, prefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, firstLine(out))
	}

	// pdftoppm zero-pads the page number in the output name according to
	// the document's page count, so glob rather than predict it.
	matches, err := filepath.Glob(prefix + "-*.png")
	if err != nil || len(matches) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no image for page %d", pageNo)
	}
	defer func() {
		for _, m := range matches {
			os.Remove(m)
		}
	}()

	png, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("read page image: %w", err)
	}
	return png, nil
}

// Close releases the previous page and removes the temp directory. It is
// safe to call more than once.
func (d *Document) Close() error {
	if d == nil || d.closed {
		return nil
	}
	d.closed = true
	d.prev.Close()
	d.prev = nil
	if d.tmpDir != "" {
		return os.RemoveAll(d.tmpDir)
	}
	return nil
}

// firstLine trims command output to its first line for error messages.
func firstLine(out []byte) string {
	for i, b := range out {
		if b == '\n' {
			out = out[:i]
			break
		}
	}
	return string(out)
}
