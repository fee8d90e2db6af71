//go:build !ocr

// Package ocr recognizes text on rasterized roll pages.
//
// This is the stub implementation used when the "ocr" build tag is not set.
// All operations return ErrNotEnabled. To enable recognition, rebuild with
// the "ocr" build tag:
//
//	go build -tags ocr ./...
//
// This requires Tesseract and the language data for the configured language,
// e.g. on Ubuntu/Debian:
//
//	apt-get install tesseract-ocr tesseract-ocr-ben
package ocr

import "context"

// Engine is a stub recognizer that fails every operation.
type Engine struct{}

// New returns ErrNotEnabled: OCR support was not compiled in.
func New(lang string) (*Engine, error) {
	return nil, ErrNotEnabled
}

// Recognize returns ErrNotEnabled.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	return "", ErrNotEnabled
}

// Close is a no-op for the stub engine. It is safe to call on a nil engine.
func (e *Engine) Close() error {
	return nil
}
