//go:build ocr

// Package ocr recognizes text on rasterized roll pages.
//
// This implementation wraps the Tesseract engine via gosseract and is
// compiled in with the "ocr" build tag. It requires Tesseract and the
// language data for the configured language to be installed. On
// Ubuntu/Debian, for Bengali rolls:
//
//	apt-get install tesseract-ocr tesseract-ocr-ben
//
// On macOS:
//
//	brew install tesseract tesseract-lang
//
// Pages are recognized with a fixed page-segmentation mode (single uniform
// block of text), which matches the dense block layout of electoral rolls.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Engine recognizes page images with Tesseract. It is not safe for
// concurrent use; the pipeline drives it from a single goroutine.
type Engine struct {
	lang   string
	client *gosseract.Client
}

// New probes the installed engine for the requested language and returns an
// Engine bound to it. A missing engine or missing language pack yields
// ErrUnavailable: no page could ever succeed, so the caller should report
// this once and process nothing.
func New(lang string) (*Engine, error) {
	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for _, l := range langs {
		if l == lang {
			return &Engine{lang: lang}, nil
		}
	}
	return nil, fmt.Errorf("%w: language %q not installed (have %s)",
		ErrUnavailable, lang, strings.Join(langs, ", "))
}

// newClient builds a Tesseract client configured for the engine's language
// and the single-block segmentation mode.
func (e *Engine) newClient() (*gosseract.Client, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(e.lang); err != nil {
		client.Close()
		return nil, fmt.Errorf("set language %q: %w", e.lang, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		client.Close()
		return nil, fmt.Errorf("set page segmentation mode: %w", err)
	}
	return client, nil
}

// Recognize runs OCR over one page image (PNG bytes) and returns the
// recognized text, trimmed. The call is bounded by ctx: when the deadline
// expires first, Recognize returns ErrTimeout and abandons the in-flight
// recognition — the wedged client is closed by a reaper goroutine once the
// underlying call drains, and the next Recognize builds a fresh client, so
// a timed-out page never poisons the ones after it.
func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", err
	}
	if e.client == nil {
		client, err := e.newClient()
		if err != nil {
			return "", err
		}
		e.client = client
	}
	client := e.client

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		if err := client.SetImageFromBytes(image); err != nil {
			done <- outcome{err: fmt.Errorf("set image: %w", err)}
			return
		}
		text, err := client.Text()
		if err != nil {
			done <- outcome{err: fmt.Errorf("recognize: %w", err)}
			return
		}
		done <- outcome{text: strings.TrimSpace(text)}
	}()

	select {
	case out := <-done:
		return out.text, out.err
	case <-ctx.Done():
		// Tesseract cannot be interrupted mid-call. Detach the client
		// and reap it when the call eventually returns.
		e.client = nil
		go func() {
			<-done
			client.Close()
		}()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrTimeout
		}
		return "", ctx.Err()
	}
}

// Close releases the underlying Tesseract client. It is safe to call on an
// engine whose client was abandoned by a timeout, and safe to call twice.
func (e *Engine) Close() error {
	if e == nil || e.client == nil {
		return nil
	}
	client := e.client
	e.client = nil
	return client.Close()
}
