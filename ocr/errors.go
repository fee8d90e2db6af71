package ocr

import "errors"

// ErrNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// ErrUnavailable is returned by New when the recognition engine or the
// requested language data is missing. Nothing can be recognized in that
// state, so callers should treat it as fatal before processing any document.
var ErrUnavailable = errors.New("recognition engine or language data unavailable")

// ErrTimeout is returned by Recognize when the per-page deadline expires
// before recognition completes. The page should be skipped; the engine
// remains usable for the next page.
var ErrTimeout = errors.New("recognition deadline exceeded")
