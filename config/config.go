// Package config holds the rollscan configuration surface.
//
// A Config is constructed once at process start - from defaults, the
// environment, or both - validated, and then passed explicitly into every
// component constructor. No package reads configuration from global state.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults match the tuning the tool ships with.
const (
	DefaultDPI         = 350
	DefaultLang        = "ben"
	DefaultPageTimeout = 30 * time.Second
	DefaultThreshold   = 82

	DefaultMaxPDFSizeMB       = 50
	DefaultMaxPDFPages        = 100
	DefaultMaxNamesFileSizeMB = 10
	DefaultMaxNames           = 1000
)

// Config carries every knob the pipeline consumes. Treat a constructed
// Config as immutable; adjust fields before handing it to components.
type Config struct {
	// DPI is the page rasterization resolution.
	DPI int
	// Lang is the Tesseract language identifier.
	Lang string
	// PageTimeout bounds a single page's recognition call.
	PageTimeout time.Duration
	// Threshold is the minimum fuzzy score (0-100) declared a match.
	Threshold int

	// MaxPDFSizeMB caps a single document file.
	MaxPDFSizeMB int
	// MaxPDFPages caps a single document's declared page count.
	MaxPDFPages int
	// MaxNamesFileSizeMB caps the names list file.
	MaxNamesFileSizeMB int
	// MaxNames caps the number of distinct query names.
	MaxNames int
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		DPI:                DefaultDPI,
		Lang:               DefaultLang,
		PageTimeout:        DefaultPageTimeout,
		Threshold:          DefaultThreshold,
		MaxPDFSizeMB:       DefaultMaxPDFSizeMB,
		MaxPDFPages:        DefaultMaxPDFPages,
		MaxNamesFileSizeMB: DefaultMaxNamesFileSizeMB,
		MaxNames:           DefaultMaxNames,
	}
}

// FromEnv returns the default configuration with environment overrides
// applied. A .env file in the working directory is loaded first when
// present; real environment variables win over it. Unset variables leave
// the default in place; malformed values are an error, not a silent
// fallback.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	var err error

	if cfg.DPI, err = intEnv("OCR_DPI", cfg.DPI); err != nil {
		return cfg, err
	}
	if v := os.Getenv("OCR_LANG"); v != "" {
		cfg.Lang = v
	}
	seconds, err := intEnv("OCR_PAGE_TIMEOUT_SECONDS", int(cfg.PageTimeout/time.Second))
	if err != nil {
		return cfg, err
	}
	cfg.PageTimeout = time.Duration(seconds) * time.Second
	if cfg.Threshold, err = intEnv("FUZZY_THRESHOLD", cfg.Threshold); err != nil {
		return cfg, err
	}
	if cfg.MaxPDFSizeMB, err = intEnv("MAX_PDF_SIZE_MB", cfg.MaxPDFSizeMB); err != nil {
		return cfg, err
	}
	if cfg.MaxPDFPages, err = intEnv("MAX_PDF_PAGES", cfg.MaxPDFPages); err != nil {
		return cfg, err
	}
	if cfg.MaxNamesFileSizeMB, err = intEnv("MAX_NAMES_FILE_SIZE_MB", cfg.MaxNamesFileSizeMB); err != nil {
		return cfg, err
	}
	if cfg.MaxNames, err = intEnv("MAX_SEARCH_NAMES", cfg.MaxNames); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges the rest of the pipeline assumes.
func (c Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("threshold %d out of range [0, 100]", c.Threshold)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", c.DPI)
	}
	if c.PageTimeout <= 0 {
		return fmt.Errorf("page timeout must be positive, got %v", c.PageTimeout)
	}
	if c.Lang == "" {
		return fmt.Errorf("ocr language must not be empty")
	}
	for name, v := range map[string]int{
		"max pdf size":        c.MaxPDFSizeMB,
		"max pdf pages":       c.MaxPDFPages,
		"max names file size": c.MaxNamesFileSizeMB,
		"max names":           c.MaxNames,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive, got %d", name, v)
		}
	}
	return nil
}

// MaxPDFBytes returns the document size cap in bytes.
func (c Config) MaxPDFBytes() int64 {
	return int64(c.MaxPDFSizeMB) << 20
}

// MaxNamesFileBytes returns the names file size cap in bytes.
func (c Config) MaxNamesFileBytes() int64 {
	return int64(c.MaxNamesFileSizeMB) << 20
}

// intEnv parses an integer environment variable, returning fallback when the
// variable is unset or empty.
func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return n, nil
}
