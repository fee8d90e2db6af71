// Command rollscan searches scanned electoral roll documents for a list of
// target names.
//
// Usage:
//
//	rollscan -dir DIR -names FILE [-threshold N] [-o OUT] [-no-cache] [-verbose] [-log FILE]
//
// The batch always runs to completion: individual documents that fail are
// reported in the summary, not fatal. The process exits 1 only when the run
// cannot start at all - bad configuration, missing OCR engine or rasterizer,
// unusable input paths, or a defective names file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"rollscan"
	"rollscan/cache"
	"rollscan/config"
	"rollscan/export"
	"rollscan/ingest"
	"rollscan/ocr"
	"rollscan/pathsec"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginTop(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(0, 2)
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		flagDir       string
		flagNames     string
		flagThreshold int
		flagOut       string
		flagNoCache   bool
		flagVerbose   bool
		flagLog       string
	)
	flag.StringVar(&flagDir, "dir", "", "directory holding the scanned roll PDFs (required)")
	flag.StringVar(&flagNames, "names", "", "UTF-8 file with one target name per line (required)")
	flag.IntVar(&flagThreshold, "threshold", -1, "minimum fuzzy match score 0-100 (overrides FUZZY_THRESHOLD)")
	flag.StringVar(&flagOut, "o", "", "write results to this file (.json or .csv)")
	flag.BoolVar(&flagNoCache, "no-cache", false, "disable the per-document result cache")
	flag.BoolVar(&flagVerbose, "verbose", false, "debug logging")
	flag.StringVar(&flagLog, "log", "", "also append JSON logs to this file")
	flag.Parse()

	if flagDir == "" || flagNames == "" {
		fmt.Fprintln(os.Stderr, "rollscan: -dir and -names are required")
		flag.Usage()
		return 1
	}

	logger, err := newLogger(flagVerbose, flagLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "rollscan: %v\n", err)
		return 1
	}
	defer logger.Sync()
	log := logger.Sugar()

	cfg, err := config.FromEnv()
	if err != nil {
		return fatal(log, "configuration", err)
	}
	if flagThreshold >= 0 {
		cfg.Threshold = flagThreshold
		if err := cfg.Validate(); err != nil {
			return fatal(log, "configuration", err)
		}
	}

	dir, err := pathsec.ResolveDir(flagDir, "")
	if err != nil {
		return fatal(log, "input directory", err)
	}
	namesPath, err := pathsec.ResolveFile(flagNames, "")
	if err != nil {
		return fatal(log, "names file", err)
	}

	queries, err := rollscan.LoadNames(namesPath, cfg)
	if err != nil {
		return fatal(log, "names file", err)
	}

	if err := ingest.CheckRasterizer(ingest.Options{}); err != nil {
		return fatal(log, "rasterizer", err)
	}

	eng, err := ocr.New(cfg.Lang)
	if err != nil {
		if errors.Is(err, ocr.ErrNotEnabled) {
			fmt.Fprintln(os.Stderr, `rollscan: built without OCR support; rebuild with "-tags ocr"`)
		}
		return fatal(log, "ocr engine", err)
	}
	defer eng.Close()

	pipe := rollscan.New(cfg, log, eng)
	if !flagNoCache {
		c, err := cache.New(cacheDir(), 0)
		if err != nil {
			// A broken cache directory degrades to uncached runs.
			log.Warnw("result cache disabled", "error", err)
		} else {
			pipe.Cache = c
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infow("starting batch", "dir", dir, "names", len(queries), "threshold", cfg.Threshold)
	report, err := pipe.Run(ctx, dir, queries)
	if err != nil {
		return fatal(log, "batch", err)
	}

	render(report)

	if flagOut != "" {
		if err := export.Write(report.Results, flagOut); err != nil {
			return fatal(log, "export", err)
		}
		fmt.Printf("Results written to %s\n", flagOut)
	}
	return 0
}

func fatal(log *zap.SugaredLogger, stage string, err error) int {
	log.Errorw("fatal", "stage", stage, "error", err)
	fmt.Fprintf(os.Stderr, "rollscan: %s: %v\n", stage, err)
	return 1
}

// newLogger builds a console logger on stderr, plus a JSON file core when
// logPath is set.
func newLogger(verbose bool, logPath string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), level),
	}

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores,
			zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(f), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// cacheDir picks the per-user cache location, falling back to a dot
// directory in the working directory when the platform gives us nothing.
func cacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".rollscan-cache"
	}
	return filepath.Join(base, "rollscan")
}

func render(report *rollscan.Report) {
	fmt.Println(titleStyle.Render("Search results"))

	if len(report.Results) == 0 {
		fmt.Println("No matches found.")
	} else {
		fmt.Println(headerStyle.Render(fmt.Sprintf("%-5s %-25s %-25s %-25s %-20s %s",
			"Score", "Query", "Name", "Guardian", "File", "Page")))
		for _, r := range report.Results {
			fmt.Println(matchStyle.Render(fmt.Sprintf("%-5d %-25s %-25s %-25s %-20s %d",
				r.Score, r.QueryName, r.Matched.Name, r.Matched.GuardianName, r.SourceFile, r.PageNumber)))
		}
	}

	s := report.Stats
	summary := fmt.Sprintf("Files processed: %d\nFiles failed:    %d\nPages processed: %d\nPages skipped:   %d\nMatches found:   %d",
		s.FilesProcessed, s.FilesFailed, s.PagesProcessed, s.PagesSkipped, s.MatchesFound)
	fmt.Println(summaryStyle.Render(summary))

	for _, e := range s.Errors {
		fmt.Println(errorStyle.Render("error: " + e.String()))
	}
}
