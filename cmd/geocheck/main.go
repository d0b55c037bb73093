package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/woozymasta/geocheck/internal/config"
	"github.com/woozymasta/geocheck/internal/logger"
	"github.com/woozymasta/geocheck/internal/metrics"
	"github.com/woozymasta/geocheck/internal/report"
	"github.com/woozymasta/geocheck/internal/validate"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

const defaultMaxExamples = 20

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string `short:"c" long:"config"   env:"GEOCHECK_CONFIG"  description:"Optional YAML file with defaults for the options below"`
	Pattern     string `short:"p" long:"pattern"  env:"GEOCHECK_PATTERN" description:"Glob for input files (default: *.geojson)"`
	Format      string `short:"f" long:"format"   env:"GEOCHECK_FORMAT"  description:"Report format (default: csv)" choice:"csv" choice:"json" choice:"yaml"`
	Examples    *int   `short:"e" long:"examples" description:"Out-of-range pairs kept per file and logged as warnings (default: 20)"`
	JournalFile string `short:"j" long:"journal"  env:"GEOCHECK_JOURNAL" description:"Append per-file results as JSON lines to this file"`
	MetricsFile string `short:"m" long:"metrics"  env:"GEOCHECK_METRICS" description:"Write Prometheus textfile metrics to this path"`

	Args struct {
		Dir string `positional-arg-name:"directory" description:"Directory with GeoJSON files (default: data next to the binary's directory)"`
	} `positional-args:"yes"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	rest, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if len(rest) > 0 {
		fmt.Fprintf(os.Stderr, "Error: expected at most one directory, got extra %q\n", rest)
		os.Exit(1)
	}

	opts.Logger.Setup()

	code, err := run(opts, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Msg("Validation aborted")
	}

	os.Exit(code)
}

// run performs one batch and returns the process exit code.
func run(opts Options, stdout io.Writer) (int, error) {
	cfg := &config.Config{}
	if opts.ConfigFile != "" {
		var err error
		if cfg, err = config.Load(opts.ConfigFile); err != nil {
			return 0, fmt.Errorf("load config: %w", err)
		}
	}

	dir := firstNonEmpty(opts.Args.Dir, cfg.Dir)
	if dir == "" {
		dir = defaultDataDir()
	}
	pattern := firstNonEmpty(opts.Pattern, cfg.Pattern, validate.DefaultPattern)
	format := firstNonEmpty(opts.Format, cfg.Format, report.FormatCSV)
	if err := report.CheckFormat(format); err != nil {
		return 0, err
	}
	journalFile := firstNonEmpty(opts.JournalFile, cfg.JournalFile)
	metricsFile := firstNonEmpty(opts.MetricsFile, cfg.MetricsFile)

	maxExamples := defaultMaxExamples
	switch {
	case opts.Examples != nil:
		maxExamples = *opts.Examples
	case cfg.MaxExamples != nil:
		maxExamples = *cfg.MaxExamples
	}

	files, err := validate.Discover(dir, pattern)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		if pattern == validate.DefaultPattern {
			fmt.Fprintf(stdout, "No .geojson files found in %s\n", dir)
		} else {
			fmt.Fprintf(stdout, "No files matching %s found in %s\n", pattern, dir)
		}
		return validate.ExitNoFiles, nil
	}

	log.Debug().
		Str("dir", dir).
		Str("pattern", pattern).
		Int("files", len(files)).
		Msg("Starting validation")

	results, err := validate.Run(files, validate.Options{MaxExamples: maxExamples})
	if err != nil {
		return 0, err
	}

	if err := report.Write(stdout, format, results); err != nil {
		return 0, fmt.Errorf("write report: %w", err)
	}

	for _, r := range results {
		for _, ex := range r.Examples {
			log.Warn().
				Str("file", r.File).
				Int("feature", ex.Feature).
				Float64("lon", float64(ex.Lon)).
				Float64("lat", float64(ex.Lat)).
				Msg("Coordinate out of range")
		}
	}

	if journalFile != "" {
		writeJournal(journalFile, results)
	}

	if metricsFile != "" {
		c := metrics.New()
		c.Observe(results, time.Now())
		if err := c.WriteFile(metricsFile); err != nil {
			log.Error().Err(err).Str("path", metricsFile).Msg("Failed to write metrics")
		}
	}

	return validate.ExitCode(results), nil
}

func writeJournal(path string, results []validate.Result) {
	j, err := report.OpenJournal(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to open journal")
		return
	}
	defer func() {
		if closeErr := j.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close journal")
		}
	}()

	j.Record(results)
	log.Debug().Str("path", path).Str("run_id", j.RunID).Msg("Journal updated")
}

// defaultDataDir is the data directory beside the one holding the binary.
func defaultDataDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "data"
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(filepath.Dir(exe)), "data")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
