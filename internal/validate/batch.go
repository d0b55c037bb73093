package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"
)

// DefaultPattern matches the files picked up from the data directory.
const DefaultPattern = "*.geojson"

// Process exit codes.
const (
	ExitOK       = 0
	ExitNoFiles  = 1
	ExitFindings = 2
)

// Discover lists entries of dir (non-recursive) whose names match pattern,
// sorted by name. dir is taken literally, only pattern is glob syntax.
// A missing dir yields no files.
func Discover(dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if ok, _ := filepath.Match(pattern, e.Name()); ok {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}

// Run checks files in order. The first read or parse error aborts the batch
// and no results are returned.
func Run(files []string, opts Options) ([]Result, error) {
	results := make([]Result, 0, len(files))

	for _, path := range files {
		res, err := File(path, opts)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	log.Info().
		Int("files", len(results)).
		Int("with_findings", countFindings(results)).
		Msg("Batch checked")

	return results, nil
}

// ExitCode maps results to ExitOK or ExitFindings.
func ExitCode(results []Result) int {
	if countFindings(results) > 0 {
		return ExitFindings
	}
	return ExitOK
}

func countFindings(results []Result) int {
	n := 0
	for _, r := range results {
		if r.HasFindings() {
			n++
		}
	}
	return n
}
