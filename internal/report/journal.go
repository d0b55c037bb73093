package report

import (
	"bufio"
	"os"
	"strings"

	"github.com/woozymasta/geocheck/internal/validate"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Journal appends one JSON line per checked file to a log kept next to the data.
type Journal struct {
	file   *os.File
	buf    *bufio.Writer
	logger zerolog.Logger
	RunID  string
}

// OpenJournal opens path for appending, creating it if needed.
func OpenJournal(path string) (*Journal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	buf := bufio.NewWriter(f)
	return &Journal{
		file:   f,
		buf:    buf,
		RunID:  runID,
		logger: zerolog.New(buf).With().Timestamp().Str("run_id", runID).Logger(),
	}, nil
}

// Record writes the results of a run.
func (j *Journal) Record(results []validate.Result) {
	for _, r := range results {
		samples := "n/a"
		if len(r.Samples) > 0 {
			samples = strings.Join(r.Samples, ", ")
		}

		j.logger.Log().
			Str("file", r.File).
			Int("features", r.Features).
			Int("coords", r.Coords).
			Int("out_of_range", r.OutOfRange).
			Int("not_closed_rings", r.NotClosedRings).
			Str("samples", samples).
			Send()
	}
}

// Close flushes pending lines and closes the file. A failed write surfaces
// here even though Record itself never returns one.
func (j *Journal) Close() error {
	if err := j.buf.Flush(); err != nil {
		_ = j.file.Close()
		return err
	}
	return j.file.Close()
}
