// Package validate checks GeoJSON files for out-of-range coordinates and
// unclosed polygon rings.
package validate

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/woozymasta/geocheck/internal/geo"

	"github.com/rs/zerolog/log"
)

const maxSamples = 3

// Options tune the diagnostics collected alongside the counts.
type Options struct {
	// MaxExamples caps the out-of-range pairs kept per file.
	MaxExamples int
}

// Result holds the counts for one file.
type Result struct {
	File           string    `json:"file" yaml:"file"`
	Features       int       `json:"features" yaml:"features"`
	Coords         int       `json:"coords" yaml:"coords"`
	OutOfRange     int       `json:"out_of_range" yaml:"out_of_range"`
	NotClosedRings int       `json:"not_closed_rings" yaml:"not_closed_rings"`
	Samples        []string  `json:"samples,omitempty" yaml:"samples,omitempty"`
	Examples       []Example `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// Example is an out-of-range pair and the index of the feature it came from.
type Example struct {
	Feature int    `json:"feature" yaml:"feature"`
	Lon     Degree `json:"lon" yaml:"lon"`
	Lat     Degree `json:"lat" yaml:"lat"`
}

// Degree is a coordinate component. JSON has no infinities, so non-finite
// values marshal as the strings "+Inf", "-Inf" and "NaN".
type Degree float64

func (d Degree) MarshalJSON() ([]byte, error) {
	s := strconv.FormatFloat(float64(d), 'g', -1, 64)
	if math.IsInf(float64(d), 0) || math.IsNaN(float64(d)) {
		s = strconv.Quote(s)
	}
	return []byte(s), nil
}

// HasFindings reports whether the file has out-of-range pairs or unclosed rings.
func (r Result) HasFindings() bool {
	return r.OutOfRange > 0 || r.NotClosedRings > 0
}

// FileError wraps a read or parse failure with the file it came from.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// File reads and checks a single GeoJSON file.
func File(path string, opts Options) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, &FileError{Path: path, Err: err}
	}

	doc, err := geo.Decode(data)
	if err != nil {
		return Result{}, &FileError{Path: path, Err: err}
	}

	res := Check(geo.NewFeatureCollection(doc), opts)
	res.File = filepath.Base(path)

	log.Debug().
		Str("file", res.File).
		Int("features", res.Features).
		Int("coords", res.Coords).
		Int("out_of_range", res.OutOfRange).
		Int("not_closed_rings", res.NotClosedRings).
		Msg("File checked")

	return res, nil
}

// Check counts pairs, out-of-range pairs and unclosed Polygon rings of a collection.
func Check(fc geo.FeatureCollection, opts Options) Result {
	res := Result{Features: len(fc.Features)}

	for idx, f := range fc.Features {
		if name := f.Name(); name != "" && len(res.Samples) < maxSamples {
			res.Samples = append(res.Samples, name)
		}

		for p := range geo.Coordinates(f.Geometry.Coordinates) {
			res.Coords++
			if p.InRange() {
				continue
			}
			res.OutOfRange++
			if len(res.Examples) < opts.MaxExamples {
				res.Examples = append(res.Examples, Example{Feature: idx, Lon: Degree(p.Lon), Lat: Degree(p.Lat)})
			}
		}

		if f.Geometry.Type != geo.GeometryPolygon || f.Geometry.Coordinates.Kind != geo.Array {
			continue
		}
		for _, ring := range f.Geometry.Coordinates.Items {
			if closed, ok := geo.RingClosed(ring); ok && !closed {
				res.NotClosedRings++
			}
		}
	}

	return res
}
