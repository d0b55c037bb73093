// Package report renders validation results.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/woozymasta/geocheck/internal/validate"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// CSVHeader is the first line of csv output.
const CSVHeader = "file,features,coords,out_of_range,not_closed_rings"

// CheckFormat reports an error for formats Write does not know. An empty
// format means csv.
func CheckFormat(format string) error {
	switch format {
	case "", FormatCSV, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown report format %q", format)
}

// Write renders results to w in the given format. An empty format means csv.
func Write(w io.Writer, format string, results []validate.Result) error {
	if err := CheckFormat(format); err != nil {
		return err
	}

	switch format {
	case "", FormatCSV:
		return writeCSV(w, results)
	case FormatJSON:
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	}

	return nil
}

// writeCSV prints one comma-joined row per result. File names are not quoted.
func writeCSV(w io.Writer, results []validate.Result) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, CSVHeader)
	for _, r := range results {
		fmt.Fprintf(bw, "%s,%d,%d,%d,%d\n", r.File, r.Features, r.Coords, r.OutOfRange, r.NotClosedRings)
	}

	return bw.Flush()
}
