package validate

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/geocheck/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Result
	}{
		{
			name:    "empty features",
			content: `{"type": "FeatureCollection", "features": []}`,
			want:    Result{Features: 0, Coords: 0, OutOfRange: 0, NotClosedRings: 0},
		},
		{
			name:    "missing features",
			content: `{"type": "FeatureCollection"}`,
			want:    Result{},
		},
		{
			name:    "point out of range",
			content: `{"features": [{"geometry": {"type": "Point", "coordinates": [200, 45]}}]}`,
			want: Result{
				Features: 1, Coords: 1, OutOfRange: 1,
				Examples: []Example{{Feature: 0, Lon: 200, Lat: 45}},
			},
		},
		{
			name:    "overflowing coordinate is out of range",
			content: `{"features": [{"geometry": {"type": "Point", "coordinates": [1e400, 0]}}]}`,
			want: Result{
				Features: 1, Coords: 1, OutOfRange: 1,
				Examples: []Example{{Feature: 0, Lon: Degree(math.Inf(1)), Lat: 0}},
			},
		},
		{
			name:    "closed polygon",
			content: `{"features": [{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1],[0,0]]]}}]}`,
			want:    Result{Features: 1, Coords: 4},
		},
		{
			name:    "unclosed polygon",
			content: `{"features": [{"geometry": {"type": "Polygon", "coordinates": [[[0,0],[1,0],[1,1]]]}}]}`,
			want:    Result{Features: 1, Coords: 3, NotClosedRings: 1},
		},
		{
			name: "polygon with hole, one ring open, one empty",
			content: `{"features": [{"geometry": {"type": "Polygon", "coordinates": [
				[[0,0],[10,0],[10,10],[0,0]],
				[[1,1],[2,1],[2,2]],
				[]
			]}}]}`,
			want: Result{Features: 1, Coords: 7, NotClosedRings: 1},
		},
		{
			name:    "unclosed line string is not a ring",
			content: `{"features": [{"geometry": {"type": "LineString", "coordinates": [[0,0],[1,0],[1,1]]}}]}`,
			want:    Result{Features: 1, Coords: 3},
		},
		{
			name:    "multipolygon rings are not checked",
			content: `{"features": [{"geometry": {"type": "MultiPolygon", "coordinates": [[[[0,0],[1,0],[1,1]]]]}}]}`,
			want:    Result{Features: 1, Coords: 3},
		},
		{
			name: "malformed geometry tolerated",
			content: `{"features": [
				{"type": "Feature"},
				{"geometry": {"type": "Polygon"}},
				{"geometry": {"type": "Polygon", "coordinates": []}},
				{"geometry": {"type": "Polygon", "coordinates": [5, "x"]}},
				{"geometry": {"coordinates": [1, "a"]}}
			]}`,
			want: Result{Features: 5},
		},
		{
			name:    "repeated coordinates key counts once",
			content: `{"features": [{"geometry": {"type": "MultiPoint", "coordinates": [[1, 2]], "coordinates": [[3, 4], [500, 0]]}}]}`,
			want: Result{
				Features: 1, Coords: 2, OutOfRange: 1,
				Examples: []Example{{Feature: 0, Lon: 500, Lat: 0}},
			},
		},
		{
			name: "names sampled",
			content: `{"features": [
				{"properties": {"name": "A"}, "geometry": {"type": "Point", "coordinates": [1, 1]}},
				{"properties": {"Name": "B"}, "geometry": {"type": "Point", "coordinates": [1, 1]}},
				{"properties": {}, "geometry": {"type": "Point", "coordinates": [1, 1]}},
				{"properties": {"ident": "C"}, "geometry": {"type": "Point", "coordinates": [1, 1]}},
				{"properties": {"name": "D"}, "geometry": {"type": "Point", "coordinates": [1, 1]}}
			]}`,
			want: Result{Features: 5, Coords: 5, Samples: []string{"A", "B", "C"}},
		},
	}

	dir := t.TempDir()
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name := filepath.Base(t.Name()) + ".geojson"
			path := writeFixture(t, dir, name, tt.content)

			got, err := File(path, Options{MaxExamples: 20})
			require.NoError(t, err, "case %d", i)

			tt.want.File = name
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileBoundsCountedOncePerPair(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "bounds.geojson", `{"features": [
		{"geometry": {"type": "MultiPoint", "coordinates": [
			[180, 90], [-180, -90], [0, 0],
			[181, 0], [-181, 0], [0, 91], [0, -91], [500, 500]
		]}}
	]}`)

	got, err := File(path, Options{MaxExamples: 2})
	require.NoError(t, err)

	assert.Equal(t, 8, got.Coords)
	assert.Equal(t, 5, got.OutOfRange)
	assert.Equal(t, []Example{{Feature: 0, Lon: 181, Lat: 0}, {Feature: 0, Lon: -181, Lat: 0}}, got.Examples)
	assert.True(t, got.HasFindings())
}

func TestFileIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "airspace.geojson", `{"features": [
		{"properties": {"name": "TMA"}, "geometry": {"type": "Polygon", "coordinates": [[[-99,19],[-98,19],[-98,20]]]}},
		{"geometry": {"type": "Point", "coordinates": [19.4, -99.1]}}
	]}`)

	first, err := File(path, Options{MaxExamples: 20})
	require.NoError(t, err)
	second, err := File(path, Options{MaxExamples: 20})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, first.NotClosedRings)
	assert.Equal(t, 1, first.OutOfRange)
}

func TestFileErrors(t *testing.T) {
	dir := t.TempDir()

	t.Run("parse error", func(t *testing.T) {
		path := writeFixture(t, dir, "broken.geojson", `{"features": [`)

		_, err := File(path, Options{})
		require.Error(t, err)

		var ferr *FileError
		require.True(t, errors.As(err, &ferr))
		assert.Equal(t, path, ferr.Path)

		var perr *geo.ParseError
		assert.True(t, errors.As(err, &perr))
		assert.Contains(t, err.Error(), "broken.geojson")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := File(filepath.Join(dir, "nope.geojson"), Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})
}
