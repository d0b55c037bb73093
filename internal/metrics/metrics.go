// Package metrics exports validation results as a Prometheus textfile,
// for pickup by node_exporter's textfile collector.
package metrics

import (
	"time"

	"github.com/woozymasta/geocheck/internal/validate"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "geocheck"

// Collector holds the gauges of one run on a private registry.
type Collector struct {
	Registry *prometheus.Registry

	features   *prometheus.GaugeVec
	coords     *prometheus.GaugeVec
	outOfRange *prometheus.GaugeVec
	unclosed   *prometheus.GaugeVec
	files      prometheus.Gauge
	lastRun    prometheus.Gauge
}

// New registers the gauges on a fresh registry.
func New() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),

		features: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "file",
			Name:      "features",
			Help:      "Features in a GeoJSON file",
		}, []string{"file"}),

		coords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "file",
			Name:      "coordinates",
			Help:      "Coordinate pairs in a GeoJSON file",
		}, []string{"file"}),

		outOfRange: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "file",
			Name:      "out_of_range",
			Help:      "Coordinate pairs outside WGS84 bounds",
		}, []string{"file"}),

		unclosed: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "file",
			Name:      "unclosed_rings",
			Help:      "Polygon rings whose first and last positions differ",
		}, []string{"file"}),

		files: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "files",
			Help:      "GeoJSON files checked in the last run",
		}),

		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
	}

	c.Registry.MustRegister(c.features, c.coords, c.outOfRange, c.unclosed, c.files, c.lastRun)
	return c
}

// Observe sets the gauges from results of a run finished at now.
func (c *Collector) Observe(results []validate.Result, now time.Time) {
	for _, r := range results {
		c.features.WithLabelValues(r.File).Set(float64(r.Features))
		c.coords.WithLabelValues(r.File).Set(float64(r.Coords))
		c.outOfRange.WithLabelValues(r.File).Set(float64(r.OutOfRange))
		c.unclosed.WithLabelValues(r.File).Set(float64(r.NotClosedRings))
	}
	c.files.Set(float64(len(results)))
	c.lastRun.Set(float64(now.Unix()))
}

// WriteFile writes the registry to path in the text exposition format.
func (c *Collector) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, c.Registry)
}
