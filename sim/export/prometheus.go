package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/abr-sim/abr-sim/sim/experiment"
)

// SummaryMetrics holds the per-run gauges exported after a comparison.
// All series are labelled by scenario and strategy.
type SummaryMetrics struct {
	registry *prometheus.Registry

	AverageBitrate *prometheus.GaugeVec
	BitrateStdDev  *prometheus.GaugeVec
	Switches       *prometheus.GaugeVec
	RebufferEvents *prometheus.GaugeVec
	Stalls         *prometheus.GaugeVec
	MinimumBuffer  *prometheus.GaugeVec
	BufferLevel    *prometheus.HistogramVec
}

var runLabels = []string{"scenario", "strategy"}

// NewSummaryMetrics creates the metrics on a private registry.
func NewSummaryMetrics() *SummaryMetrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &SummaryMetrics{
		registry: reg,
		AverageBitrate: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "abr_average_bitrate_mbps",
			Help: "Mean selected bitrate over the run",
		}, runLabels),
		BitrateStdDev: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "abr_bitrate_stddev_mbps",
			Help: "Population standard deviation of the selected bitrate",
		}, runLabels),
		Switches: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "abr_bitrate_switches",
			Help: "Adjacent steps with a different bitrate",
		}, runLabels),
		RebufferEvents: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "abr_rebuffer_events",
			Help: "Steps that ended with an empty buffer",
		}, runLabels),
		Stalls: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "abr_stalls",
			Help: "Steps whose update drove the buffer below zero",
		}, runLabels),
		MinimumBuffer: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "abr_minimum_buffer_seconds",
			Help: "Lowest buffer occupancy reached",
		}, runLabels),
		BufferLevel: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "abr_buffer_seconds",
			Help:    "Buffer occupancy after each step",
			Buckets: []float64{0, 1, 2, 4, 6, 8, 12, 16, 20},
		}, runLabels),
	}
}

// Observe records one result's summary and per-step buffer levels.
func (m *SummaryMetrics) Observe(res experiment.Result) {
	labels := prometheus.Labels{"scenario": res.Scenario, "strategy": res.Strategy}
	m.AverageBitrate.With(labels).Set(res.Summary.AverageBitrate)
	m.BitrateStdDev.With(labels).Set(res.Summary.BitrateStdDev)
	m.Switches.With(labels).Set(float64(res.Summary.SwitchCount))
	m.RebufferEvents.With(labels).Set(float64(res.Summary.RebufferEvents))
	m.Stalls.With(labels).Set(float64(res.Summary.StallCount))
	m.MinimumBuffer.With(labels).Set(res.Summary.MinimumBuffer)
	hist := m.BufferLevel.With(labels)
	for _, rec := range res.Records {
		hist.Observe(rec.Occupancy)
	}
}

// Registry exposes the private registry, e.g. for gathering in tests.
func (m *SummaryMetrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the text exposition format to path, creating parent directories.
func (m *SummaryMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}
	return nil
}

// WritePrometheus observes every result and writes the exposition to path.
func WritePrometheus(path string, results []experiment.Result) error {
	m := NewSummaryMetrics()
	for _, res := range results {
		m.Observe(res)
	}
	return m.WriteTextfile(path)
}
