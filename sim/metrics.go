// Reduces a trajectory of StepRecords to QoE summary statistics.

package sim

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MetricsSummary aggregates a completed run for reporting and comparison.
type MetricsSummary struct {
	Steps          int     `json:"steps"`
	AverageBitrate float64 `json:"average_bitrate_mbps"`
	BitrateStdDev  float64 `json:"bitrate_stddev_mbps"` // population standard deviation
	SwitchCount    int     `json:"bitrate_switch_count"`
	RebufferEvents int     `json:"rebuffering_events"` // records whose buffer is exactly 0
	StallCount     int     `json:"stall_count"`        // records whose update drove the buffer below 0
	AverageBuffer  float64 `json:"average_buffer_s"`
	MinimumBuffer  float64 `json:"minimum_buffer_s"`
}

// Summarize reduces records to a MetricsSummary. Returns ErrEmptyTrajectory for no records.
func Summarize(records []StepRecord) (MetricsSummary, error) {
	if len(records) == 0 {
		return MetricsSummary{}, ErrEmptyTrajectory
	}
	bitrates := make([]float64, len(records))
	buffers := make([]float64, len(records))
	m := MetricsSummary{Steps: len(records)}
	for i, r := range records {
		bitrates[i] = r.Bitrate
		buffers[i] = r.Occupancy
		if i > 0 && r.Bitrate != records[i-1].Bitrate {
			m.SwitchCount++
		}
		if r.Occupancy == 0 {
			m.RebufferEvents++
		}
		if r.Stalled {
			m.StallCount++
		}
	}
	if len(bitrates) > 1 {
		m.AverageBitrate, m.BitrateStdDev = stat.PopMeanStdDev(bitrates, nil)
	} else {
		m.AverageBitrate = bitrates[0]
	}
	m.AverageBuffer = stat.Mean(buffers, nil)
	m.MinimumBuffer = floats.Min(buffers)
	return m, nil
}

// Print writes a human-readable report of the summary.
func (m MetricsSummary) Print(w io.Writer, title string) {
	_, _ = fmt.Fprintf(w, "=== %s ===\n", title)
	_, _ = fmt.Fprintf(w, "Steps                : %d\n", m.Steps)
	_, _ = fmt.Fprintf(w, "Average Bitrate      : %.3f Mbps\n", m.AverageBitrate)
	_, _ = fmt.Fprintf(w, "Bitrate Std Dev      : %.3f Mbps\n", m.BitrateStdDev)
	_, _ = fmt.Fprintf(w, "Bitrate Switch Count : %d\n", m.SwitchCount)
	_, _ = fmt.Fprintf(w, "Rebuffering Events   : %d\n", m.RebufferEvents)
	_, _ = fmt.Fprintf(w, "Stalls               : %d\n", m.StallCount)
	_, _ = fmt.Fprintf(w, "Average Buffer       : %.3f s\n", m.AverageBuffer)
	_, _ = fmt.Fprintf(w, "Minimum Buffer       : %.3f s\n", m.MinimumBuffer)
}
