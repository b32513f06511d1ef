package sim

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_KnownTrajectory(t *testing.T) {
	// GIVEN a hand-built trajectory
	records := []StepRecord{
		{Bitrate: 1, Occupancy: 0, Stalled: true},
		{Bitrate: 2, Occupancy: 1},
		{Bitrate: 2, Occupancy: 0},
		{Bitrate: 4, Occupancy: 3},
	}

	// WHEN summarized
	m, err := Summarize(records)
	require.NoError(t, err)

	// THEN
	assert.Equal(t, 4, m.Steps)
	assert.InDelta(t, 2.25, m.AverageBitrate, 1e-12)
	assert.InDelta(t, math.Sqrt(4.75/4), m.BitrateStdDev, 1e-12)
	assert.Equal(t, 2, m.SwitchCount)
	assert.Equal(t, 2, m.RebufferEvents, "buffer exactly 0 twice")
	assert.Equal(t, 1, m.StallCount)
	assert.InDelta(t, 1.0, m.AverageBuffer, 1e-12)
	assert.Equal(t, 0.0, m.MinimumBuffer)
}

func TestSummarize_SingleRecord(t *testing.T) {
	m, err := Summarize([]StepRecord{{Bitrate: 6, Occupancy: 4}})
	require.NoError(t, err)
	assert.Equal(t, 6.0, m.AverageBitrate)
	assert.Equal(t, 0.0, m.BitrateStdDev)
	assert.Equal(t, 0, m.SwitchCount)
	assert.Equal(t, 0, m.RebufferEvents)
}

func TestSummarize_Empty_DomainError(t *testing.T) {
	_, err := Summarize(nil)
	assert.ErrorIs(t, err, ErrEmptyTrajectory)
	_, err = Summarize([]StepRecord{})
	assert.ErrorIs(t, err, ErrEmptyTrajectory)
}

func TestMetricsSummary_Print(t *testing.T) {
	var buf bytes.Buffer
	MetricsSummary{Steps: 3, AverageBitrate: 4, SwitchCount: 1, RebufferEvents: 2}.Print(&buf, "Constant - throughput")
	out := buf.String()
	assert.Contains(t, out, "=== Constant - throughput ===")
	assert.Contains(t, out, "Average Bitrate      : 4.000 Mbps")
	assert.Contains(t, out, "Bitrate Switch Count : 1")
	assert.Contains(t, out, "Rebuffering Events   : 2")
}
