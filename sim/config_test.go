package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLadder(t *testing.T) {
	assert.NoError(t, ValidateLadder(testLadder))
	assert.NoError(t, ValidateLadder([]float64{0.3}))
	assert.ErrorIs(t, ValidateLadder(nil), ErrInvalidLadder)
	assert.ErrorIs(t, ValidateLadder([]float64{1, 3, 2}), ErrInvalidLadder)
	assert.ErrorIs(t, ValidateLadder([]float64{-1, 2}), ErrInvalidLadder)
	assert.ErrorIs(t, ValidateLadder([]float64{1, math.NaN(), 4}), ErrInvalidLadder)
	assert.ErrorIs(t, ValidateLadder([]float64{1, math.Inf(1)}), ErrInvalidLadder)
}

func TestClientConfig_Validate_NonFiniteBuffer(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1)} {
		c := ClientConfig{Bitrates: testLadder, MaxBuffer: bad}
		assert.ErrorIs(t, c.Validate(), ErrInvalidConfig, "max_buffer=%v", bad)
	}
	c := ClientConfig{Bitrates: testLadder, MaxBuffer: 20, InitialBuffer: math.NaN()}
	assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, SimConfig{SegmentDuration: math.NaN(), PlaybackRate: 1}.Validate(), ErrInvalidConfig)
	assert.ErrorIs(t, SimConfig{SegmentDuration: 2, PlaybackRate: math.NaN()}.Validate(), ErrInvalidConfig)
}

func TestClientConfig_Levels(t *testing.T) {
	c := testClient(0)
	assert.Equal(t, 1.0, c.Lowest())
	assert.Equal(t, 12.0, c.Highest())
	assert.True(t, c.HasLevel(6))
	assert.False(t, c.HasLevel(5))
}

func TestClientState_Reset(t *testing.T) {
	st := NewClientState(testClient(5))
	assert.Equal(t, 5.0, st.Occupancy)
	assert.False(t, st.HasDownloaded())

	st.Occupancy, st.PrevDownloadTime, st.Step = 1, 0.8, 7
	st.Reset()

	assert.Equal(t, 5.0, st.Occupancy)
	assert.Equal(t, 0, st.Step)
	assert.False(t, st.HasDownloaded())
	assert.Equal(t, 0.25, st.FillRatio())
}

func TestSimConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultSimConfig().Validate())
	assert.NoError(t, SimConfig{SegmentDuration: 4, PlaybackRate: 0}.Validate())
	assert.ErrorIs(t, SimConfig{SegmentDuration: -1, PlaybackRate: 1}.Validate(), ErrInvalidConfig)
}
