package sim

import (
	"fmt"
	"math"
	"slices"
)

// ClientConfig is the immutable configuration of one streaming client.
type ClientConfig struct {
	Bitrates      []float64 `yaml:"bitrates"`       // ascending ladder in Mbps (all > 0)
	MaxBuffer     float64   `yaml:"max_buffer"`     // seconds (> 0)
	InitialBuffer float64   `yaml:"initial_buffer"` // seconds, within [0, MaxBuffer]
}

// SimConfig groups the playback model parameters of the step loop.
type SimConfig struct {
	SegmentDuration float64 `yaml:"segment_duration"` // seconds of video per segment (> 0)
	PlaybackRate    float64 `yaml:"playback_rate"`    // seconds of buffer consumed per tick (>= 0)
}

// DefaultSimConfig returns 2 s segments played at 1x.
func DefaultSimConfig() SimConfig {
	return SimConfig{SegmentDuration: 2.0, PlaybackRate: 1.0}
}

// ValidateLadder checks that bitrates is non-empty, strictly ascending and positive.
func ValidateLadder(bitrates []float64) error {
	if len(bitrates) == 0 {
		return fmt.Errorf("%w: no bitrate levels", ErrInvalidLadder)
	}
	for i, r := range bitrates {
		if !isFinitePositive(r) {
			return fmt.Errorf("%w: level %d is %g, must be a finite positive number", ErrInvalidLadder, i, r)
		}
		if i > 0 && r <= bitrates[i-1] {
			return fmt.Errorf("%w: levels must be strictly ascending, got %g after %g", ErrInvalidLadder, r, bitrates[i-1])
		}
	}
	return nil
}

// Validate checks the ladder and buffer bounds.
func (c ClientConfig) Validate() error {
	if err := ValidateLadder(c.Bitrates); err != nil {
		return err
	}
	if !isFinitePositive(c.MaxBuffer) {
		return fmt.Errorf("%w: max_buffer must be a finite positive number, got %g", ErrInvalidConfig, c.MaxBuffer)
	}
	if !(c.InitialBuffer >= 0 && c.InitialBuffer <= c.MaxBuffer) {
		return fmt.Errorf("%w: initial_buffer %g outside [0, %g]", ErrInvalidConfig, c.InitialBuffer, c.MaxBuffer)
	}
	return nil
}

// Lowest returns the smallest bitrate level. The ladder must be valid.
func (c ClientConfig) Lowest() float64 { return c.Bitrates[0] }

// Highest returns the largest bitrate level. The ladder must be valid.
func (c ClientConfig) Highest() float64 { return c.Bitrates[len(c.Bitrates)-1] }

// HasLevel reports whether r is one of the configured levels.
func (c ClientConfig) HasLevel(r float64) bool {
	return slices.Contains(c.Bitrates, r)
}

// Validate checks the playback model parameters.
func (s SimConfig) Validate() error {
	if !isFinitePositive(s.SegmentDuration) {
		return fmt.Errorf("%w: segment_duration must be a finite positive number, got %g", ErrInvalidConfig, s.SegmentDuration)
	}
	if !(s.PlaybackRate >= 0) || math.IsInf(s.PlaybackRate, 1) {
		return fmt.Errorf("%w: playback_rate must be a finite non-negative number, got %g", ErrInvalidConfig, s.PlaybackRate)
	}
	return nil
}

// isFinitePositive rejects NaN and infinities along with values <= 0.
func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
