package sim

import "fmt"

// DefaultWindowSize is the bandwidth smoothing window used when none is configured.
const DefaultWindowSize = 5

// ThroughputStrategy is a rate-based selector: it averages the last WindowSize
// bandwidth samples and picks the highest level not exceeding that estimate.
type ThroughputStrategy struct {
	window   *SlidingWindow
	estimate float64
}

// NewThroughputStrategy creates a ThroughputStrategy with a FIFO window of windowSize samples.
func NewThroughputStrategy(windowSize int) (*ThroughputStrategy, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("%w: window_size must be >= 1, got %d", ErrInvalidConfig, windowSize)
	}
	return &ThroughputStrategy{window: NewSlidingWindow(windowSize)}, nil
}

func (t *ThroughputStrategy) Name() string { return StrategyThroughput }

func (t *ThroughputStrategy) Reset() {
	t.window.Reset()
	t.estimate = 0
}

// Estimate returns the smoothed throughput computed by the most recent call.
func (t *ThroughputStrategy) Estimate() float64 { return t.estimate }

// WindowSize returns the configured window capacity.
func (t *ThroughputStrategy) WindowSize() int { return t.window.Cap() }

func (t *ThroughputStrategy) SelectBitrate(bandwidth float64, state *ClientState) (float64, error) {
	t.window.Push(bandwidth)
	t.estimate = t.window.Mean()
	return highestAtMost(state.Config.Bitrates, t.estimate), nil
}
