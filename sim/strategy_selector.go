package sim

import (
	"fmt"
	"math"
)

// Selector defaults.
const (
	DefaultCriticalBuffer       = 4.0 // seconds
	DefaultFluctuationThreshold = 2.0 // Mbps
)

// SelectorConfig holds the switching thresholds of a SelectorStrategy.
type SelectorConfig struct {
	CriticalBuffer       float64 // below this occupancy the PD controller decides
	FluctuationThreshold float64 // above this bandwidth jump the throughput strategy decides
}

// SelectorStrategy is a meta-policy that forwards each decision to one of three
// delegates:
//   - occupancy < CriticalBuffer: PD controller
//   - |bandwidth - previous bandwidth| > FluctuationThreshold: throughput averaging
//   - otherwise: utility
//
// Only the chosen delegate is invoked, so delegate history advances only while it is active.
type SelectorStrategy struct {
	cfg        SelectorConfig
	utility    DecisionStrategy
	throughput DecisionStrategy
	pd         DecisionStrategy

	active   DecisionStrategy
	prevBW   float64
	hasPrevB bool
}

// NewSelectorStrategy wires the three delegates under the given thresholds.
func NewSelectorStrategy(cfg SelectorConfig, utility, throughput, pd DecisionStrategy) (*SelectorStrategy, error) {
	if cfg.CriticalBuffer < 0 {
		return nil, fmt.Errorf("%w: critical_buffer must be non-negative, got %g", ErrInvalidConfig, cfg.CriticalBuffer)
	}
	if cfg.FluctuationThreshold < 0 {
		return nil, fmt.Errorf("%w: fluctuation_threshold must be non-negative, got %g", ErrInvalidConfig, cfg.FluctuationThreshold)
	}
	if utility == nil || throughput == nil || pd == nil {
		return nil, fmt.Errorf("%w: selector needs all three delegates", ErrInvalidConfig)
	}
	return &SelectorStrategy{cfg: cfg, utility: utility, throughput: throughput, pd: pd}, nil
}

func (s *SelectorStrategy) Name() string { return StrategySelector }

func (s *SelectorStrategy) Active() DecisionStrategy { return s.active }

func (s *SelectorStrategy) Reset() {
	s.utility.Reset()
	s.throughput.Reset()
	s.pd.Reset()
	s.active = nil
	s.prevBW = 0
	s.hasPrevB = false
}

// Choose picks the delegate for the given conditions without invoking it.
func (s *SelectorStrategy) Choose(occupancy, bandwidth, prevBandwidth float64) DecisionStrategy {
	switch {
	case occupancy < s.cfg.CriticalBuffer:
		return s.pd
	case math.Abs(bandwidth-prevBandwidth) > s.cfg.FluctuationThreshold:
		return s.throughput
	default:
		return s.utility
	}
}

func (s *SelectorStrategy) SelectBitrate(bandwidth float64, state *ClientState) (float64, error) {
	prev := bandwidth
	if s.hasPrevB {
		prev = s.prevBW
	}
	s.prevBW, s.hasPrevB = bandwidth, true

	s.active = s.Choose(state.Occupancy, bandwidth, prev)
	r, err := s.active.SelectBitrate(bandwidth, state)
	if err != nil {
		return 0, fmt.Errorf("selector delegate %s: %w", s.active.Name(), err)
	}
	return r, nil
}
