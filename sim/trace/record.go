// Package trace provides per-step decision recording for bitrate strategy analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// DecisionRecord captures a single bitrate decision and its buffer outcome.
type DecisionRecord struct {
	Step      int
	Strategy  string // strategy that made the decision
	Bandwidth float64
	Bitrate   float64
	Occupancy float64 // buffer after the step
	Stalled   bool
}

// StrategyChangeRecord captures a hand-over between strategies, as made by a selector.
type StrategyChangeRecord struct {
	Step int
	From string
	To   string
}
