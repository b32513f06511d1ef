package sim

import "math"

// DecisionStrategy selects the bitrate of the next segment.
// Implementations may keep history between calls; Reset clears it so a single
// instance can be replayed from scratch. SelectBitrate MUST return a level of
// state.Config.Bitrates or a non-nil error, and MUST NOT modify state.
type DecisionStrategy interface {
	Name() string
	SelectBitrate(bandwidth float64, state *ClientState) (float64, error)
	Reset()
}

// Delegator is implemented by strategies that forward each decision to another strategy.
// Active returns the strategy that made the most recent decision (nil before the first).
type Delegator interface {
	Active() DecisionStrategy
}

// Strategy names accepted by NewStrategy.
const (
	StrategyUtility    = "utility"
	StrategyThroughput = "throughput"
	StrategyPD         = "pd"
	StrategySelector   = "selector"
)

// highestAtMost returns the largest level <= limit, scanning from the top,
// or the lowest level if none qualifies.
func highestAtMost(levels []float64, limit float64) float64 {
	for i := len(levels) - 1; i >= 0; i-- {
		if levels[i] <= limit {
			return levels[i]
		}
	}
	return levels[0]
}

// closestLevel returns the level with minimum absolute distance to target.
// Equidistant candidates resolve to the lower level.
func closestLevel(levels []float64, target float64) float64 {
	best := levels[0]
	bestDist := math.Abs(levels[0] - target)
	for _, r := range levels[1:] {
		// strict: ascending scan keeps the lower level on ties
		if d := math.Abs(r - target); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}
