package sim

import (
	"fmt"
	"math"
)

// UtilityStrategy is a buffer-occupancy Lyapunov (BOLA-style) selector.
// For each level r <= bandwidth it scores U(r) = ln(r) + Alpha*(occupancy/maxBuffer)
// and picks the maximizer. Ties resolve to the first maximizer in ascending order.
type UtilityStrategy struct {
	Alpha float64 // buffer-stability weight
}

// NewUtilityStrategy creates a UtilityStrategy with the given buffer weight.
func NewUtilityStrategy(alpha float64) *UtilityStrategy {
	return &UtilityStrategy{Alpha: alpha}
}

func (u *UtilityStrategy) Name() string { return StrategyUtility }

func (u *UtilityStrategy) Reset() {}

// Utility returns U(r) for the given occupancy. r must be positive.
func (u *UtilityStrategy) Utility(r float64, state *ClientState) (float64, error) {
	if r <= 0 {
		return 0, fmt.Errorf("%w: utility undefined for bitrate %g", ErrInvalidLadder, r)
	}
	return math.Log(r) + u.Alpha*state.FillRatio(), nil
}

// SelectBitrate returns the utility-maximizing level within bandwidth, or the lowest level.
func (u *UtilityStrategy) SelectBitrate(bandwidth float64, state *ClientState) (float64, error) {
	levels := state.Config.Bitrates
	best, bestU := 0.0, math.Inf(-1)
	found := false
	for _, r := range levels {
		if r > bandwidth {
			continue
		}
		score, err := u.Utility(r, state)
		if err != nil {
			return 0, err
		}
		if !found || score > bestU {
			best, bestU, found = r, score, true
		}
	}
	if !found {
		return levels[0], nil
	}
	return best, nil
}
