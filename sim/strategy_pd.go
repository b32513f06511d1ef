package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// PDConfig parameterizes the PD-controller strategy.
type PDConfig struct {
	SegmentDuration float64 // T, seconds (> 0)
	Eta             float64 // aggressiveness (> 0)
	BK1             float64 // lower buffer threshold, seconds
	BK2             float64 // upper buffer threshold, seconds (> BK1)
	WindowSize      int     // bandwidth smoothing window (>= 1)

	// StrictFirstStep makes an adapting call before any segment was downloaded fail
	// with ErrNoDownloadHistory. When false the previous download time is seeded with T.
	StrictFirstStep bool
}

// PDStrategy adapts the bitrate with a proportional-derivative controller on the
// buffer level. Inside [BK1, BK2] it holds the previous bitrate; outside it moves
// the previous bitrate by
//
//	dr = (kp*e + kd*(T - tau)/tau) / (T*beta)
//
// where e is the distance to the violated threshold, tau the previous download
// time and beta the smoothed bandwidth, then snaps to the closest level.
type PDStrategy struct {
	cfg    PDConfig
	kd, kp float64

	window      *SlidingWindow
	prevBitrate float64 // 0 until the first decision; then always a ladder level
	estimate    float64
}

// NewPDStrategy derives the controller gains and returns the strategy.
// Returns ErrNoStableGain when no kd in (0, T) satisfies the stability bound.
func NewPDStrategy(cfg PDConfig) (*PDStrategy, error) {
	if cfg.SegmentDuration <= 0 {
		return nil, fmt.Errorf("%w: segment duration must be positive, got %g", ErrInvalidConfig, cfg.SegmentDuration)
	}
	if cfg.Eta <= 0 {
		return nil, fmt.Errorf("%w: eta must be positive, got %g", ErrInvalidConfig, cfg.Eta)
	}
	if cfg.BK1 < 0 || cfg.BK1 >= cfg.BK2 {
		return nil, fmt.Errorf("%w: need 0 <= bk1 < bk2, got bk1=%g bk2=%g", ErrInvalidConfig, cfg.BK1, cfg.BK2)
	}
	if cfg.WindowSize < 1 {
		return nil, fmt.Errorf("%w: window_size must be >= 1, got %d", ErrInvalidConfig, cfg.WindowSize)
	}
	kd, err := DeriveKd(cfg.SegmentDuration, cfg.Eta)
	if err != nil {
		return nil, err
	}
	kp := DeriveKp(cfg.SegmentDuration, cfg.Eta, kd)
	logrus.Debugf("pd controller gains: T=%g eta=%g kd=%g kp=%g", cfg.SegmentDuration, cfg.Eta, kd, kp)
	return &PDStrategy{
		cfg:    cfg,
		kd:     kd,
		kp:     kp,
		window: NewSlidingWindow(cfg.WindowSize),
	}, nil
}

// stableGain reports whether kd satisfies
// eta >= (1/T) * sqrt((T+kd)/(T-kd)) * ln(20T/(T+kd)).
func stableGain(T, eta, kd float64) bool {
	rhs := (1 / T) * math.Sqrt((T+kd)/(T-kd)) * math.Log(20*T/(T+kd))
	return eta >= rhs
}

// DeriveKd searches kd = T/2, T/2 - T/10, ... for the first value satisfying the
// stability bound. It fails once kd <= 0.
// The candidates are computed from the step index so the fifth decrement lands on 0
// instead of a rounding residue.
func DeriveKd(T, eta float64) (float64, error) {
	step := T / 10
	for i := 0; ; i++ {
		kd := T/2 - float64(i)*step
		if kd <= step*1e-9 {
			break
		}
		if stableGain(T, eta, kd) {
			return kd, nil
		}
	}
	return 0, fmt.Errorf("%w: T=%g eta=%g", ErrNoStableGain, T, eta)
}

// DeriveKp returns eta * sqrt((T+kd)/(T-kd)).
func DeriveKp(T, eta, kd float64) float64 {
	return eta * math.Sqrt((T+kd)/(T-kd))
}

func (p *PDStrategy) Name() string { return StrategyPD }

// Gains returns the derived (kd, kp).
func (p *PDStrategy) Gains() (kd, kp float64) { return p.kd, p.kp }

// Estimate returns the smoothed bandwidth computed by the most recent call.
func (p *PDStrategy) Estimate() float64 { return p.estimate }

func (p *PDStrategy) Reset() {
	p.window.Reset()
	p.prevBitrate = 0
	p.estimate = 0
}

func (p *PDStrategy) SelectBitrate(bandwidth float64, state *ClientState) (float64, error) {
	levels := state.Config.Bitrates
	if p.prevBitrate == 0 {
		p.prevBitrate = levels[0]
	}
	p.window.Push(bandwidth)
	p.estimate = p.window.Mean()

	var errTerm float64
	switch occ := state.Occupancy; {
	case occ < p.cfg.BK1:
		errTerm = occ - p.cfg.BK1
	case occ > p.cfg.BK2:
		errTerm = occ - p.cfg.BK2
	default:
		return p.prevBitrate, nil
	}

	T := p.cfg.SegmentDuration
	tau := state.PrevDownloadTime
	if !state.HasDownloaded() {
		if p.cfg.StrictFirstStep {
			return 0, fmt.Errorf("pd step %d: %w", state.Step, ErrNoDownloadHistory)
		}
		tau = T
	}

	delta := (1 / (T * p.estimate)) * (p.kp*errTerm + p.kd*(T-tau)/tau)
	target := p.prevBitrate + delta
	chosen := closestLevel(levels, target)
	logrus.Debugf("pd step %d: occ=%.3f err=%.3f beta=%.3f target=%.3f -> %g",
		state.Step, state.Occupancy, errTerm, p.estimate, target, chosen)
	p.prevBitrate = chosen
	return chosen, nil
}
