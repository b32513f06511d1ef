package workload

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/abr-sim/abr-sim/sim"
)

// Generate produces the bandwidth sequence (Mbps) described by spec.
// Deterministic given the same spec: randomized patterns draw from a stream
// derived from Seed and the scenario name.
func Generate(spec *ScenarioSpec) ([]float64, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	switch spec.Pattern {
	case PatternConstant:
		return constant(spec.Value, spec.Ticks), nil
	case PatternSinusoidal:
		return sinusoid(spec.Mean, spec.Amplitude, spec.Ticks), nil
	case PatternUniform:
		rng := sim.NewPartitionedRNG(sim.NewSimulationKey(spec.Seed)).ForSubsystem(sim.SubsystemScenario(spec.Name))
		out := make([]float64, spec.Ticks)
		for i := range out {
			out[i] = spec.Min + rng.Float64()*(spec.Max-spec.Min)
		}
		return out, nil
	case PatternSteps:
		out := make([]float64, spec.Ticks)
		for i := range out {
			out[i] = spec.Levels[(i/spec.Hold)%len(spec.Levels)]
		}
		return out, nil
	case PatternReplay:
		samples, err := LoadBandwidthTrace(spec.File)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", spec.Name, err)
		}
		if spec.Ticks > 0 {
			if spec.Ticks > len(samples) {
				return nil, fmt.Errorf("scenario %q: ticks %d exceeds %d samples in %s", spec.Name, spec.Ticks, len(samples), spec.File)
			}
			samples = samples[:spec.Ticks]
		}
		return samples, nil
	default:
		panic(fmt.Sprintf("unhandled pattern %q", spec.Pattern))
	}
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// sinusoid returns mean + amplitude*sin(x) for n points x evenly spaced over [0, 2pi], endpoints included.
func sinusoid(mean, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = mean
		return out
	}
	floats.Span(out, 0, 2*math.Pi)
	for i, x := range out {
		out[i] = mean + amplitude*math.Sin(x)
	}
	return out
}
