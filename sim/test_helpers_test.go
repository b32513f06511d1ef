package sim

import "math/rand"

var testLadder = []float64{1, 2, 4, 6, 8, 12}

func testClient(initial float64) ClientConfig {
	return ClientConfig{Bitrates: testLadder, MaxBuffer: 20, InitialBuffer: initial}
}

func stateWith(occupancy float64) *ClientState {
	st := NewClientState(testClient(0))
	st.Occupancy = occupancy
	return st
}

// mustStrategy builds a strategy from its name with default parameters.
func mustStrategy(name string) DecisionStrategy {
	s, err := NewStrategy(StrategyConfig{Name: name}, 2.0)
	if err != nil {
		panic(err)
	}
	return s
}

// uniformSamples returns n samples in [lo, hi) drawn from a seeded source.
func uniformSamples(seed int64, n int, lo, hi float64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + rng.Float64()*(hi-lo)
	}
	return out
}
