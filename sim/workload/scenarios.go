package workload

// Built-in scenario presets matching the classic ABR comparison:
// a steady link, a slowly oscillating link and a noisy link.
// Each returns a valid ScenarioSpec ready for use with Generate.

// ScenarioConstant creates a steady 5 Mbps link.
func ScenarioConstant(ticks int) *ScenarioSpec {
	return &ScenarioSpec{Name: "constant", Pattern: PatternConstant, Ticks: ticks, Value: 5}
}

// ScenarioFluctuating creates one full sine period of 5 +/- 2 Mbps.
func ScenarioFluctuating(ticks int) *ScenarioSpec {
	return &ScenarioSpec{Name: "fluctuating", Pattern: PatternSinusoidal, Ticks: ticks, Mean: 5, Amplitude: 2}
}

// ScenarioRandom creates uniformly random bandwidth in [2, 8) Mbps.
func ScenarioRandom(ticks int, seed int64) *ScenarioSpec {
	return &ScenarioSpec{Name: "random", Pattern: PatternUniform, Ticks: ticks, Min: 2, Max: 8, Seed: seed}
}

// ScenarioOutage creates a link that drops to 0.5 Mbps for a third of each cycle.
func ScenarioOutage(ticks int) *ScenarioSpec {
	return &ScenarioSpec{Name: "outage", Pattern: PatternSteps, Ticks: ticks, Levels: []float64{6, 6, 0.5}, Hold: 4}
}

// DefaultScenarios returns the constant, fluctuating and random presets.
func DefaultScenarios(ticks int, seed int64) []ScenarioSpec {
	return []ScenarioSpec{
		*ScenarioConstant(ticks),
		*ScenarioFluctuating(ticks),
		*ScenarioRandom(ticks, seed),
	}
}
