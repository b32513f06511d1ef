package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions       int
	StallCount           int
	StrategyChanges      int
	UniqueStrategies     int
	StrategyDistribution map[string]int // strategy name → number of decisions
	LongestStall         int            // longest run of consecutive stalled steps
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		StrategyDistribution: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Decisions)
	summary.StrategyChanges = len(st.StrategyChanges)

	streak := 0
	for _, d := range st.Decisions {
		summary.StrategyDistribution[d.Strategy]++
		if d.Stalled {
			summary.StallCount++
			streak++
			summary.LongestStall = max(summary.LongestStall, streak)
		} else {
			streak = 0
		}
	}

	summary.UniqueStrategies = len(summary.StrategyDistribution)

	return summary
}
