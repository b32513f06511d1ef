package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abr-sim/abr-sim/sim"
)

func TestCompare_DefaultExperiment_OrderAndShape(t *testing.T) {
	// GIVEN the default experiment
	exp := DefaultExperiment()

	// WHEN compared with unlimited parallelism
	results, err := Compare(context.Background(), exp, 0)
	require.NoError(t, err)

	// THEN there is one result per (scenario, strategy) in listed order
	require.Len(t, results, len(exp.Scenarios)*len(exp.Strategies))
	ids := make(map[string]bool)
	for i, r := range results {
		assert.Equal(t, exp.Scenarios[i/len(exp.Strategies)].Name, r.Scenario)
		assert.Equal(t, exp.Strategies[i%len(exp.Strategies)].DisplayName(), r.Strategy)
		assert.Len(t, r.Records, DefaultTicks)
		assert.Equal(t, DefaultTicks, r.Summary.Steps)
		require.NotNil(t, r.Trace)
		assert.Equal(t, DefaultTicks, r.Trace.TotalDecisions)
		assert.NotEmpty(t, r.RunID)
		ids[r.RunID] = true
	}
	assert.Len(t, ids, len(results), "run ids must be unique")
}

func TestCompare_ConstantBandwidth_UtilityPicksHighestAffordable(t *testing.T) {
	// GIVEN a steady 5 Mbps link
	exp := DefaultExperiment()
	results, err := Compare(context.Background(), exp, 2)
	require.NoError(t, err)

	// WHEN looking at the utility run on the constant scenario
	r := results[0]
	require.Equal(t, "constant", r.Scenario)
	require.Equal(t, sim.StrategyUtility, r.Strategy)

	// THEN it holds 4 Mbps with no switches and no rebuffering
	assert.Equal(t, 4.0, r.Summary.AverageBitrate)
	assert.Equal(t, 0, r.Summary.SwitchCount)
	assert.Equal(t, 0, r.Summary.RebufferEvents)
	// buffer gains 2 - 0.8 - 1 = 0.2 s per tick from 5 s
	assert.InDelta(t, 5.2, r.Records[0].Occupancy, 1e-9)
	assert.InDelta(t, 9.0, r.Records[DefaultTicks-1].Occupancy, 1e-9)
}

func TestCompare_DeterministicAcrossParallelism(t *testing.T) {
	// GIVEN the same experiment run sequentially and concurrently
	seq, err := Compare(context.Background(), DefaultExperiment(), 1)
	require.NoError(t, err)
	par, err := Compare(context.Background(), DefaultExperiment(), 8)
	require.NoError(t, err)

	// THEN trajectories and summaries are identical
	require.Len(t, par, len(seq))
	for i := range seq {
		assert.Equal(t, seq[i].Records, par[i].Records, "result %d", i)
		assert.Equal(t, seq[i].Summary, par[i].Summary, "result %d", i)
	}
}

func TestCompare_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compare(ctx, DefaultExperiment(), 1)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestCompare_InvalidExperiment(t *testing.T) {
	exp := DefaultExperiment()
	exp.Client.MaxBuffer = -1
	_, err := Compare(context.Background(), exp, 1)
	assert.Error(t, err)
}
