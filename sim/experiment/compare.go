package experiment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abr-sim/abr-sim/sim"
	"github.com/abr-sim/abr-sim/sim/trace"
	"github.com/abr-sim/abr-sim/sim/workload"
)

// Result is the outcome of one (scenario, strategy) run.
type Result struct {
	RunID     string              `json:"run_id"`
	Scenario  string              `json:"scenario"`
	Strategy  string              `json:"strategy"` // display label
	Bandwidth []float64           `json:"-"`
	Records   []sim.StepRecord    `json:"records,omitempty"`
	Summary   sim.MetricsSummary  `json:"summary"`
	Trace     *trace.TraceSummary `json:"-"`
}

// Compare runs every scenario against every strategy. Each run gets a fresh
// strategy instance, so runs share no state and may execute concurrently;
// parallelism caps the number of concurrent runs (<= 0 means unlimited).
// Results are ordered by scenario, then strategy, as listed in exp.
// The first failing run cancels the rest and its error is returned.
func Compare(ctx context.Context, exp *Experiment, parallelism int) ([]Result, error) {
	if err := exp.Validate(); err != nil {
		return nil, err
	}
	cfg := exp.SimConfig()

	samples := make([][]float64, len(exp.Scenarios))
	for i := range exp.Scenarios {
		s, err := workload.Generate(&exp.Scenarios[i])
		if err != nil {
			return nil, err
		}
		samples[i] = s
	}

	results := make([]Result, len(exp.Scenarios)*len(exp.Strategies))
	g, ctx := errgroup.WithContext(ctx)
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}
	start := time.Now()
	for i, scenario := range exp.Scenarios {
		for j, strategyCfg := range exp.Strategies {
			idx := i*len(exp.Strategies) + j
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				res, err := runOne(cfg, exp.Client, strategyCfg, scenario.Name, samples[i])
				if err != nil {
					return fmt.Errorf("scenario %q strategy %q: %w", scenario.Name, strategyCfg.DisplayName(), err)
				}
				results[idx] = res
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logrus.Infof("compared %d scenarios x %d strategies in %v", len(exp.Scenarios), len(exp.Strategies), time.Since(start))
	return results, nil
}

func runOne(cfg sim.SimConfig, client sim.ClientConfig, sc sim.StrategyConfig, scenario string, bandwidth []float64) (Result, error) {
	strategy, err := sim.NewStrategy(sc, cfg.SegmentDuration)
	if err != nil {
		return Result{}, err
	}
	s, err := sim.NewSimulator(cfg, client, strategy)
	if err != nil {
		return Result{}, err
	}
	s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions})
	records, err := s.Run(bandwidth)
	if err != nil {
		return Result{}, err
	}
	summary, err := sim.Summarize(records)
	if err != nil {
		return Result{}, err
	}
	runID := uuid.New().String()
	logrus.Debugf("run %s: scenario=%s strategy=%s avg_bitrate=%.3f switches=%d rebuffers=%d",
		runID, scenario, sc.DisplayName(), summary.AverageBitrate, summary.SwitchCount, summary.RebufferEvents)
	return Result{
		RunID:     runID,
		Scenario:  scenario,
		Strategy:  sc.DisplayName(),
		Bandwidth: bandwidth,
		Records:   records,
		Summary:   summary,
		Trace:     trace.Summarize(s.Trace),
	}, nil
}
