package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abr-sim/abr-sim/sim/experiment"
	"github.com/abr-sim/abr-sim/sim/export"
	"github.com/abr-sim/abr-sim/sim/workload"
)

var (
	experimentPath string // YAML experiment file; empty runs the built-in comparison
	csvDir         string
	metricsOut     string
	parallelism    int
	compareSeed    int64
	compareJSON    bool
)

// compareOptions is everything a comparison needs.
type compareOptions struct {
	ExperimentPath string
	Seed           *int64 // overrides the seed of every uniform scenario when set
	CSVDir         string
	MetricsOut     string
	Parallelism    int
	JSON           bool
}

// compareCmd runs every strategy against every scenario of an experiment
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare strategies across bandwidth scenarios",
	Run: func(cmd *cobra.Command, args []string) {
		opts := compareOptions{
			ExperimentPath: experimentPath,
			CSVDir:         csvDir,
			MetricsOut:     metricsOut,
			Parallelism:    parallelism,
			JSON:           compareJSON,
		}
		if cmd.Flags().Changed("seed") {
			opts.Seed = &compareSeed
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runCompare(ctx, opts, os.Stdout); err != nil {
			logrus.Fatalf("Comparison failed: %v", err)
		}
	},
}

func loadExperiment(opts compareOptions) (*experiment.Experiment, error) {
	exp := experiment.DefaultExperiment()
	if opts.ExperimentPath != "" {
		var err error
		if exp, err = experiment.LoadExperiment(opts.ExperimentPath); err != nil {
			return nil, err
		}
	}
	if opts.Seed != nil {
		for i := range exp.Scenarios {
			if exp.Scenarios[i].Pattern == workload.PatternUniform {
				exp.Scenarios[i].Seed = *opts.Seed
			}
		}
	}
	return exp, nil
}

func runCompare(ctx context.Context, opts compareOptions, w io.Writer) error {
	exp, err := loadExperiment(opts)
	if err != nil {
		return err
	}
	logrus.Infof("Comparing %d strategies across %d scenarios", len(exp.Strategies), len(exp.Scenarios))
	results, err := experiment.Compare(ctx, exp, opts.Parallelism)
	if err != nil {
		return err
	}

	if opts.CSVDir != "" {
		paths, err := export.WriteResultsCSV(opts.CSVDir, results)
		if err != nil {
			return err
		}
		logrus.Infof("Wrote %d trajectories to %s", len(paths), opts.CSVDir)
	}
	if opts.MetricsOut != "" {
		if err := export.WritePrometheus(opts.MetricsOut, results); err != nil {
			return err
		}
		logrus.Infof("Metrics written to %s", opts.MetricsOut)
	}

	if opts.JSON {
		summaries := make([]experiment.Result, len(results))
		for i, r := range results {
			r.Records = nil
			summaries[i] = r
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	}
	for _, r := range results {
		r.Summary.Print(w, fmt.Sprintf("%s - %s", r.Scenario, r.Strategy))
	}
	return nil
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&experimentPath, "config", "", "YAML experiment file (default: built-in constant/fluctuating/random comparison)")
	f.StringVar(&csvDir, "csv-dir", "", "Write one trajectory CSV per run into this directory")
	f.StringVar(&metricsOut, "metrics-out", "", "Write run summaries in Prometheus text format to this file")
	f.IntVar(&parallelism, "parallelism", 4, "Maximum concurrent runs (<= 0 for unlimited)")
	f.Int64Var(&compareSeed, "seed", experiment.DefaultSeed, "Override the seed of uniform scenarios")
	f.BoolVar(&compareJSON, "json", false, "Print results as JSON")
}
