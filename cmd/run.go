package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abr-sim/abr-sim/sim"
	"github.com/abr-sim/abr-sim/sim/export"
	"github.com/abr-sim/abr-sim/sim/trace"
	"github.com/abr-sim/abr-sim/sim/workload"
)

var (
	// client and playback model
	bitrates        []float64 // Ascending bitrate ladder in Mbps
	maxBuffer       float64   // Buffer capacity in seconds
	initialBuffer   float64   // Buffer occupancy at the start of the run
	segmentDuration float64   // Seconds of video per segment
	playbackRate    float64   // Seconds of buffer drained per tick

	// strategy
	strategyName         string
	alpha                float64
	windowSize           int
	eta                  float64
	bk1                  float64
	bk2                  float64
	strictFirstStep      bool
	criticalBuffer       float64
	fluctuationThreshold float64

	// bandwidth scenario
	pattern   string
	ticks     int
	value     float64
	mean      float64
	amplitude float64
	bwMin     float64
	bwMax     float64
	seed      int64
	levels    []float64
	hold      int
	traceFile string

	// output
	csvPath    string
	traceLevel string
	jsonOutput bool
)

// runOptions is everything one single-strategy run needs.
type runOptions struct {
	Sim        sim.SimConfig
	Client     sim.ClientConfig
	Strategy   sim.StrategyConfig
	Scenario   workload.ScenarioSpec
	CSVPath    string
	TraceLevel trace.TraceLevel
	JSON       bool
}

// runOutput is the JSON document printed by `run --json`.
type runOutput struct {
	Scenario string              `json:"scenario"`
	Strategy string              `json:"strategy"`
	Summary  sim.MetricsSummary  `json:"summary"`
	Trace    *trace.TraceSummary `json:"trace,omitempty"`
	Records  []sim.StepRecord    `json:"records"`
}

// runCmd simulates one strategy over one bandwidth scenario
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one strategy over one bandwidth scenario",
	Run: func(cmd *cobra.Command, args []string) {
		opts, err := runOptionsFromFlags(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSingle(opts, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
	},
}

// runOptionsFromFlags maps flags to options. Strategy parameters are only set
// when the flag was given, so unset ones keep the strategy defaults.
func runOptionsFromFlags(cmd *cobra.Command) (runOptions, error) {
	if !trace.IsValidTraceLevel(traceLevel) {
		return runOptions{}, fmt.Errorf("unknown trace level %q; valid: none, decisions", traceLevel)
	}
	sc := sim.StrategyConfig{Name: strategyName, StrictFirstStep: strictFirstStep}
	flags := cmd.Flags()
	if flags.Changed("alpha") {
		sc.Alpha = &alpha
	}
	if flags.Changed("window-size") {
		sc.WindowSize = &windowSize
	}
	if flags.Changed("eta") {
		sc.Eta = &eta
	}
	if flags.Changed("bk1") {
		sc.BK1 = &bk1
	}
	if flags.Changed("bk2") {
		sc.BK2 = &bk2
	}
	if flags.Changed("critical-buffer") {
		sc.CriticalBuffer = &criticalBuffer
	}
	if flags.Changed("fluctuation-threshold") {
		sc.FluctuationThreshold = &fluctuationThreshold
	}
	scenarioTicks := ticks
	if pattern == workload.PatternReplay && !flags.Changed("ticks") {
		scenarioTicks = 0
	}
	return runOptions{
		Sim:      sim.SimConfig{SegmentDuration: segmentDuration, PlaybackRate: playbackRate},
		Client:   sim.ClientConfig{Bitrates: bitrates, MaxBuffer: maxBuffer, InitialBuffer: initialBuffer},
		Strategy: sc,
		Scenario: workload.ScenarioSpec{
			Name: pattern, Pattern: pattern, Ticks: scenarioTicks,
			Value: value, Mean: mean, Amplitude: amplitude,
			Min: bwMin, Max: bwMax, Seed: seed,
			Levels: levels, Hold: hold, File: traceFile,
		},
		CSVPath:    csvPath,
		TraceLevel: trace.TraceLevel(traceLevel),
		JSON:       jsonOutput,
	}, nil
}

func runSingle(opts runOptions, w io.Writer) error {
	strategy, err := sim.NewStrategy(opts.Strategy, opts.Sim.SegmentDuration)
	if err != nil {
		return err
	}
	s, err := sim.NewSimulator(opts.Sim, opts.Client, strategy)
	if err != nil {
		return err
	}
	if opts.TraceLevel == trace.TraceLevelDecisions {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: opts.TraceLevel})
	}
	samples, err := workload.Generate(&opts.Scenario)
	if err != nil {
		return err
	}

	var recorder *export.CSVRecorder
	if opts.CSVPath != "" {
		if recorder, err = export.NewCSVRecorder(opts.CSVPath); err != nil {
			return err
		}
		s.Observer = recorder
	}

	logrus.Infof("Starting simulation: strategy=%s scenario=%s ticks=%d", opts.Strategy.DisplayName(), opts.Scenario.Name, len(samples))
	records, err := s.Run(samples)
	if recorder != nil {
		if cerr := recorder.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}
	if recorder != nil {
		logrus.Infof("Trajectory written to %s", opts.CSVPath)
	}
	summary, err := sim.Summarize(records)
	if err != nil {
		return err
	}

	var traceSummary *trace.TraceSummary
	if s.Trace.Enabled() {
		traceSummary = trace.Summarize(s.Trace)
	}
	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runOutput{
			Scenario: opts.Scenario.Name,
			Strategy: opts.Strategy.DisplayName(),
			Summary:  summary,
			Trace:    traceSummary,
			Records:  records,
		})
	}
	summary.Print(w, fmt.Sprintf("%s - %s", opts.Scenario.Name, opts.Strategy.DisplayName()))
	if traceSummary != nil {
		printTraceSummary(w, traceSummary)
	}
	return nil
}

func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	_, _ = fmt.Fprintln(w, "=== Decision Trace ===")
	_, _ = fmt.Fprintf(w, "Decisions            : %d\n", ts.TotalDecisions)
	_, _ = fmt.Fprintf(w, "Strategy Changes     : %d\n", ts.StrategyChanges)
	_, _ = fmt.Fprintf(w, "Longest Stall Streak : %d\n", ts.LongestStall)
	for _, name := range sim.StrategyNames() {
		if n, ok := ts.StrategyDistribution[name]; ok {
			_, _ = fmt.Fprintf(w, "  %-18s : %d\n", name, n)
		}
	}
}

func init() {
	def := sim.DefaultSimConfig()
	f := runCmd.Flags()

	f.Float64SliceVar(&bitrates, "bitrates", []float64{1, 2, 4, 6, 8, 12}, "Comma-separated ascending bitrate ladder (Mbps)")
	f.Float64Var(&maxBuffer, "max-buffer", 20, "Buffer capacity (s)")
	f.Float64Var(&initialBuffer, "initial-buffer", 5, "Initial buffer occupancy (s)")
	f.Float64Var(&segmentDuration, "segment-duration", def.SegmentDuration, "Segment duration (s)")
	f.Float64Var(&playbackRate, "playback-rate", def.PlaybackRate, "Buffer drained per tick (s)")

	f.StringVar(&strategyName, "strategy", sim.StrategyUtility, "Decision strategy (utility, throughput, pd, selector)")
	f.Float64Var(&alpha, "alpha", sim.DefaultAlpha, "Utility buffer weight")
	f.IntVar(&windowSize, "window-size", sim.DefaultWindowSize, "Bandwidth averaging window (samples)")
	f.Float64Var(&eta, "eta", sim.DefaultEta, "PD controller gain factor")
	f.Float64Var(&bk1, "bk1", sim.DefaultBK1, "PD lower buffer threshold (s)")
	f.Float64Var(&bk2, "bk2", sim.DefaultBK2, "PD upper buffer threshold (s)")
	f.BoolVar(&strictFirstStep, "strict-first-step", false, "PD: fail instead of seeding the first download time")
	f.Float64Var(&criticalBuffer, "critical-buffer", sim.DefaultCriticalBuffer, "Selector: buffer below which PD decides (s)")
	f.Float64Var(&fluctuationThreshold, "fluctuation-threshold", sim.DefaultFluctuationThreshold, "Selector: bandwidth jump that hands over to throughput (Mbps)")

	f.StringVar(&pattern, "pattern", workload.PatternConstant, "Bandwidth pattern (constant, sinusoidal, uniform, steps, replay)")
	f.IntVar(&ticks, "ticks", 20, "Number of segments (bandwidth samples)")
	f.Float64Var(&value, "value", 5, "constant: bandwidth (Mbps)")
	f.Float64Var(&mean, "mean", 5, "sinusoidal: mean bandwidth (Mbps)")
	f.Float64Var(&amplitude, "amplitude", 2, "sinusoidal: amplitude (Mbps)")
	f.Float64Var(&bwMin, "min", 2, "uniform: lower bound (Mbps)")
	f.Float64Var(&bwMax, "max", 8, "uniform: upper bound (Mbps)")
	f.Int64Var(&seed, "seed", 42, "uniform: random seed")
	f.Float64SliceVar(&levels, "levels", []float64{6, 0.5}, "steps: comma-separated bandwidth levels (Mbps)")
	f.IntVar(&hold, "hold", 4, "steps: ticks per level")
	f.StringVar(&traceFile, "trace-file", "", "replay: CSV file with bandwidth in the first column")

	f.StringVar(&csvPath, "csv", "", "Write the per-step trajectory to this CSV file")
	f.StringVar(&traceLevel, "trace-level", string(trace.TraceLevelNone), "Decision trace level (none, decisions)")
	f.BoolVar(&jsonOutput, "json", false, "Print the summary and trajectory as JSON")
}
