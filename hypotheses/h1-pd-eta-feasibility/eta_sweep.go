// H1 PD Gain Feasibility Sweep
//
// This program sweeps the PD controller's eta over a range of segment
// durations and records the derived kd/kp gains, or infeasibility when no
// candidate kd satisfies the stability bound.
//
// Hypothesis: feasibility is monotone in eta (once a stable kd exists, every
// larger eta also has one) and kd never decreases as eta grows.
//
// Usage: go run eta_sweep.go --output-dir <dir> [--eta-max 10 --eta-step 0.25]
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/abr-sim/abr-sim/sim"
)

func main() {
	outputDir := flag.String("output-dir", ".", "Output directory for the CSV file")
	etaMax := flag.Float64("eta-max", 10, "Largest eta to evaluate")
	etaStep := flag.Float64("eta-step", 0.25, "Eta increment")
	flag.Parse()

	if *etaStep <= 0 || *etaMax < *etaStep {
		logrus.Fatalf("need 0 < eta-step <= eta-max, got step=%g max=%g", *etaStep, *etaMax)
	}
	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logrus.Fatalf("creating output dir: %v", err)
	}
	path := filepath.Join(*outputDir, "eta_sweep.csv")
	f, err := os.Create(path)
	if err != nil {
		logrus.Fatalf("creating %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	_ = w.Write([]string{"segment_duration", "eta", "feasible", "kd", "kp"})

	violations := 0
	for _, T := range []float64{0.5, 1, 2, 4, 6, 10} {
		prevFeasible, prevKd := false, 0.0
		steps := int(*etaMax / *etaStep)
		for i := 1; i <= steps; i++ {
			eta := float64(i) * *etaStep
			kd, err := sim.DeriveKd(T, eta)
			feasible := err == nil
			if err != nil && !errors.Is(err, sim.ErrNoStableGain) {
				logrus.Fatalf("T=%g eta=%g: %v", T, eta, err)
			}
			kp := 0.0
			if feasible {
				kp = sim.DeriveKp(T, eta, kd)
			}
			if prevFeasible && (!feasible || kd < prevKd) {
				logrus.Warnf("monotonicity violated at T=%g eta=%g (kd %g -> %g)", T, eta, prevKd, kd)
				violations++
			}
			prevFeasible, prevKd = feasible, kd
			_ = w.Write([]string{ff(T), ff(eta), strconv.FormatBool(feasible), ff(kd), ff(kp)})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logrus.Fatalf("writing %s: %v", path, err)
	}
	logrus.Infof("wrote %s (%d monotonicity violations)", path, violations)
}

func ff(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
