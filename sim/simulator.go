// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/abr-sim/abr-sim/sim/trace"
)

// StepRecord is the outcome of one simulation tick.
type StepRecord struct {
	Step         int     `json:"step"`
	Bandwidth    float64 `json:"bandwidth_mbps"`
	Bitrate      float64 `json:"bitrate_mbps"`
	DownloadTime float64 `json:"download_time_s"`
	Occupancy    float64 `json:"buffer_s"` // after the update, within [0, MaxBuffer]
	Stalled      bool    `json:"stalled"`  // the update drove the buffer below zero
	Strategy     string  `json:"strategy"` // strategy that made the decision (the delegate for a Delegator)
}

// StepObserver receives each StepRecord as soon as its step completes.
type StepObserver interface {
	OnStep(rec StepRecord) error
}

// Simulator advances one client through a bandwidth sequence, one segment per sample.
type Simulator struct {
	Config   SimConfig
	Strategy DecisionStrategy
	State    *ClientState
	// Trace receives a decision record per step when non-nil and its level is not none.
	Trace *trace.SimulationTrace
	// Observer, when non-nil, is handed every record; its error aborts the run.
	Observer StepObserver

	lastStrategy string
}

// NewSimulator validates the configuration and binds a strategy to a fresh client state.
func NewSimulator(cfg SimConfig, client ClientConfig, strategy DecisionStrategy) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, fmt.Errorf("%w: nil strategy", ErrInvalidConfig)
	}
	return &Simulator{
		Config:   cfg,
		Strategy: strategy,
		State:    NewClientState(client),
	}, nil
}

// Run resets the client state and the strategy history, then executes one step per
// bandwidth sample. The returned records are in sample order. On error the records
// produced before the failing step are returned alongside it.
func (s *Simulator) Run(bandwidth []float64) ([]StepRecord, error) {
	s.State.Reset()
	s.Strategy.Reset()
	s.lastStrategy = ""

	records := make([]StepRecord, 0, len(bandwidth))
	for _, bw := range bandwidth {
		rec, err := s.Step(bw)
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
	logrus.Debugf("run complete: strategy=%s steps=%d final_buffer=%.3f", s.Strategy.Name(), len(records), s.State.Occupancy)
	return records, nil
}

// Step executes a single tick with the given bandwidth sample.
func (s *Simulator) Step(bandwidth float64) (StepRecord, error) {
	st := s.State
	if !isFinitePositive(bandwidth) {
		return StepRecord{}, fmt.Errorf("step %d: %w, got %g", st.Step, ErrNonPositiveBandwidth, bandwidth)
	}

	bitrate, err := s.Strategy.SelectBitrate(bandwidth, st)
	if err != nil {
		return StepRecord{}, fmt.Errorf("step %d: %w", st.Step, err)
	}
	if !st.Config.HasLevel(bitrate) {
		return StepRecord{}, fmt.Errorf("step %d: %w: %s returned %g", st.Step, ErrOffLadder, s.Strategy.Name(), bitrate)
	}
	decidedBy := s.Strategy.Name()
	if d, ok := s.Strategy.(Delegator); ok && d.Active() != nil {
		decidedBy = d.Active().Name()
	}

	downloadTime := bitrate / bandwidth
	occ := st.Occupancy + s.Config.SegmentDuration - downloadTime - s.Config.PlaybackRate
	stalled := occ < 0
	occ = max(0, min(occ, st.Config.MaxBuffer))
	if stalled {
		logrus.Infof("playback stalled at step %d (strategy=%s bitrate=%g bandwidth=%g)", st.Step, decidedBy, bitrate, bandwidth)
	}

	rec := StepRecord{
		Step:         st.Step,
		Bandwidth:    bandwidth,
		Bitrate:      bitrate,
		DownloadTime: downloadTime,
		Occupancy:    occ,
		Stalled:      stalled,
		Strategy:     decidedBy,
	}
	if s.Observer != nil {
		if err := s.Observer.OnStep(rec); err != nil {
			return StepRecord{}, fmt.Errorf("step %d: observer: %w", st.Step, err)
		}
	}
	s.record(rec)

	st.Occupancy = occ
	st.PrevDownloadTime = downloadTime
	st.Step++

	logrus.Debugf("step %d: bw=%.3f bitrate=%g dl=%.3f buffer=%.3f", rec.Step, bandwidth, bitrate, downloadTime, occ)
	return rec, nil
}

func (s *Simulator) record(rec StepRecord) {
	if !s.Trace.Enabled() {
		s.lastStrategy = rec.Strategy
		return
	}
	if s.lastStrategy != "" && s.lastStrategy != rec.Strategy {
		s.Trace.RecordStrategyChange(trace.StrategyChangeRecord{Step: rec.Step, From: s.lastStrategy, To: rec.Strategy})
	}
	s.lastStrategy = rec.Strategy
	s.Trace.RecordDecision(trace.DecisionRecord{
		Step:      rec.Step,
		Strategy:  rec.Strategy,
		Bandwidth: rec.Bandwidth,
		Bitrate:   rec.Bitrate,
		Occupancy: rec.Occupancy,
		Stalled:   rec.Stalled,
	})
}

// Run is a convenience wrapper: build a Simulator and run it over bandwidth.
func Run(cfg SimConfig, client ClientConfig, strategy DecisionStrategy, bandwidth []float64) ([]StepRecord, error) {
	s, err := NewSimulator(cfg, client, strategy)
	if err != nil {
		return nil, err
	}
	return s.Run(bandwidth)
}
