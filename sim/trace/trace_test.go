package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDecision_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a decision record is recorded
	st.RecordDecision(DecisionRecord{
		Step:      0,
		Strategy:  "throughput",
		Bandwidth: 5,
		Bitrate:   4,
		Occupancy: 4.2,
	})

	// THEN the trace contains one decision record with correct data
	if len(st.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(st.Decisions))
	}
	if st.Decisions[0].Strategy != "throughput" {
		t.Errorf("expected strategy throughput, got %s", st.Decisions[0].Strategy)
	}
	if st.Decisions[0].Bitrate != 4 {
		t.Errorf("expected bitrate 4, got %g", st.Decisions[0].Bitrate)
	}
}

func TestSimulationTrace_RecordStrategyChange_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN a hand-over is recorded
	st.RecordStrategyChange(StrategyChangeRecord{Step: 3, From: "utility", To: "pd"})

	// THEN the trace contains it
	if len(st.StrategyChanges) != 1 {
		t.Fatalf("expected 1 strategy change, got %d", len(st.StrategyChanges))
	}
	if st.StrategyChanges[0].From != "utility" || st.StrategyChanges[0].To != "pd" {
		t.Errorf("unexpected change record %+v", st.StrategyChanges[0])
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordDecision(DecisionRecord{Step: 0, Strategy: "utility"})
	st.RecordDecision(DecisionRecord{Step: 1, Strategy: "utility"})
	st.RecordDecision(DecisionRecord{Step: 2, Strategy: "pd"})

	// THEN order is preserved
	for i, d := range st.Decisions {
		if d.Step != i {
			t.Errorf("decision %d has step %d", i, d.Step)
		}
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must be disabled")
	}
	if NewSimulationTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level must be disabled")
	}
	if NewSimulationTrace(TraceConfig{}).Enabled() {
		t.Error("empty level must be disabled")
	}
	if !NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("decisions level must be enabled")
	}
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"decisions", true},
		{"", true}, // empty defaults to none
		{"detailed", false},
		{"foobar", false},
		{"NONE", false}, // case-sensitive
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			if got := IsValidTraceLevel(tt.level); got != tt.valid {
				t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
			}
		})
	}
}
