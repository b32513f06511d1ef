package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every bitrate decision and strategy hand-over.
	TraceLevelDecisions TraceLevel = "decisions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects decision records during a single run.
type SimulationTrace struct {
	Config          TraceConfig
	Decisions       []DecisionRecord
	StrategyChanges []StrategyChangeRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:          config,
		Decisions:       make([]DecisionRecord, 0),
		StrategyChanges: make([]StrategyChangeRecord, 0),
	}
}

// Enabled reports whether records should be collected.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelDecisions
}

// RecordDecision appends a decision record.
func (st *SimulationTrace) RecordDecision(record DecisionRecord) {
	st.Decisions = append(st.Decisions, record)
}

// RecordStrategyChange appends a strategy hand-over record.
func (st *SimulationTrace) RecordStrategyChange(record StrategyChangeRecord) {
	st.StrategyChanges = append(st.StrategyChanges, record)
}
