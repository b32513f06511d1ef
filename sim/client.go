package sim

// ClientState is the mutable per-run state of a client.
// It is owned by a single run and mutated only by the Simulator.
type ClientState struct {
	Config ClientConfig

	// Occupancy is the buffered playback time in seconds, always within [0, Config.MaxBuffer].
	Occupancy float64
	// PrevDownloadTime is the download duration of the last segment (0 before the first step).
	PrevDownloadTime float64
	// Step is the index of the next step to execute.
	Step int
}

// NewClientState returns a state positioned at the start of a run.
func NewClientState(cfg ClientConfig) *ClientState {
	s := &ClientState{Config: cfg}
	s.Reset()
	return s
}

// Reset rewinds the state to its initial values.
func (s *ClientState) Reset() {
	s.Occupancy = s.Config.InitialBuffer
	s.PrevDownloadTime = 0
	s.Step = 0
}

// HasDownloaded reports whether at least one segment has been downloaded in this run.
func (s *ClientState) HasDownloaded() bool {
	return s.PrevDownloadTime > 0
}

// FillRatio returns Occupancy / MaxBuffer.
func (s *ClientState) FillRatio() float64 {
	return s.Occupancy / s.Config.MaxBuffer
}
