package sim

import "errors"

// Domain errors. Callers match them with errors.Is; returned errors wrap them with context.
var (
	// ErrNonPositiveBandwidth is returned for a bandwidth sample <= 0.
	ErrNonPositiveBandwidth = errors.New("bandwidth must be positive")
	// ErrInvalidLadder is returned for an empty, unsorted or non-positive bitrate ladder.
	ErrInvalidLadder = errors.New("invalid bitrate ladder")
	// ErrInvalidConfig is returned for out-of-range client, simulation or strategy parameters.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrNoStableGain is returned when no derivative gain in (0, T) satisfies the PD stability bound.
	ErrNoStableGain = errors.New("no stable PD controller gain")
	// ErrEmptyTrajectory is returned when summarizing zero step records.
	ErrEmptyTrajectory = errors.New("empty trajectory")
	// ErrNoDownloadHistory is returned by a strict PD controller asked to adapt before any download.
	ErrNoDownloadHistory = errors.New("no previous download time")
)

// ErrOffLadder is returned when a strategy yields a bitrate that is not a configured level.
var ErrOffLadder = errors.New("bitrate not on ladder")
