package runner

import "time"

// OutcomeKind tags how a process attempt ended.
type OutcomeKind int

const (
	// Completed means the process started and exited on its own,
	// successfully or not. ExitCode is valid.
	Completed OutcomeKind = iota
	// TimedOut means the process was still running at the deadline
	// and was forcibly killed. ExitCode is meaningless.
	TimedOut
	// LaunchFailed means the process never started. LaunchErr holds
	// the underlying OS error.
	LaunchFailed
)

// Outcome holds the raw observation of a single process run. It is the
// internal record of what happened; callers classify it into whatever
// shape their consumers expect.
type Outcome struct {
	RunID     string        // unique identifier for this run
	Kind      OutcomeKind   // how the run ended
	ExitCode  int           // process exit code (Completed only)
	Stdout    []byte        // captured stdout (may be truncated)
	Stderr    []byte        // captured stderr (may be truncated)
	Truncated bool          // true if either stream hit the size cap
	LaunchErr error         // spawn error (LaunchFailed only)
	Duration  time.Duration // wall-clock time spent in the run
}
