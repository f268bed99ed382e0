package python

// Result is the caller-facing outcome of one execution. It always has
// exactly one of two shapes: a run shape, where Stdout, Stderr,
// ExitCode, and Success describe what the program did, or an error
// shape, where Error carries a short message, ExitCode is -1, and the
// stream fields are empty. Callers never see a raw failure.
type Result struct {
	RunID      string `json:"run_id,omitempty"`
	Stdout     string `json:"stdout"`
	Stderr     string `json:"stderr"`
	ExitCode   int    `json:"exit_code"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`
	Truncated  bool   `json:"truncated,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}

// IsError reports whether the result has the error shape rather than
// a run shape.
func (r *Result) IsError() bool {
	return r.Error != ""
}
