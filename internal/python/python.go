// Package python executes caller-supplied Python source through an
// external interpreter and classifies every possible ending into a
// structured Result. The consumer is an automated agent, so nothing
// here is allowed to escape as an error or a panic.
package python

import (
	"context"
	"fmt"
	"strings"

	"github.com/outpost-mcp/outpost/internal/runner"
)

// maxDetailLen caps externally sourced diagnostic text (OS error
// strings) before it is surfaced to the agent. Process stdout/stderr
// are bounded separately by the runner's output cap.
const maxDetailLen = 200

// Executor runs Python code via the configured interpreter binary.
type Executor struct {
	Binary string         // resolved via PATH, e.g. "python3"
	Runner *runner.Runner // owns timeout and output caps
}

// Execute runs code as `<binary> -c <code>` and returns the classified
// result. It never returns an error: empty input, launch failures,
// timeouts, and internal faults all become error-shaped Results.
func (e *Executor) Execute(ctx context.Context, code string) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res = errorResult("Unexpected error occurred during Python execution")
		}
	}()

	code = strings.TrimSpace(code)
	if code == "" {
		return errorResult("No Python code provided to execute")
	}

	out, err := e.Runner.Exec(ctx, []string{e.Binary, "-c", code})
	if err != nil {
		return errorResult("Unexpected error occurred during Python execution")
	}
	return e.classify(out)
}

// classify maps a raw runner outcome onto the public result taxonomy.
// Completed runs keep their streams and exit code, success or not;
// everything else collapses to an error shape with exit code -1.
func (e *Executor) classify(out *runner.Outcome) *Result {
	switch out.Kind {
	case runner.TimedOut:
		r := errorResult(fmt.Sprintf("Execution timed out (exceeded %d seconds)", int(e.Runner.Timeout.Seconds())))
		r.RunID = out.RunID
		r.DurationMs = out.Duration.Milliseconds()
		return r
	case runner.LaunchFailed:
		r := errorResult(fmt.Sprintf("Failed to execute %s: %s", e.Binary, clip(out.LaunchErr.Error())))
		r.RunID = out.RunID
		return r
	case runner.Completed:
		return &Result{
			RunID:      out.RunID,
			Stdout:     string(out.Stdout),
			Stderr:     string(out.Stderr),
			ExitCode:   out.ExitCode,
			Success:    out.ExitCode == 0,
			Truncated:  out.Truncated,
			DurationMs: out.Duration.Milliseconds(),
		}
	default:
		return errorResult("Unexpected error occurred during Python execution")
	}
}

func errorResult(msg string) *Result {
	return &Result{ExitCode: -1, Error: msg}
}

// clip bounds diagnostic text so host details cannot flood the agent.
func clip(s string) string {
	if len(s) <= maxDetailLen {
		return s
	}
	return s[:maxDetailLen] + "..."
}
