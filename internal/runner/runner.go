// Package runner launches external processes with bounded lifetimes
// and bounded output capture, reporting each attempt as a tagged
// Outcome rather than an error chain.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/google/uuid"
)

// Runner executes a single process per call with a wall-clock deadline
// and per-stream output caps. It holds no per-run state; concurrent
// calls are independent.
type Runner struct {
	Timeout   time.Duration
	MaxOutput int // bytes, per stream
}

// Exec runs the given argv to completion, timeout, or launch failure.
// The first element is the binary name (resolved via PATH); arguments
// are passed as a vector, never through a shell. Exec blocks until the
// process is reaped on every path, so no subprocess outlives the call.
// The returned error is reserved for caller mistakes (empty argv);
// every runtime failure mode is reported through the Outcome.
func (r *Runner) Exec(ctx context.Context, argv []string) (*Outcome, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	out := &Outcome{RunID: uuid.New().String()}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: r.MaxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: r.MaxOutput}

	start := time.Now()
	runErr := cmd.Run()
	out.Duration = time.Since(start)

	out.Stdout = stdout.Bytes()
	out.Stderr = stderr.Bytes()
	out.Truncated = stdout.Len() >= r.MaxOutput || stderr.Len() >= r.MaxOutput

	switch {
	case runErr == nil:
		out.Kind = Completed
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		// CommandContext killed the process at the deadline. The
		// ExitError it reports is an artifact of the kill signal,
		// not a real exit status, so classify by the context.
		out.Kind = TimedOut
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			out.Kind = Completed
			out.ExitCode = exitErr.ExitCode()
		} else {
			// Binary not found, permission denied, or other spawn error.
			out.Kind = LaunchFailed
			out.LaunchErr = runErr
		}
	}

	return out, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
