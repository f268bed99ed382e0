// Package history persists execution records so past runs can be
// re-inspected by the agent after the original tool result has
// scrolled out of its context.
package history

import "time"

// Record is the stored trace of one tool invocation.
type Record struct {
	ID         string    `json:"id"`
	Tool       string    `json:"tool"`
	ExitCode   int       `json:"exit_code"`
	Success    bool      `json:"success"`
	Stdout     string    `json:"stdout,omitempty"`
	Stderr     string    `json:"stderr,omitempty"`
	Error      string    `json:"error,omitempty"`
	Truncated  bool      `json:"truncated,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
}

// Store persists and retrieves execution records.
type Store interface {
	Save(rec *Record) error
	Load(id string) (*Record, error)
}
