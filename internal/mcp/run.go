package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/outpost-mcp/outpost/internal/history"
	"github.com/outpost-mcp/outpost/internal/metrics"
	"github.com/outpost-mcp/outpost/internal/python"
)

type runPythonParams struct {
	Code string `json:"code" jsonschema:"Python source code to execute. Runs in a fresh interpreter process; must be non-empty."`
}

func (h *handler) runPythonHandler(ctx context.Context, req *mcp.CallToolRequest, params runPythonParams) (*mcp.CallToolResult, *python.Result, error) {
	started := time.Now()
	res := h.exec.Execute(ctx, params.Code)

	metrics.ToolInvocations.WithLabelValues("run_python", runStatus(res)).Inc()
	metrics.ToolDuration.WithLabelValues("run_python").Observe(time.Since(started).Seconds())

	// Validation rejections never started a process and have no run id;
	// everything else is recorded for inspect_run.
	if res.RunID != "" {
		_ = h.store.Save(&history.Record{
			ID:         res.RunID,
			Tool:       "run_python",
			ExitCode:   res.ExitCode,
			Success:    res.Success,
			Stdout:     res.Stdout,
			Stderr:     res.Stderr,
			Error:      res.Error,
			Truncated:  res.Truncated,
			StartedAt:  started.UTC(),
			DurationMs: res.DurationMs,
		})
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: renderRun(res)}},
		IsError: res.IsError(),
	}, res, nil
}

func runStatus(res *python.Result) string {
	switch {
	case res.IsError():
		return "error"
	case res.Success:
		return "success"
	default:
		return "failure"
	}
}

func renderRun(res *python.Result) string {
	if res.IsError() {
		return res.Error
	}

	var b strings.Builder
	if res.Success {
		fmt.Fprintln(&b, "Status: success")
	} else {
		fmt.Fprintf(&b, "Status: failure (exit code %d)\n", res.ExitCode)
	}
	fmt.Fprintf(&b, "Run: %s\n", res.RunID)
	if res.Truncated {
		fmt.Fprintln(&b, "Output truncated at the capture limit.")
	}

	if res.Stdout != "" {
		fmt.Fprintf(&b, "\nStdout:\n%s", res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintf(&b, "\nStderr:\n%s", res.Stderr)
	}
	if res.Stdout == "" && res.Stderr == "" {
		fmt.Fprintln(&b, "\n(no output)")
	}
	return b.String()
}

type inspectRunParams struct {
	RunID string `json:"run_id" jsonschema:"Run identifier from a previous run_python result."`
}

func (h *handler) inspectRunHandler(ctx context.Context, req *mcp.CallToolRequest, params inspectRunParams) (*mcp.CallToolResult, any, error) {
	rec, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("no run found with id %q", params.RunID))
	}
	return textResult(renderRecord(rec))
}

func renderRecord(rec *history.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Run: %s (%s)\n", rec.ID, rec.Tool)
	fmt.Fprintf(&b, "Started: %s\n", rec.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Duration: %dms\n", rec.DurationMs)
	if rec.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", rec.Error)
		return b.String()
	}
	fmt.Fprintf(&b, "Exit code: %d\n", rec.ExitCode)
	if rec.Stdout != "" {
		fmt.Fprintf(&b, "\nStdout:\n%s", rec.Stdout)
	}
	if rec.Stderr != "" {
		fmt.Fprintf(&b, "\nStderr:\n%s", rec.Stderr)
	}
	return b.String()
}
