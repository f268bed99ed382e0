// Package mcp provides the Outpost MCP server, registering the
// capability tools and publishing model instructions.
package mcp

import (
	_ "embed"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/outpost-mcp/outpost"
	"github.com/outpost-mcp/outpost/internal/history"
	"github.com/outpost-mcp/outpost/internal/python"
	"github.com/outpost-mcp/outpost/internal/weather"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	exec    *python.Executor
	weather *weather.Client
	store   history.Store
}

// NewServer creates an MCP server with all Outpost tools registered.
func NewServer(exec *python.Executor, wc *weather.Client, store history.Store) *mcp.Server {
	h := &handler{
		exec:    exec,
		weather: wc,
		store:   store,
	}

	mcpOpts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "outpost", Version: outpost.Version}, mcpOpts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "run_python",
		Description: `Execute Python code and return its output.

The code runs as a fresh interpreter process with a wall-clock deadline;
no state survives between calls. The result always reports stdout, stderr,
and the exit code, or a short error message when the code could not run
at all (empty input, missing interpreter, timeout).`,
	}, h.runPythonHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "get_forecast",
		Description: `Fetch a daily weather forecast for a location.

Returns the upstream forecast data unmodified: latitude, longitude,
resolved timezone, the requested daily variables, and their units.`,
	}, h.forecastHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "inspect_run",
		Description: `Retrieve the stored result of a previous run_python call.

Use the run id from an earlier run_python result to re-read its full
output after it has scrolled out of context.`,
	}, h.inspectRunHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
