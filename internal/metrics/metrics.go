// Package metrics provides Prometheus instrumentation for the Outpost
// tool surface.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// toolBuckets covers tool latencies from fast validation rejections to
// runs that hit the execution deadline.
var toolBuckets = []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 15}

var (
	// ToolInvocations counts tool calls by tool name and outcome
	// ("success", "failure", or "error").
	ToolInvocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outpost_tool_invocations_total",
			Help: "Tool invocations",
		},
		[]string{"tool", "status"},
	)

	// ToolDuration records tool call duration in seconds.
	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "outpost_tool_duration_seconds",
			Help:    "Tool call duration",
			Buckets: toolBuckets,
		},
		[]string{"tool"},
	)
)

func init() {
	prometheus.MustRegister(
		ToolInvocations,
		ToolDuration,
	)
}

// Handler returns the HTTP handler serving the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
