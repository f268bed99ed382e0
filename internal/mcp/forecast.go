package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/outpost-mcp/outpost/internal/metrics"
	"github.com/outpost-mcp/outpost/internal/weather"
)

type forecastParams struct {
	Latitude     float64  `json:"latitude" jsonschema:"Latitude in decimal degrees, -90 to 90."`
	Longitude    float64  `json:"longitude" jsonschema:"Longitude in decimal degrees, -180 to 180."`
	ForecastDays int      `json:"forecast_days,omitempty" jsonschema:"Number of forecast days, 1 to 14. Default: 3."`
	Daily        []string `json:"daily,omitempty" jsonschema:"Daily variables to request (Open-Meteo names). Defaults to a fixed standard set."`
}

func (h *handler) forecastHandler(ctx context.Context, req *mcp.CallToolRequest, params forecastParams) (*mcp.CallToolResult, any, error) {
	started := time.Now()
	f, err := h.weather.Forecast(ctx, weather.Params{
		Latitude:     params.Latitude,
		Longitude:    params.Longitude,
		ForecastDays: params.ForecastDays,
		Daily:        params.Daily,
	})
	metrics.ToolDuration.WithLabelValues("get_forecast").Observe(time.Since(started).Seconds())

	if err != nil {
		metrics.ToolInvocations.WithLabelValues("get_forecast", "error").Inc()
		return errorResult(err.Error())
	}
	metrics.ToolInvocations.WithLabelValues("get_forecast", "success").Inc()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return errorResult("encoding forecast response failed")
	}
	return textResult(string(data))
}
