// Package weather fetches daily forecasts from an Open-Meteo
// compatible API and passes the upstream daily data through unmodified.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is the public Open-Meteo forecast API.
const DefaultBaseURL = "https://api.open-meteo.com"

// maxDetailLen caps upstream diagnostic text surfaced to the agent.
const maxDetailLen = 200

// Client queries a forecast API. Defaults for the forecast window and
// daily variable set are fixed at construction time.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	defaultDays  int
	defaultDaily []string
}

// NewClient creates a forecast client. An empty baseURL selects the
// public Open-Meteo API. days and daily become the defaults applied to
// requests that leave the corresponding field unset; daily is copied.
func NewClient(baseURL string, days int, daily []string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	owned := make([]string, len(daily))
	copy(owned, daily)
	return &Client{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		HTTPClient:   &http.Client{Timeout: 15 * time.Second},
		defaultDays:  days,
		defaultDaily: owned,
	}
}

// Params selects the location and scope of a forecast request.
// ForecastDays zero and an empty Daily list mean the client defaults.
type Params struct {
	Latitude     float64
	Longitude    float64
	ForecastDays int
	Daily        []string
}

func (p Params) validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %v", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %v", p.Longitude)
	}
	if p.ForecastDays != 0 && (p.ForecastDays < 1 || p.ForecastDays > 14) {
		return fmt.Errorf("forecast_days must be between 1 and 14, got %d", p.ForecastDays)
	}
	return nil
}

// Forecast is the upstream response with the daily series kept as raw
// JSON, so values reach the agent exactly as the API produced them.
type Forecast struct {
	Latitude   float64         `json:"latitude"`
	Longitude  float64         `json:"longitude"`
	Timezone   string          `json:"timezone"`
	Daily      json.RawMessage `json:"daily"`
	DailyUnits json.RawMessage `json:"daily_units,omitempty"`
}

// Forecast issues one GET to the forecast endpoint and returns the
// parsed response. Every upstream problem (bad status, undecodable
// body, missing daily data, network failure) comes back as an error
// with bounded diagnostic text.
func (c *Client) Forecast(ctx context.Context, p Params) (*Forecast, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	days := p.ForecastDays
	if days == 0 {
		days = c.defaultDays
	}
	daily := p.Daily
	if len(daily) == 0 {
		daily = c.defaultDaily
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("forecast_days", strconv.Itoa(days))
	q.Set("daily", strings.Join(daily, ","))
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating forecast request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting forecast: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("forecast API returned status %d: %s", resp.StatusCode, clip(string(detail)))
	}

	var f Forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding forecast response: %w", err)
	}
	if len(f.Daily) == 0 || string(f.Daily) == "null" {
		return nil, fmt.Errorf("forecast response missing daily data")
	}
	return &f, nil
}

// clip bounds upstream diagnostic text before it reaches the agent.
func clip(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxDetailLen {
		return s
	}
	return s[:maxDetailLen] + "..."
}
