// Package weather supplies the conditions shown on the dashboard and weather
// view. The Provider interface keeps the app independent of where readings
// come from; the bundled implementation simulates a local station.
package weather

import (
	"context"
	"time"
)

// Current is a point-in-time reading.
type Current struct {
	Observed      time.Time
	TempC         float64
	Condition     string
	Humidity      int     // percent
	WindKPH       float64
	Precipitation float64 // mm expected today
}

// Day is one forecast or historical day.
type Day struct {
	Date          time.Time
	HighC         float64
	LowC          float64
	Condition     string
	Precipitation float64 // mm
	Humidity      int
}

// Alert is an active weather warning.
type Alert struct {
	Severity string // advisory, watch, warning
	Title    string
	Message  string
	Issued   time.Time
}

// Provider supplies weather data. Implementations must be safe for use from
// a single UI goroutine; calls are request-response with no streaming.
type Provider interface {
	Current(ctx context.Context) (Current, error)
	Forecast(ctx context.Context, days int) ([]Day, error)
	Alerts(ctx context.Context) ([]Alert, error)
	History(ctx context.Context, start, end time.Time) ([]Day, error)
}
