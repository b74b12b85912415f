package report

import (
	"time"

	"github.com/growai/backend/internal/domain/shared"
)

// Default smoothing factors
const (
	DefaultAlpha = 0.6
	DefaultBeta  = 0.3
)

// TrendForecaster projects a series forward with additive Holt smoothing
// (level + linear trend, no seasonality). It holds no state between calls.
type TrendForecaster struct {
	alpha float64
	beta  float64
}

// NewTrendForecaster creates a forecaster. Both factors must be in (0, 1].
func NewTrendForecaster(alpha, beta float64) (*TrendForecaster, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Alpha must be in (0, 1]")
	}
	if beta <= 0 || beta > 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Beta must be in (0, 1]")
	}
	return &TrendForecaster{alpha: alpha, beta: beta}, nil
}

// DefaultTrendForecaster returns a forecaster with alpha 0.6 and beta 0.3
func DefaultTrendForecaster() *TrendForecaster {
	return &TrendForecaster{alpha: DefaultAlpha, beta: DefaultBeta}
}

// Alpha returns the level smoothing factor
func (f *TrendForecaster) Alpha() float64 { return f.alpha }

// Beta returns the trend smoothing factor
func (f *TrendForecaster) Beta() float64 { return f.beta }

// Forecast returns horizon projected values following series.
// An empty series yields zeros. Values are neither clamped nor rounded.
func (f *TrendForecaster) Forecast(series TimeSeries, horizon int) TimeSeries {
	if horizon <= 0 {
		return TimeSeries{}
	}
	out := make(TimeSeries, horizon)
	if len(series) == 0 {
		return out
	}

	level := series[0]
	trend := 0.0
	if len(series) > 1 {
		trend = series[1] - series[0]
	}

	// The first observation is run through the update as well.
	for _, y := range series {
		prevLevel := level
		level = f.alpha*y + (1-f.alpha)*(level+trend)
		trend = f.beta*(level-prevLevel) + (1-f.beta)*trend
	}

	for i := range out {
		out[i] = level + float64(i+1)*trend
	}
	return out
}

// BuildFutureDates returns the horizon calendar days after start as YYYY-MM-DD
func BuildFutureDates(start time.Time, horizon int) []string {
	if horizon <= 0 {
		return []string{}
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	dates := make([]string, horizon)
	for i := range dates {
		dates[i] = day.AddDate(0, 0, i+1).Format(time.DateOnly)
	}
	return dates
}

// ZipForecast pairs dates with values. The shorter input bounds the result.
func ZipForecast(dates []string, values TimeSeries) []ForecastPoint {
	n := min(len(dates), len(values))
	points := make([]ForecastPoint, n)
	for i := 0; i < n; i++ {
		points[i] = ForecastPoint{Date: dates[i], ForecastQty: values[i]}
	}
	return points
}
