// Package forecast implements short horizon forecasters sharing a common Forecaster contract:
// simple exponential smoothing, a trailing moving average and a simplified ARIMA.
//
// A forecaster instance owns its fitted state exclusively. Fit overwrites any previous fit
// and is not synchronized with Forecast, so a single instance must not be fit and queried
// concurrently without external locking. Independent instances are safe to use in parallel.
package forecast

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/goccy/go-json"
)

var (
	ErrUntrainedForecast = fmt.Errorf("model must be fitted before forecasting, %w", errs.ErrModel)
	ErrNegativeSteps     = fmt.Errorf("forecast steps must not be negative, %w", errs.ErrInvalidParameter)
	ErrConfidenceLevel   = fmt.Errorf("confidence level must be between 0 and 1, %w", errs.ErrInvalidParameter)
)

const (
	// z scores used for the symmetric prediction interval
	z95 = 1.96
	z90 = 1.645
)

// Forecaster fits a model to a series and produces point forecasts with optional bounds
type Forecaster interface {
	// Name returns a short identifier of the algorithm
	Name() string

	// Fit builds the model state from the series, replacing any previous fit
	Fit(ts *timedataset.TimeSeries) error

	// Forecast predicts the next steps values without bounds
	Forecast(steps int) (*Result, error)

	// ForecastWithConfidence predicts the next steps values along with lower and upper
	// bounds for the confidence level
	ForecastWithConfidence(steps int, level float64) (*Result, error)
}

// Result holds the point predictions of a forecast. Lower and Upper are nil when the
// forecast was produced without bounds.
type Result struct {
	Predictions []float64 `json:"predictions"`
	Lower       []float64 `json:"lower,omitempty"`
	Upper       []float64 `json:"upper,omitempty"`
	Confidence  float64   `json:"confidence"`
}

// MarshalJSON writes undefined predictions and bounds as null
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Predictions stats.Values `json:"predictions"`
		Lower       stats.Values `json:"lower,omitempty"`
		Upper       stats.Values `json:"upper,omitempty"`
		Confidence  stats.Float  `json:"confidence"`
	}{
		Predictions: r.Predictions,
		Lower:       r.Lower,
		Upper:       r.Upper,
		Confidence:  stats.Float(r.Confidence),
	})
}

// HasBounds reports whether lower and upper bounds are available
func (r *Result) HasBounds() bool {
	return r != nil && r.Lower != nil && r.Upper != nil
}

// withMargin returns a copy of the result with symmetric bounds of margin around every
// prediction and the confidence replaced by level
func (r *Result) withMargin(margin, level float64) *Result {
	lower := make([]float64, len(r.Predictions))
	upper := make([]float64, len(r.Predictions))
	for i, p := range r.Predictions {
		lower[i] = p - margin
		upper[i] = p + margin
	}
	return &Result{
		Predictions: r.Predictions,
		Lower:       lower,
		Upper:       upper,
		Confidence:  level,
	}
}

// flat returns steps copies of val
func flat(val float64, steps int) []float64 {
	res := make([]float64, steps)
	for i := range res {
		res[i] = val
	}
	return res
}

// zScore maps a confidence level to the two sided normal quantile. Only the 95% and 90%
// quantiles are distinguished.
func zScore(level float64) float64 {
	if level >= 0.95 {
		return z95
	}
	return z90
}

func validateSteps(steps int) error {
	if steps < 0 {
		return fmt.Errorf("got %d, %w", steps, ErrNegativeSteps)
	}
	return nil
}

func validateLevel(level float64) error {
	if level < 0 || level > 1 {
		return fmt.Errorf("got %.3f, %w", level, ErrConfidenceLevel)
	}
	return nil
}
