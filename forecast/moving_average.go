package forecast

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

const maConfidence = 0.6

// MovingAverage forecasts a flat line at the mean of the trailing window of the fit series
type MovingAverage struct {
	window  int
	history []float64
}

// NewMovingAverage creates a forecaster averaging the last window values
func NewMovingAverage(window int) (*MovingAverage, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window size must be greater than 0, got %d, %w", window, errs.ErrInvalidParameter)
	}
	return &MovingAverage{window: window}, nil
}

func (m *MovingAverage) Name() string {
	return string(MethodMovingAverage)
}

func (m *MovingAverage) Window() int {
	return m.window
}

func (m *MovingAverage) Fit(ts *timedataset.TimeSeries) error {
	if ts.Len() < m.window {
		return fmt.Errorf("need at least %d data points, got %d, %w", m.window, ts.Len(), errs.ErrInsufficientData)
	}
	m.history = ts.Values()

	zap.L().Debug("fit moving average",
		zap.Int("window", m.window),
		zap.Int("samples", ts.Len()),
	)
	return nil
}

func (m *MovingAverage) tail() ([]float64, error) {
	if m.history == nil {
		return nil, ErrUntrainedForecast
	}
	return m.history[len(m.history)-m.window:], nil
}

func (m *MovingAverage) Forecast(steps int) (*Result, error) {
	last, err := m.tail()
	if err != nil {
		return nil, err
	}
	if err := validateSteps(steps); err != nil {
		return nil, err
	}

	avg := floats.Sum(last) / float64(m.window)
	return &Result{
		Predictions: flat(avg, steps),
		Confidence:  maConfidence,
	}, nil
}

// ForecastWithConfidence bounds the forecast by z standard deviations of the trailing window
func (m *MovingAverage) ForecastWithConfidence(steps int, level float64) (*Result, error) {
	res, err := m.Forecast(steps)
	if err != nil {
		return nil, err
	}
	if err := validateLevel(level); err != nil {
		return nil, err
	}
	last, err := m.tail()
	if err != nil {
		return nil, err
	}
	margin := zScore(level) * stats.PopStdDev(last)
	return res.withMargin(margin, level), nil
}
