package forecast

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
	"go.uber.org/zap"
)

const esConfidence = 0.7

// ExponentialSmoothing is a simple exponential smoothing forecaster producing a flat line at
// the last smoothed level
type ExponentialSmoothing struct {
	alpha     float64
	lastValue float64
	fitted    bool
}

// NewExponentialSmoothing creates a forecaster with smoothing factor alpha in (0, 1]
func NewExponentialSmoothing(alpha float64) (*ExponentialSmoothing, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("alpha must be between 0 and 1, got %.3f, %w", alpha, errs.ErrInvalidParameter)
	}
	return &ExponentialSmoothing{alpha: alpha}, nil
}

func (e *ExponentialSmoothing) Name() string {
	return string(MethodExponentialSmoothing)
}

func (e *ExponentialSmoothing) Alpha() float64 {
	return e.alpha
}

// Level returns the final smoothed value of the last fit
func (e *ExponentialSmoothing) Level() (float64, error) {
	if !e.fitted {
		return 0, ErrUntrainedForecast
	}
	return e.lastValue, nil
}

func (e *ExponentialSmoothing) Fit(ts *timedataset.TimeSeries) error {
	if ts.IsEmpty() {
		return fmt.Errorf("cannot fit on empty time series, %w", errs.ErrInsufficientData)
	}

	smoothed := ts.Y[0]
	for _, v := range ts.Y[1:] {
		smoothed = e.alpha*v + (1-e.alpha)*smoothed
	}
	e.lastValue = smoothed
	e.fitted = true

	zap.L().Debug("fit exponential smoothing",
		zap.Float64("alpha", e.alpha),
		zap.Float64("level", smoothed),
		zap.Int("samples", ts.Len()),
	)
	return nil
}

func (e *ExponentialSmoothing) Forecast(steps int) (*Result, error) {
	if !e.fitted {
		return nil, ErrUntrainedForecast
	}
	if err := validateSteps(steps); err != nil {
		return nil, err
	}
	return &Result{
		Predictions: flat(e.lastValue, steps),
		Confidence:  esConfidence,
	}, nil
}

// ForecastWithConfidence uses a margin proportional to the level itself,
// lastValue*(1-level)/2, so the band narrows as the requested confidence grows.
func (e *ExponentialSmoothing) ForecastWithConfidence(steps int, level float64) (*Result, error) {
	res, err := e.Forecast(steps)
	if err != nil {
		return nil, err
	}
	if err := validateLevel(level); err != nil {
		return nil, err
	}
	margin := e.lastValue * (1 - level) * 0.5
	return res.withMargin(margin, level), nil
}
