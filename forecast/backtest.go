package forecast

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/goccy/go-json"
)

// BacktestResult is a forecast over a held out tail of a series along with its scores
type BacktestResult struct {
	Forecast *Result   `json:"forecast"`
	Actual   []float64 `json:"actual"`
	Scores   *Scores   `json:"scores"`
}

func (b BacktestResult) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Forecast *Result      `json:"forecast"`
		Actual   stats.Values `json:"actual"`
		Scores   *Scores      `json:"scores"`
	}{Forecast: b.Forecast, Actual: b.Actual, Scores: b.Scores})
}

// Backtest fits the forecaster on all but the last holdout samples, forecasts holdout steps
// and scores the predictions against the held out values. The forecaster is left fit on the
// training portion.
func Backtest(f Forecaster, ts *timedataset.TimeSeries, holdout int) (*BacktestResult, error) {
	if holdout <= 0 {
		return nil, fmt.Errorf("holdout must be greater than 0, got %d, %w", holdout, errs.ErrInvalidParameter)
	}
	if holdout >= ts.Len() {
		return nil, fmt.Errorf("holdout %d leaves no training data from %d samples, %w", holdout, ts.Len(), errs.ErrInsufficientData)
	}

	split := ts.Len() - holdout
	train, err := ts.Slice(0, split)
	if err != nil {
		return nil, err
	}
	if err := f.Fit(train); err != nil {
		return nil, fmt.Errorf("unable to fit %s on training split, %w", f.Name(), err)
	}

	res, err := f.Forecast(holdout)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast %s over holdout, %w", f.Name(), err)
	}

	actual := make([]float64, holdout)
	copy(actual, ts.Y[split:])

	scores, err := NewScores(res.Predictions, actual)
	if err != nil {
		return nil, err
	}
	return &BacktestResult{
		Forecast: res,
		Actual:   actual,
		Scores:   scores,
	}, nil
}
