package feature

import (
	"fmt"
	"slices"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/event"
	"github.com/aouyang1/go-telemetry/models"
	"github.com/aouyang1/go-telemetry/timedataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RollingStats holds the statistics of every full window. Standard deviations are
// population standard deviations.
type RollingStats struct {
	Means []float64 `json:"means"`
	Stds  []float64 `json:"stds"`
	Mins  []float64 `json:"mins"`
	Maxs  []float64 `json:"maxs"`
}

// LagFeatures returns one column per lag where the column for lag k holds y[i-k] for
// i in [k, len). Columns therefore have len-k values.
func LagFeatures(ts *timedataset.TimeSeries, lags []int) ([][]float64, error) {
	if len(lags) == 0 {
		return nil, fmt.Errorf("must specify at least one lag, %w", errs.ErrInvalidParameter)
	}
	if slices.Min(lags) <= 0 {
		return nil, fmt.Errorf("lags must be greater than 0, %w", errs.ErrInvalidParameter)
	}
	if maxLag := slices.Max(lags); maxLag >= ts.Len() {
		return nil, fmt.Errorf("lag %d is too large for series of length %d, %w", maxLag, ts.Len(), errs.ErrInvalidParameter)
	}

	features := make([][]float64, 0, len(lags))
	for _, lag := range lags {
		col := make([]float64, ts.Len()-lag)
		copy(col, ts.Y[:ts.Len()-lag])
		features = append(features, col)
	}
	return features, nil
}

func validateWindow(ts *timedataset.TimeSeries, window, minWindow int) error {
	if window < minWindow {
		return fmt.Errorf("window size must be at least %d, got %d, %w", minWindow, window, errs.ErrInvalidParameter)
	}
	if window > ts.Len() {
		return fmt.Errorf("window size %d is larger than series length %d, %w", window, ts.Len(), errs.ErrInsufficientData)
	}
	return nil
}

// RollingStatistics computes the mean, standard deviation, min and max over every full
// window, producing len-window+1 values each.
func RollingStatistics(ts *timedataset.TimeSeries, window int) (*RollingStats, error) {
	if err := validateWindow(ts, window, 1); err != nil {
		return nil, err
	}

	n := ts.Len() - window + 1
	res := &RollingStats{
		Means: make([]float64, 0, n),
		Stds:  make([]float64, 0, n),
		Mins:  make([]float64, 0, n),
		Maxs:  make([]float64, 0, n),
	}
	for i := 0; i < n; i++ {
		win := ts.Y[i : i+window]
		mean, std := stat.PopMeanStdDev(win, nil)
		res.Means = append(res.Means, mean)
		res.Stds = append(res.Stds, std)
		res.Mins = append(res.Mins, floats.Min(win))
		res.Maxs = append(res.Maxs, floats.Max(win))
	}
	return res, nil
}

// TrendFeatures fits a least squares line against the sample index over every full window
// and returns the slopes.
func TrendFeatures(ts *timedataset.TimeSeries, window int) ([]float64, error) {
	if err := validateWindow(ts, window, 2); err != nil {
		return nil, err
	}

	x := make([]float64, window)
	floats.Span(x, 0, float64(window-1))

	trends := make([]float64, 0, ts.Len()-window+1)
	for i := 0; i <= ts.Len()-window; i++ {
		slope, err := models.Slope(x, ts.Y[i:i+window])
		if err != nil {
			return nil, fmt.Errorf("unable to fit trend at window %d, %w", i, err)
		}
		trends = append(trends, slope)
	}
	return trends, nil
}

// RateOfChange returns (y[i]-y[i-periods])/y[i-periods] for i in [periods, len). A zero base
// yields 0.
func RateOfChange(ts *timedataset.TimeSeries, periods int) ([]float64, error) {
	if periods <= 0 {
		return nil, fmt.Errorf("periods must be greater than 0, got %d, %w", periods, errs.ErrInvalidParameter)
	}
	if periods >= ts.Len() {
		return nil, fmt.Errorf("periods %d is too large for series of length %d, %w", periods, ts.Len(), errs.ErrInsufficientData)
	}

	roc := make([]float64, 0, ts.Len()-periods)
	for i := periods; i < ts.Len(); i++ {
		base := ts.Y[i-periods]
		if base == 0 {
			roc = append(roc, 0)
			continue
		}
		roc = append(roc, (ts.Y[i]-base)/base)
	}
	return roc, nil
}

// HolidayIndicator returns 1 where the sample falls on an observed US federal holiday and 0
// otherwise. Holidays are evaluated in the location of the first time point.
func HolidayIndicator(ts *timedataset.TimeSeries) ([]float64, error) {
	if !ts.HasTime() {
		return nil, fmt.Errorf("holiday indicator requires time points, %w", errs.ErrInvalidData)
	}
	start := ts.T.StartTime()
	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	events := event.Holidays(event.USFederal, dayStart, ts.T.EndTime(), 0, 0)
	return event.Mask(events, ts.T), nil
}
