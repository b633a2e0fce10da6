package timedataset

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrNonMontonic        = fmt.Errorf("time feature is not monotonic, %w", errs.ErrInvalidData)
	ErrDatasetLenMismatch = fmt.Errorf("time feature has a different length than observations, %w", errs.ErrInvalidData)
	ErrCannotInferFreq    = errors.New("cannot infer frequency from less than 2 time points")
)

// TimeSeries represents an ordered sequence of samples at a regular interval. Time points
// are optional and when present must be the same length as the values and strictly increasing.
type TimeSeries struct {
	T    TimeSlice `json:"time,omitempty" yaml:"time,omitempty"`
	Y    []float64 `json:"values" yaml:"values"`
	Name string    `json:"name,omitempty" yaml:"name,omitempty"`
}

// New returns a TimeSeries over a copy of the input values with no time points.
func New(y []float64) *TimeSeries {
	ySeries := make([]float64, len(y))
	copy(ySeries, y)
	return &TimeSeries{Y: ySeries}
}

// NewWithTime returns an instance of a TimeSeries given a time and value slice.
func NewWithTime(t TimeSlice, y []float64) (*TimeSeries, error) {
	if len(t) != len(y) {
		return nil, fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(t), len(y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(t); i++ {
		if !t[i].After(t[i-1]) {
			return nil, fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
	}

	ts := New(y)
	ts.T = make(TimeSlice, len(t))
	copy(ts.T, t)
	return ts, nil
}

// WithName sets the label of the series and returns it for chaining
func (ts *TimeSeries) WithName(name string) *TimeSeries {
	ts.Name = name
	return ts
}

// Len returns the number of samples
func (ts *TimeSeries) Len() int {
	if ts == nil {
		return 0
	}
	return len(ts.Y)
}

// IsEmpty reports whether the series holds no samples
func (ts *TimeSeries) IsEmpty() bool {
	return ts.Len() == 0
}

// HasTime reports whether the series carries time points
func (ts *TimeSeries) HasTime() bool {
	return ts != nil && len(ts.T) > 0
}

// Values returns a copy of the raw values
func (ts *TimeSeries) Values() []float64 {
	if ts == nil {
		return nil
	}
	res := make([]float64, len(ts.Y))
	copy(res, ts.Y)
	return res
}

func (ts *TimeSeries) Copy() *TimeSeries {
	res := New(ts.Y)
	res.Name = ts.Name
	if ts.T != nil {
		res.T = make(TimeSlice, len(ts.T))
		copy(res.T, ts.T)
	}
	return res
}

// MovingAverage computes the trailing simple moving average over every full window. The
// result has len-window+1 values.
func (ts *TimeSeries) MovingAverage(window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("window size must be greater than 0, %w", errs.ErrInvalidParameter)
	}
	if window > ts.Len() {
		return nil, fmt.Errorf(
			"window size %d is larger than data length %d, %w",
			window, ts.Len(), errs.ErrInsufficientData,
		)
	}

	res := make([]float64, 0, ts.Len()-window+1)
	for i := 0; i <= ts.Len()-window; i++ {
		res = append(res, floats.Sum(ts.Y[i:i+window])/float64(window))
	}
	return res, nil
}

// ExponentialMovingAverage smooths the series where each value is
// alpha*y[i] + (1-alpha)*ema[i-1] seeded with the first value.
func (ts *TimeSeries) ExponentialMovingAverage(alpha float64) ([]float64, error) {
	if alpha <= 0 || alpha > 1 {
		return nil, fmt.Errorf("alpha must be between 0 and 1, got %.3f, %w", alpha, errs.ErrInvalidParameter)
	}
	if ts.IsEmpty() {
		return nil, fmt.Errorf("cannot calculate exponential moving average on empty series, %w", errs.ErrInsufficientData)
	}

	res := make([]float64, ts.Len())
	res[0] = ts.Y[0]
	for i := 1; i < ts.Len(); i++ {
		res[i] = alpha*ts.Y[i] + (1-alpha)*res[i-1]
	}
	return res, nil
}

// Diff returns the first difference y[i+1]-y[i]. Series shorter than 2 return an empty slice.
func (ts *TimeSeries) Diff() []float64 {
	return Difference(ts.Y)
}

// PctChange returns the relative change between consecutive values. A zero base yields 0.
func (ts *TimeSeries) PctChange() []float64 {
	if ts.Len() < 2 {
		return []float64{}
	}
	res := make([]float64, 0, ts.Len()-1)
	for i := 1; i < ts.Len(); i++ {
		if ts.Y[i-1] == 0 {
			res = append(res, 0)
			continue
		}
		res = append(res, (ts.Y[i]-ts.Y[i-1])/ts.Y[i-1])
	}
	return res
}

// Slice returns a new series of the half open range [start, end) keeping time points and name
func (ts *TimeSeries) Slice(start, end int) (*TimeSeries, error) {
	if start < 0 || start >= end || end > ts.Len() {
		return nil, fmt.Errorf("invalid slice indices [%d, %d) for length %d, %w", start, end, ts.Len(), errs.ErrInvalidParameter)
	}

	res := New(ts.Y[start:end])
	res.Name = ts.Name
	if ts.HasTime() {
		res.T = make(TimeSlice, end-start)
		copy(res.T, ts.T[start:end])
	}
	return res, nil
}

// Statistics computes the summary statistics over all values
func (ts *TimeSeries) Statistics() stats.Summary {
	if ts == nil {
		return stats.Summary{}
	}
	return stats.NewSummary(ts.Y)
}

// Difference returns the first difference of y, shrinking the length by one
func Difference(y []float64) []float64 {
	if len(y) < 2 {
		return []float64{}
	}
	res := make([]float64, len(y)-1)
	for i := 0; i < len(y)-1; i++ {
		res[i] = y[i+1] - y[i]
	}
	return res
}
