// Package decomposition splits a series into trend, seasonal and residual components using
// classical centered moving average decomposition.
package decomposition

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Mode is how the components combine to reconstruct the original value
type Mode int

const (
	// Additive reconstructs as trend + seasonal + residual
	Additive Mode = iota
	// Multiplicative reconstructs as trend * seasonal * residual
	Multiplicative
)

func (m Mode) String() string {
	switch m {
	case Additive:
		return "additive"
	case Multiplicative:
		return "multiplicative"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode converts the string representation of a mode back into a Mode
func ParseMode(s string) (Mode, error) {
	switch s {
	case "additive", "add":
		return Additive, nil
	case "multiplicative", "mul":
		return Multiplicative, nil
	default:
		return 0, fmt.Errorf("unknown decomposition mode %q, %w", s, errs.ErrInvalidParameter)
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	mode, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Result holds the three components each aligned index for index with the input. Trend and
// residual are NaN near both ends where the centered window does not fit.
type Result struct {
	Trend    []float64 `json:"trend"`
	Seasonal []float64 `json:"seasonal"`
	Residual []float64 `json:"residual"`
}

// Decomposer splits a series given a seasonal period in samples
type Decomposer struct {
	mode   Mode
	period int
}

// New creates a decomposer. The period must be at least 1.
func New(mode Mode, period int) (*Decomposer, error) {
	if period <= 0 {
		return nil, fmt.Errorf("period must be greater than 0, got %d, %w", period, errs.ErrInvalidParameter)
	}
	if mode != Additive && mode != Multiplicative {
		return nil, fmt.Errorf("unknown decomposition %s, %w", mode, errs.ErrInvalidParameter)
	}
	return &Decomposer{mode: mode, period: period}, nil
}

func (d *Decomposer) Mode() Mode {
	return d.mode
}

func (d *Decomposer) Period() int {
	return d.period
}

// Decompose returns the trend, seasonal and residual components of the series. At least two
// full periods of data are required.
func (d *Decomposer) Decompose(ts *timedataset.TimeSeries) (*Result, error) {
	if ts.Len() < 2*d.period {
		return nil, fmt.Errorf(
			"need at least %d data points for period %d, got %d, %w",
			2*d.period, d.period, ts.Len(), errs.ErrInsufficientData,
		)
	}

	y := ts.Y
	trend := d.trend(y)
	seasonal := d.seasonal(d.detrend(y, trend), len(y))
	residual := d.residual(y, trend, seasonal)

	zap.L().Debug("decomposed series",
		zap.String("name", ts.Name),
		zap.Stringer("mode", d.mode),
		zap.Int("period", d.period),
		zap.Int("samples", len(y)),
	)

	return &Result{
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
	}, nil
}

// trend is the centered moving average with a half window of period/2. The averaged span
// covers 2*(period/2)+1 samples but is divided by period, so odd periods average exactly
// one cycle.
func (d *Decomposer) trend(y []float64) []float64 {
	n := len(y)
	halfWindow := d.period / 2

	trend := make([]float64, n)
	for i := 0; i < n; i++ {
		if i < halfWindow || i >= n-halfWindow {
			trend[i] = math.NaN()
			continue
		}
		trend[i] = floats.Sum(y[i-halfWindow:i+halfWindow+1]) / float64(d.period)
	}
	return trend
}

func (d *Decomposer) detrend(y, trend []float64) []float64 {
	detrended := make([]float64, len(y))
	for i := range y {
		detrended[i] = d.remove(y[i], trend[i])
	}
	return detrended
}

// remove takes the component c out of the value v, producing NaN when c is undefined or is
// a zero divisor.
func (d *Decomposer) remove(v, c float64) float64 {
	if math.IsNaN(c) {
		return math.NaN()
	}
	if d.mode == Multiplicative {
		if c == 0 {
			return math.NaN()
		}
		return v / c
	}
	return v - c
}

// seasonal averages the detrended values at every position of the cycle, normalizes the
// pattern and tiles it out to n samples
func (d *Decomposer) seasonal(detrended []float64, n int) []float64 {
	pattern := make([]float64, d.period)
	counts := make([]int, d.period)
	for i, v := range detrended {
		if math.IsNaN(v) {
			continue
		}
		pos := i % d.period
		pattern[pos] += v
		counts[pos]++
	}
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
	}

	mean := floats.Sum(pattern) / float64(d.period)
	switch d.mode {
	case Additive:
		floats.AddConst(-mean, pattern)
	case Multiplicative:
		if mean != 0 {
			floats.Scale(1/mean, pattern)
		}
	}

	seasonal := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = pattern[i%d.period]
	}
	return seasonal
}

func (d *Decomposer) residual(y, trend, seasonal []float64) []float64 {
	residual := make([]float64, len(y))
	for i := range y {
		if math.IsNaN(trend[i]) {
			residual[i] = math.NaN()
			continue
		}
		switch d.mode {
		case Additive:
			residual[i] = y[i] - trend[i] - seasonal[i]
		case Multiplicative:
			if trend[i] == 0 || seasonal[i] == 0 {
				residual[i] = math.NaN()
				continue
			}
			residual[i] = y[i] / (trend[i] * seasonal[i])
		}
	}
	return residual
}

// Reconstruct combines the components back into values. Indices where any component is
// undefined are NaN.
func (r *Result) Reconstruct(mode Mode) []float64 {
	res := make([]float64, len(r.Trend))
	for i := range res {
		switch mode {
		case Multiplicative:
			res[i] = r.Trend[i] * r.Seasonal[i] * r.Residual[i]
		default:
			res[i] = r.Trend[i] + r.Seasonal[i] + r.Residual[i]
		}
	}
	return res
}

// SeasonalPattern returns one cycle of the seasonal component
func (r *Result) SeasonalPattern(period int) []float64 {
	if period <= 0 || period > len(r.Seasonal) {
		return nil
	}
	res := make([]float64, period)
	copy(res, r.Seasonal[:period])
	return res
}
