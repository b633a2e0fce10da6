// Package anomaly flags unusual samples of a time series using z-scores, the interquartile
// range, deviation from a moving average, a widened percentile band, or an ensemble of the
// z-score and interquartile methods.
package anomaly

import (
	"fmt"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/goccy/go-json"
)

// Type classifies a detected anomaly
type Type string

const (
	// TypePoint is a single value far from the rest of the series
	TypePoint Type = "point"

	// TypeContextual is a value unusual relative to its neighbors
	TypeContextual Type = "contextual"

	// TypeCollective is a run of values unusual as a group
	TypeCollective Type = "collective"
)

// Method names the detection algorithm that produced an anomaly
type Method string

const (
	MethodZScore        Method = "z_score"
	MethodIQR           Method = "iqr"
	MethodMovingAverage Method = "moving_average"
	MethodTukey         Method = "tukey"
	MethodEnsemble      Method = "ensemble"
)

// Anomaly is a flagged sample. Higher scores are more anomalous.
type Anomaly struct {
	Index      int        `json:"index"`
	Time       *time.Time `json:"time,omitempty"`
	Value      float64    `json:"value"`
	Type       Type       `json:"type"`
	Score      float64    `json:"score"`
	DetectedBy Method     `json:"detected_by"`
}

func (a Anomaly) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Index      int         `json:"index"`
		Time       *time.Time  `json:"time,omitempty"`
		Value      stats.Float `json:"value"`
		Type       Type        `json:"type"`
		Score      stats.Float `json:"score"`
		DetectedBy Method      `json:"detected_by"`
	}{
		Index:      a.Index,
		Time:       a.Time,
		Value:      stats.Float(a.Value),
		Type:       a.Type,
		Score:      stats.Float(a.Score),
		DetectedBy: a.DetectedBy,
	})
}

// Options holds the detection thresholds
type Options struct {
	// ZThreshold is the absolute z-score above which a value is flagged
	ZThreshold float64 `json:"z_threshold" yaml:"z_threshold"`

	// IQRMultiplier widens the quartiles by this many interquartile ranges
	IQRMultiplier float64 `json:"iqr_multiplier" yaml:"iqr_multiplier"`

	// DeviationThreshold is the relative deviation from the moving average above which a
	// value is flagged
	DeviationThreshold float64 `json:"deviation_threshold" yaml:"deviation_threshold"`
}

func NewDefaultOptions() *Options {
	return &Options{
		ZThreshold:         3.0,
		IQRMultiplier:      1.5,
		DeviationThreshold: 0.5,
	}
}

// Detector runs the anomaly detection methods with a fixed set of thresholds. It holds no
// state between calls and is safe for concurrent use.
type Detector struct {
	opt *Options
}

// New creates a detector. If no options are provided a default is used.
func New(opt *Options) (*Detector, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.ZThreshold < 0 {
		return nil, fmt.Errorf("z threshold must not be negative, got %.3f, %w", opt.ZThreshold, errs.ErrInvalidParameter)
	}
	if opt.IQRMultiplier < 0 {
		return nil, fmt.Errorf("iqr multiplier must not be negative, got %.3f, %w", opt.IQRMultiplier, errs.ErrInvalidParameter)
	}
	if opt.DeviationThreshold < 0 {
		return nil, fmt.Errorf("deviation threshold must not be negative, got %.3f, %w", opt.DeviationThreshold, errs.ErrInvalidParameter)
	}
	optCopy := *opt
	return &Detector{opt: &optCopy}, nil
}

func (d *Detector) Options() Options {
	return *d.opt
}

// newAnomaly builds the anomaly at index i attaching its time point when the series has one
func newAnomaly(ts *timedataset.TimeSeries, i int, typ Type, score float64, method Method) Anomaly {
	a := Anomaly{
		Index:      i,
		Value:      ts.Y[i],
		Type:       typ,
		Score:      score,
		DetectedBy: method,
	}
	if ts.HasTime() {
		t := ts.T[i]
		a.Time = &t
	}
	return a
}

// Indices returns the index of every anomaly in order
func Indices(anomalies []Anomaly) []int {
	res := make([]int, 0, len(anomalies))
	for _, a := range anomalies {
		res = append(res, a.Index)
	}
	return res
}
