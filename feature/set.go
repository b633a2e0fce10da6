package feature

import (
	"fmt"
	"slices"
	"sort"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/goccy/go-json"
	"gonum.org/v1/gonum/mat"
)

// Set maps each feature label to its column. Columns may differ in length but are all
// aligned to the end of the source series.
type Set map[string]Data

// Data is a single derived column
type Data struct {
	F    Feature   `json:"feature"`
	Data []float64 `json:"data"`
}

func (d Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		F    Feature      `json:"feature"`
		Data stats.Values `json:"data"`
	}{F: d.F, Data: d.Data})
}

func (s Set) Add(f Feature, data []float64) {
	s[f.String()] = Data{F: f, Data: data}
}

// Labels returns all tracked features sorted by label
func (s Set) Labels() []Feature {
	labels := make([]Feature, 0, len(s))
	for _, d := range s {
		labels = append(labels, d.F)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i].String() < labels[j].String()
	})
	return labels
}

// Rows returns the length of the shortest column, the number of samples every feature
// is defined for
func (s Set) Rows() int {
	if len(s) == 0 {
		return 0
	}
	rows := -1
	for _, d := range s {
		if rows < 0 || len(d.Data) < rows {
			rows = len(d.Data)
		}
	}
	return rows
}

// Matrix returns the trailing Rows() samples of every feature with one column per label in
// Labels() order
func (s Set) Matrix() *mat.Dense {
	m := s.Rows()
	if m == 0 {
		return nil
	}

	labels := s.Labels()
	x := mat.NewDense(m, len(labels), nil)
	for j, f := range labels {
		col := s[f.String()].Data
		x.SetCol(j, col[len(col)-m:])
	}
	return x
}

// Options selects the features produced by Extract. Zero values disable the
// corresponding feature.
type Options struct {
	Lags             []int `json:"lags" yaml:"lags"`
	Window           int   `json:"window" yaml:"window"`
	TrendWindow      int   `json:"trend_window" yaml:"trend_window"`
	RateOfChange     int   `json:"rate_of_change" yaml:"rate_of_change"`
	HolidayIndicator bool  `json:"holiday_indicator" yaml:"holiday_indicator"`
}

func NewDefaultOptions() *Options {
	return &Options{
		Lags:             []int{1, 2},
		Window:           3,
		TrendWindow:      5,
		RateOfChange:     1,
		HolidayIndicator: true,
	}
}

// Extract derives every feature enabled in the options. If no options are provided a
// default is used. The holiday indicator is skipped for series without time points. A series
// too short for any enabled feature returns an insufficient data error.
func Extract(ts *timedataset.TimeSeries, opt *Options) (Set, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if ts.IsEmpty() {
		return nil, fmt.Errorf("cannot extract features from empty series, %w", errs.ErrInsufficientData)
	}

	set := make(Set)
	if len(opt.Lags) > 0 {
		if maxLag := slices.Max(opt.Lags); maxLag >= ts.Len() {
			return nil, fmt.Errorf("lag %d needs more than %d samples, %w", maxLag, ts.Len(), errs.ErrInsufficientData)
		}
		lags, err := LagFeatures(ts, opt.Lags)
		if err != nil {
			return nil, err
		}
		for i, lag := range opt.Lags {
			set.Add(Feature{Kind: KindLag, Param: lag}, lags[i])
		}
	}

	if opt.Window > 0 {
		rs, err := RollingStatistics(ts, opt.Window)
		if err != nil {
			return nil, err
		}
		set.Add(Feature{Kind: KindRollingMean, Param: opt.Window}, rs.Means)
		set.Add(Feature{Kind: KindRollingStd, Param: opt.Window}, rs.Stds)
		set.Add(Feature{Kind: KindRollingMin, Param: opt.Window}, rs.Mins)
		set.Add(Feature{Kind: KindRollingMax, Param: opt.Window}, rs.Maxs)
	}

	if opt.TrendWindow > 0 {
		trends, err := TrendFeatures(ts, opt.TrendWindow)
		if err != nil {
			return nil, err
		}
		set.Add(Feature{Kind: KindTrend, Param: opt.TrendWindow}, trends)
	}

	if opt.RateOfChange > 0 {
		roc, err := RateOfChange(ts, opt.RateOfChange)
		if err != nil {
			return nil, err
		}
		set.Add(Feature{Kind: KindRateOfChange, Param: opt.RateOfChange}, roc)
	}

	if opt.HolidayIndicator && ts.HasTime() {
		hol, err := HolidayIndicator(ts)
		if err != nil {
			return nil, err
		}
		set.Add(Feature{Kind: KindHoliday}, hol)
	}
	return set, nil
}
