// Package feature derives model inputs from a time series: lagged values, rolling window
// statistics, local trend slopes, rates of change and a holiday indicator.
//
// Every derived column is aligned to the end of the source series so that its last value
// corresponds to the last sample.
package feature

import (
	"fmt"
)

// Kind identifies how a feature column is derived
type Kind string

const (
	KindLag          Kind = "lag"
	KindRollingMean  Kind = "rolling_mean"
	KindRollingStd   Kind = "rolling_std"
	KindRollingMin   Kind = "rolling_min"
	KindRollingMax   Kind = "rolling_max"
	KindTrend        Kind = "trend"
	KindRateOfChange Kind = "rate_of_change"
	KindHoliday      Kind = "holiday"
)

// Feature labels a derived column by its kind and integer parameter such as the lag or
// window size
type Feature struct {
	Kind  Kind `json:"kind"`
	Param int  `json:"param,omitempty"`
}

// String returns the column label, e.g. lag_2 or rolling_mean_5
func (f Feature) String() string {
	if f.Param == 0 {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s_%d", f.Kind, f.Param)
}
