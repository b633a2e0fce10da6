package anomaly

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
)

const minZScoreSamples = 3

// DetectZScore flags values whose absolute z-score against the series mean and population
// standard deviation exceeds the threshold. A constant series flags nothing.
func (d *Detector) DetectZScore(ts *timedataset.TimeSeries) ([]Anomaly, error) {
	if ts.Len() < minZScoreSamples {
		return nil, fmt.Errorf("need at least %d data points for z-score detection, got %d, %w", minZScoreSamples, ts.Len(), errs.ErrInsufficientData)
	}

	summary := ts.Statistics()
	anomalies := []Anomaly{}
	if summary.StdDev == 0 {
		return anomalies, nil
	}

	for i, v := range ts.Y {
		z := math.Abs((v - summary.Mean) / summary.StdDev)
		if z > d.opt.ZThreshold {
			anomalies = append(anomalies, newAnomaly(ts, i, TypePoint, z, MethodZScore))
		}
	}
	return anomalies, nil
}
