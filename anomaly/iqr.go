package anomaly

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
)

const minIQRSamples = 4

// DetectIQR flags values outside [q1-k*iqr, q3+k*iqr] where q1 and q3 are the sorted values
// at n/4 and 3n/4. The score is the distance beyond the violated bound in units of iqr, or
// the raw distance when the iqr is 0.
func (d *Detector) DetectIQR(ts *timedataset.TimeSeries) ([]Anomaly, error) {
	if ts.Len() < minIQRSamples {
		return nil, fmt.Errorf("need at least %d data points for iqr detection, got %d, %w", minIQRSamples, ts.Len(), errs.ErrInsufficientData)
	}

	sorted := stats.Sorted(ts.Y)
	n := len(sorted)
	q1 := sorted[n/4]
	q3 := sorted[3*n/4]
	iqr := q3 - q1

	lower := q1 - d.opt.IQRMultiplier*iqr
	upper := q3 + d.opt.IQRMultiplier*iqr

	anomalies := []Anomaly{}
	for i, v := range ts.Y {
		var dist float64
		switch {
		case v < lower:
			dist = lower - v
		case v > upper:
			dist = v - upper
		default:
			continue
		}
		anomalies = append(anomalies, newAnomaly(ts, i, TypePoint, scale(dist, iqr), MethodIQR))
	}
	return anomalies, nil
}

// scale expresses dist in units of width, leaving it unscaled for a zero width
func scale(dist, width float64) float64 {
	if width == 0 {
		return dist
	}
	return dist / width
}
