package anomaly

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
)

// DetectTukey flags values outside the percentile band [lowerPerc, upperPerc] widened by
// factor times the band width. Scores are the distance beyond the band in band widths.
func (d *Detector) DetectTukey(ts *timedataset.TimeSeries, lowerPerc, upperPerc, factor float64) ([]Anomaly, error) {
	if lowerPerc >= upperPerc {
		return nil, fmt.Errorf("lower percentile %.3f must be below upper percentile %.3f, %w", lowerPerc, upperPerc, errs.ErrInvalidParameter)
	}
	if ts.IsEmpty() {
		return nil, fmt.Errorf("cannot detect outliers on empty series, %w", errs.ErrInsufficientData)
	}

	lower, upper := stats.TukeyBounds(ts.Y, lowerPerc, upperPerc, factor)
	width := upper - lower

	anomalies := []Anomaly{}
	for _, i := range stats.DetectOutliers(ts.Y, lowerPerc, upperPerc, factor) {
		dist := lower - ts.Y[i]
		if ts.Y[i] > upper {
			dist = ts.Y[i] - upper
		}
		anomalies = append(anomalies, newAnomaly(ts, i, TypePoint, scale(dist, width), MethodTukey))
	}
	return anomalies, nil
}
