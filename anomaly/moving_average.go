package anomaly

import (
	"math"

	"github.com/aouyang1/go-telemetry/timedataset"
)

// minDenominator floors the moving average magnitude when computing relative deviation
const minDenominator = 1e-10

// DetectMovingAverage compares the value at the center of every full window against the
// window's trailing mean. Values whose relative deviation |y-ma|/max(|ma|, 1e-10) exceeds the
// deviation threshold are flagged as contextual anomalies.
func (d *Detector) DetectMovingAverage(ts *timedataset.TimeSeries, window int) ([]Anomaly, error) {
	ma, err := ts.MovingAverage(window)
	if err != nil {
		return nil, err
	}

	offset := window / 2
	anomalies := []Anomaly{}
	for i, avg := range ma {
		idx := i + offset
		if idx >= ts.Len() {
			break
		}
		dev := math.Abs(ts.Y[idx]-avg) / math.Max(math.Abs(avg), minDenominator)
		if dev > d.opt.DeviationThreshold {
			anomalies = append(anomalies, newAnomaly(ts, idx, TypeContextual, dev, MethodMovingAverage))
		}
	}
	return anomalies, nil
}
