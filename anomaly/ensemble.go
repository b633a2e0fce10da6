package anomaly

import (
	"sort"

	"github.com/aouyang1/go-telemetry/timedataset"
	"go.uber.org/zap"
)

// DetectEnsemble runs the z-score and iqr detectors and returns the union of their flagged
// indices in increasing order. Each score is the mean of both method scores where a method
// that did not flag the index contributes 0.
func (d *Detector) DetectEnsemble(ts *timedataset.TimeSeries) ([]Anomaly, error) {
	zAnomalies, err := d.DetectZScore(ts)
	if err != nil {
		return nil, err
	}
	iqrAnomalies, err := d.DetectIQR(ts)
	if err != nil {
		return nil, err
	}

	zScores := scoresByIndex(zAnomalies)
	iqrScores := scoresByIndex(iqrAnomalies)

	indices := make([]int, 0, len(zScores)+len(iqrScores))
	for idx := range zScores {
		indices = append(indices, idx)
	}
	for idx := range iqrScores {
		if _, exists := zScores[idx]; !exists {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	anomalies := make([]Anomaly, 0, len(indices))
	for _, idx := range indices {
		score := (zScores[idx] + iqrScores[idx]) / 2.0
		anomalies = append(anomalies, newAnomaly(ts, idx, TypePoint, score, MethodEnsemble))
	}

	zap.L().Debug("ensemble anomaly detection",
		zap.Int("z_score", len(zAnomalies)),
		zap.Int("iqr", len(iqrAnomalies)),
		zap.Int("combined", len(anomalies)),
	)
	return anomalies, nil
}

func scoresByIndex(anomalies []Anomaly) map[int]float64 {
	res := make(map[int]float64, len(anomalies))
	for _, a := range anomalies {
		res[a.Index] = a.Score
	}
	return res
}
