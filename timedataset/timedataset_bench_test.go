package timedataset

import "testing"

var benchAvg []float64

func BenchmarkMovingAverage(b *testing.B) {
	n := 7 * 24 * 60
	ts := New(GenerateWaveY(n, 10.0, 60, 0).Add(GenerateNoise(n, 1.0, 1)))

	var err error
	for b.Loop() {
		benchAvg, err = ts.MovingAverage(60)
		if err != nil {
			panic(err)
		}
	}
}
