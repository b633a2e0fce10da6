package telemetry

import (
	"testing"
	"time"

	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/pkg/profile"
)

var benchReport *Report

func setupBenchSeries() *timedataset.TimeSeries {
	// a week of minutely samples with an hourly cycle
	n := 7 * 24 * 60
	t := timedataset.GenerateT(n, time.Minute, time.Now)
	y := timedataset.GenerateConstY(n, 98.3).
		Add(timedataset.GenerateWaveY(n, 10.5, 60, 0)).
		Add(timedataset.GenerateNoise(n, 3.2, 5)).
		Add(timedataset.GenerateChange(n, n/2, 10.0, 0.0)).
		SetConst(175.7, n*2/3, n*2/3+n/80)

	ts, err := timedataset.NewWithTime(t, y)
	if err != nil {
		panic(err)
	}
	return ts
}

func BenchmarkAnalyze(b *testing.B) {
	ts := setupBenchSeries()

	opt := NewDefaultOptions()
	opt.Period = 60
	opt.Holdout = 60
	a, err := New(opt)
	if err != nil {
		panic(err)
	}

	b.ResetTimer()
	defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	for b.Loop() {
		benchReport, err = a.Analyze(ts)
		if err != nil {
			panic(err)
		}
	}
}
