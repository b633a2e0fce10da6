package decomposition

import (
	"testing"

	"github.com/aouyang1/go-telemetry/timedataset"
)

var benchRes *Result

func BenchmarkDecompose(b *testing.B) {
	n := 7 * 24 * 60
	y := timedataset.GenerateConstY(n, 100.0).
		Add(timedataset.GenerateWaveY(n, 10.0, 1440, 0)).
		Add(timedataset.GenerateNoise(n, 1.0, 1))
	ts := timedataset.New(y)

	d, err := New(Additive, 1440)
	if err != nil {
		panic(err)
	}

	for b.Loop() {
		benchRes, err = d.Decompose(ts)
		if err != nil {
			panic(err)
		}
	}
}
