package timedataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateT(t *testing.T) {
	nowFunc := func() time.Time {
		return time.Date(1970, 1, 8, 0, 0, 0, 0, time.UTC)
	}

	numPnts := 7
	res := GenerateT(numPnts, 24*time.Hour, nowFunc)
	assert.Len(t, res, numPnts)

	assert.Equal(t, res[0], time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, res[numPnts-1], time.Date(1970, 1, 7, 0, 0, 0, 0, time.UTC))
}

func TestSeries(t *testing.T) {
	numPnts := 7
	s := GenerateConstY(numPnts, 1)

	res := s.Add(GenerateConstY(numPnts, 2))
	require.Equal(t, Series([]float64{3, 3, 3, 3, 3, 3, 3}), res)

	s.SetConst(2.0, 2, 4)
	assert.Equal(t, Series([]float64{3, 3, 2, 2, 3, 3, 3}), s)

	nowFunc := func() time.Time {
		return time.Date(1970, 1, 8, 0, 0, 0, 0, time.UTC)
	}
	tSeries := GenerateT(numPnts, 24*time.Hour, nowFunc)

	// 1970-01-01 is a thursday
	s.MaskWithWeekend(tSeries)
	assert.Equal(t, Series([]float64{0, 0, 2, 2, 0, 0, 0}), s)

	s.Scale(0.5)
	assert.Equal(t, Series([]float64{0, 0, 1, 1, 0, 0, 0}), s)
}

func TestGenerators(t *testing.T) {
	assert.Equal(t, Series([]float64{1, 3, 5, 7}), GenerateLinearY(4, 1, 2))
	assert.Equal(t, Series([]float64{1, 2, 3, 1, 2}), GenerateSeasonalY(5, []float64{1, 2, 3}))
	assert.Equal(t, Series([]float64{0, 0, 0}), GenerateSeasonalY(3, nil))
	assert.Equal(t, Series([]float64{0, 0, 5, 6, 7}), GenerateChange(5, 2, 5, 1))

	wave := GenerateWaveY(4, 2, 4, 0)
	assert.InDeltaSlice(t, []float64{0, 2, 0, -2}, wave, 1e-9)

	noiseA := GenerateNoise(10, 1.0, 42)
	noiseB := GenerateNoise(10, 1.0, 42)
	assert.Equal(t, noiseA, noiseB)
	assert.Len(t, noiseA, 10)
}
