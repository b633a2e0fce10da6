package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSummary(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		expected Summary
	}{
		"empty": {
			expected: Summary{},
		},
		"odd count": {
			y: []float64{5, 1, 3, 2, 4},
			expected: Summary{
				Mean:   3.0,
				Median: 3.0,
				StdDev: 1.4142135623730951,
				Min:    1.0,
				Max:    5.0,
				Count:  5,
			},
		},
		"even count": {
			y: []float64{4, 1, 3, 2},
			expected: Summary{
				Mean:   2.5,
				Median: 2.5,
				StdDev: 1.118033988749895,
				Min:    1.0,
				Max:    4.0,
				Count:  4,
			},
		},
		"single": {
			y: []float64{7},
			expected: Summary{
				Mean:   7.0,
				Median: 7.0,
				Min:    7.0,
				Max:    7.0,
				Count:  1,
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := NewSummary(td.y)
			assert.InDelta(t, td.expected.Mean, res.Mean, 1e-9)
			assert.InDelta(t, td.expected.Median, res.Median, 1e-9)
			assert.InDelta(t, td.expected.StdDev, res.StdDev, 1e-9)
			assert.Equal(t, td.expected.Min, res.Min)
			assert.Equal(t, td.expected.Max, res.Max)
			assert.Equal(t, td.expected.Count, res.Count)
		})
	}
}

func TestSortedDoesNotMutate(t *testing.T) {
	y := []float64{3, 1, 2}
	s := Sorted(y)
	assert.Equal(t, []float64{1, 2, 3}, s)
	assert.Equal(t, []float64{3, 1, 2}, y)
}

func TestDetectOutliers(t *testing.T) {
	testData := map[string]struct {
		y           []float64
		lowerPerc   float64
		upperPerc   float64
		tukeyFactor float64
		expected    []int
	}{
		"empty": {},
		"no outliers": {
			y:           []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
			lowerPerc:   0.1,
			upperPerc:   0.9,
			tukeyFactor: 1.0,
		},
		"single spike": {
			y:           []float64{1, 2, 1, 2, 1, 2, 1, 2, 100, 1, 2, 1},
			lowerPerc:   0.1,
			upperPerc:   0.8,
			tukeyFactor: 1.0,
			expected:    []int{8},
		},
		"clamped upper percentile": {
			y:           []float64{1, 1, 1, 1},
			lowerPerc:   -1.0,
			upperPerc:   2.0,
			tukeyFactor: 0.0,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := DetectOutliers(td.y, td.lowerPerc, td.upperPerc, td.tukeyFactor)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestTukeyBounds(t *testing.T) {
	lower, upper := TukeyBounds([]float64{4, 1, 3, 2, 5}, 0.2, 0.6, 1.0)
	// band is [sorted[1], sorted[3]] = [2, 4] widened by its width of 2
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 6.0, upper)

	lower, upper = TukeyBounds(nil, 0.1, 0.9, 1.0)
	assert.Equal(t, 0.0, lower)
	assert.Equal(t, 0.0, upper)
}
