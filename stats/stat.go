// Package stats provides the summary statistics and percentile helpers shared by the
// container, anomaly detectors and forecasters
package stats

import (
	"math"
	"sort"

	mstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the basic statistics of a slice of values. The standard deviation is
// the population standard deviation, dividing by the count rather than count-1.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// NewSummary computes the summary statistics of y. An empty input produces a zero Summary.
func NewSummary(y []float64) Summary {
	if len(y) == 0 {
		return Summary{}
	}

	mean, std := stat.PopMeanStdDev(y, nil)
	return Summary{
		Mean:   mean,
		Median: Median(y),
		StdDev: std,
		Min:    floats.Min(y),
		Max:    floats.Max(y),
		Count:  len(y),
	}
}

// Median returns the middle value of y, averaging the two middle values for an even count.
func Median(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	m, err := mstats.Median(y)
	if err != nil {
		return math.NaN()
	}
	return m
}

// PopStdDev returns the population standard deviation of y
func PopStdDev(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	_, std := stat.PopMeanStdDev(y, nil)
	return std
}

// Sorted returns a sorted copy of y leaving the input untouched
func Sorted(y []float64) []float64 {
	yCopy := make([]float64, len(y))
	copy(yCopy, y)
	sort.Float64s(yCopy)
	return yCopy
}

// TukeyBounds returns a percentile band of y widened on both sides by the tukey factor
// times the width of the band. Percentiles are clamped to [0, 1].
func TukeyBounds(y []float64, lowerPerc, upperPerc, tukeyFactor float64) (float64, float64) {
	if len(y) == 0 {
		return 0, 0
	}

	lowerPerc = math.Max(lowerPerc, 0.0)
	upperPerc = math.Min(upperPerc, 1.0)
	tukeyFactor = math.Max(tukeyFactor, 0.0)

	yCopy := Sorted(y)
	lowerIdx := int(math.Floor(float64(len(yCopy)) * lowerPerc))
	upperIdx := int(math.Ceil(float64(len(yCopy)) * upperPerc))
	if upperIdx >= len(yCopy) {
		upperIdx = len(yCopy) - 1
	}
	if lowerIdx > upperIdx {
		lowerIdx = upperIdx
	}

	lower := yCopy[lowerIdx]
	upper := yCopy[upperIdx]
	innerRange := upper - lower
	return lower - innerRange*tukeyFactor, upper + innerRange*tukeyFactor
}

// DetectOutliers returns the indices of y outside the band computed by TukeyBounds
func DetectOutliers(y []float64, lowerPerc, upperPerc, tukeyFactor float64) []int {
	if len(y) == 0 {
		return nil
	}

	lower, upper := TukeyBounds(y, lowerPerc, upperPerc, tukeyFactor)

	var outlierIdx []int
	for i := 0; i < len(y); i++ {
		if y[i] > upper || y[i] < lower {
			outlierIdx = append(outlierIdx, i)
		}
	}
	return outlierIdx
}
