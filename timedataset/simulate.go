package timedataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateT produces n time points spaced by interval ending just before the minute
// truncated time returned by nowFunc.
func GenerateT(n int, interval time.Duration, nowFunc func() time.Time) TimeSlice {
	t := make(TimeSlice, 0, n)
	ct := time.Unix(nowFunc().Unix()/60*60, 0).Add(-time.Duration(n) * interval).UTC()
	for i := 0; i < n; i++ {
		t = append(t, ct.Add(interval*time.Duration(i)))
	}
	return t
}

// Series is a builder for synthetic sample values
type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func (s Series) Scale(c float64) Series {
	floats.Scale(c, s)
	return s
}

// SetConst overwrites the half open index range [start, end) with val
func (s Series) SetConst(val float64, start, end int) Series {
	for i := max(start, 0); i < end && i < len(s); i++ {
		s[i] = val
	}
	return s
}

// MaskWithWeekend zeroes every sample that does not fall on a weekend
func (s Series) MaskWithWeekend(t TimeSlice) Series {
	for i := 0; i < len(s); i++ {
		switch t[i].Weekday() {
		case time.Saturday, time.Sunday:
			continue
		default:
			s[i] = 0.0
		}
	}
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateLinearY returns intercept + slope*i
func GenerateLinearY(n int, intercept, slope float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, intercept+slope*float64(i))
	}
	return Series(y)
}

// GenerateWaveY returns a sine wave with a period measured in samples and a phase offset
// also measured in samples.
func GenerateWaveY(n int, amp, period, offset float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, amp*math.Sin(2.0*math.Pi/period*(float64(i)+offset)))
	}
	return Series(y)
}

// GenerateSeasonalY tiles the pattern cyclically over n samples
func GenerateSeasonalY(n int, pattern []float64) Series {
	y := make([]float64, 0, n)
	if len(pattern) == 0 {
		return GenerateConstY(n, 0)
	}
	for i := 0; i < n; i++ {
		y = append(y, pattern[i%len(pattern)])
	}
	return Series(y)
}

// GenerateNoise returns gaussian noise scaled by noiseScale. The same seed always produces
// the same noise.
func GenerateNoise(n int, noiseScale float64, seed uint64) Series {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, r.NormFloat64()*noiseScale)
	}
	return Series(y)
}

// GenerateChange returns a step of bias starting at index chpt followed by a ramp of slope
// per sample
func GenerateChange(n, chpt int, bias, slope float64) Series {
	y := make([]float64, n)
	for i := max(chpt, 0); i < n; i++ {
		y[i] = bias + slope*float64(i-chpt)
	}
	return Series(y)
}
