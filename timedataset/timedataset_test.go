package timedataset

import (
	"math"
	"testing"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithTime(t *testing.T) {
	testData := map[string]struct {
		t        TimeSlice
		y        []float64
		expected *TimeSeries
		err      error
	}{
		"length mismatch": {
			y:   []float64{1},
			err: ErrDatasetLenMismatch,
		},
		"non increasing time": {
			t: TimeSlice{
				time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMontonic,
		},
		"repeated time": {
			t: TimeSlice{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			},
			y:   []float64{1, 2},
			err: ErrNonMontonic,
		},
		"valid": {
			t: TimeSlice{
				time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
			},
			y: []float64{1, 2},
			expected: &TimeSeries{
				T: TimeSlice{
					time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
					time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
				},
				Y: []float64{1, 2},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			ts, err := NewWithTime(td.t, td.y)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				assert.ErrorIs(t, err, errs.ErrInvalidData)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, ts)
		})
	}
}

func TestNewCopiesInput(t *testing.T) {
	y := []float64{1, 2, 3}
	ts := New(y).WithName("cpu")
	y[0] = 100

	assert.Equal(t, []float64{1, 2, 3}, ts.Y)
	assert.Equal(t, "cpu", ts.Name)
	assert.Equal(t, 3, ts.Len())
	assert.False(t, ts.IsEmpty())
	assert.False(t, ts.HasTime())
	assert.True(t, New(nil).IsEmpty())
}

func TestCopy(t *testing.T) {
	tSeries := TimeSlice{
		time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	ts, err := NewWithTime(tSeries, []float64{0, 1})
	require.Nil(t, err)

	next := ts.Copy()
	require.Equal(t, ts, next)

	ts.T[0] = time.Date(1970, 1, 3, 0, 0, 0, 0, time.UTC)
	ts.Y[0] = 5
	require.NotEqual(t, next, ts)
}

func TestMovingAverage(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		window   int
		expected []float64
		err      error
	}{
		"zero window": {
			y:      []float64{1, 2, 3},
			window: 0,
			err:    errs.ErrInvalidParameter,
		},
		"window larger than data": {
			y:      []float64{1, 2, 3},
			window: 4,
			err:    errs.ErrInsufficientData,
		},
		"window of three": {
			y:        []float64{1, 2, 3, 4, 5},
			window:   3,
			expected: []float64{2, 3, 4},
		},
		"window equals length": {
			y:        []float64{1, 2, 3, 4, 5},
			window:   5,
			expected: []float64{3},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := New(td.y).MovingAverage(td.window)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-9)
		})
	}
}

func TestExponentialMovingAverage(t *testing.T) {
	testData := map[string]struct {
		y        []float64
		alpha    float64
		expected []float64
		err      error
	}{
		"zero alpha": {
			y:     []float64{1},
			alpha: 0,
			err:   errs.ErrInvalidParameter,
		},
		"alpha above one": {
			y:     []float64{1},
			alpha: 1.1,
			err:   errs.ErrInvalidParameter,
		},
		"empty": {
			alpha: 0.5,
			err:   errs.ErrInsufficientData,
		},
		"half": {
			y:        []float64{1, 2, 3, 4, 5},
			alpha:    0.5,
			expected: []float64{1, 1.5, 2.25, 3.125, 4.0625},
		},
		"alpha one passes through": {
			y:        []float64{1, 5, 2},
			alpha:    1,
			expected: []float64{1, 5, 2},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := New(td.y).ExponentialMovingAverage(td.alpha)
			if td.err != nil {
				assert.ErrorIs(t, err, td.err)
				return
			}
			require.NoError(t, err)
			assert.InDeltaSlice(t, td.expected, res, 1e-9)
		})
	}
}

func TestDiffAndPctChange(t *testing.T) {
	ts := New([]float64{1, 3, 0, 4})
	assert.Equal(t, []float64{2, -3, 4}, ts.Diff())
	assert.InDeltaSlice(t, []float64{2, -1, 0}, ts.PctChange(), 1e-9)

	single := New([]float64{1})
	assert.Empty(t, single.Diff())
	assert.Empty(t, single.PctChange())
}

func TestSlice(t *testing.T) {
	tSeries := GenerateT(5, time.Hour, func() time.Time { return time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC) })
	ts, err := NewWithTime(tSeries, []float64{1, 2, 3, 4, 5})
	require.NoError(t, err)
	ts.WithName("mem")

	res, err := ts.Slice(1, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, res.Y)
	assert.Equal(t, tSeries[1:3], res.T)
	assert.Equal(t, "mem", res.Name)

	for _, idx := range [][2]int{{3, 3}, {4, 2}, {0, 6}, {-1, 2}} {
		_, err := ts.Slice(idx[0], idx[1])
		assert.ErrorIs(t, err, errs.ErrInvalidParameter)
	}
}

func TestStatistics(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5}).Statistics()
	assert.Equal(t, 3.0, s.Mean)
	assert.Equal(t, 3.0, s.Median)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 5.0, s.Max)
	assert.Equal(t, 5, s.Count)
	assert.InDelta(t, math.Sqrt(2), s.StdDev, 1e-9)
}
