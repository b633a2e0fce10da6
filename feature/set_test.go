package feature

import (
	"testing"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestFeatureString(t *testing.T) {
	assert.Equal(t, "lag_2", Feature{Kind: KindLag, Param: 2}.String())
	assert.Equal(t, "rolling_mean_5", Feature{Kind: KindRollingMean, Param: 5}.String())
	assert.Equal(t, "holiday", Feature{Kind: KindHoliday}.String())
}

func TestSetMatrix(t *testing.T) {
	set := make(Set)
	assert.Nil(t, set.Matrix())

	set.Add(Feature{Kind: KindLag, Param: 1}, []float64{1, 2, 3, 4})
	set.Add(Feature{Kind: KindRollingMean, Param: 3}, []float64{2, 3, 4})

	assert.Equal(t, []Feature{
		{Kind: KindLag, Param: 1},
		{Kind: KindRollingMean, Param: 3},
	}, set.Labels())
	assert.Equal(t, 3, set.Rows())

	x := set.Matrix()
	require.NotNil(t, x)
	m, n := x.Dims()
	assert.Equal(t, 3, m)
	assert.Equal(t, 2, n)

	// columns are aligned to the end so the lag column drops its first value
	assert.Equal(t, []float64{2, 2}, x.RawRowView(0))
	assert.Equal(t, []float64{4, 4}, x.RawRowView(2))
}

func TestExtract(t *testing.T) {
	y := timedataset.GenerateLinearY(20, 1.0, 0.5)
	tSlice := timedataset.GenerateT(20, 24*time.Hour, func() time.Time {
		return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	})
	ts, err := timedataset.NewWithTime(tSlice, y)
	require.Nil(t, err)

	set, err := Extract(ts, nil)
	require.Nil(t, err)

	labels := make([]string, 0, len(set))
	for _, f := range set.Labels() {
		labels = append(labels, f.String())
	}
	assert.Equal(t, []string{
		"holiday",
		"lag_1",
		"lag_2",
		"rate_of_change_1",
		"rolling_max_3",
		"rolling_mean_3",
		"rolling_min_3",
		"rolling_std_3",
		"trend_5",
	}, labels)
	assert.Equal(t, 16, set.Rows())
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, set["trend_5"].Data[:2], 1e-9)

	// christmas 2024 is within the generated range
	assert.Equal(t, 1.0, floats.Sum(set["holiday"].Data))

	noTime, err := Extract(timedataset.New(y), &Options{Window: 2})
	require.Nil(t, err)
	assert.Len(t, noTime, 4)

	_, err = Extract(timedataset.New(nil), nil)
	assert.ErrorIs(t, err, errs.ErrInsufficientData)

	_, err = Extract(timedataset.New([]float64{1, 2}), &Options{Window: 5})
	assert.ErrorIs(t, err, errs.ErrInsufficientData)
}
