package models

import (
	"testing"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testModel(t *testing.T, model Model, x, y mat.Matrix, intercept float64, coef []float64, tol float64) {
	err := model.Fit(x, y)
	require.Nil(t, err)

	assert.InDelta(t, intercept, model.Intercept(), tol)

	c := model.Coef()
	assert.InDeltaSlice(t, coef, c, tol)

	r2, err := model.Score(x, y)
	require.Nil(t, err)
	assert.InDelta(t, 1.0, r2, tol)
}

func TestOLSRegression(t *testing.T) {
	tol := 1e-5
	testData := map[string]struct {
		x         [][]float64
		y         []float64
		opt       *OLSOptions
		intercept float64
		coef      []float64
	}{
		"ols model intercept": {
			x: [][]float64{
				{0, 3, 9, 12, 15},
				{0, 5, 20, 6, 10},
			},
			y:         []float64{2, 31, 109, 62, 87},
			intercept: 2.0,
			coef:      []float64{3.0, 4.0},
		},
		"ols model no intercept": {
			x: [][]float64{
				{1, 1, 1, 1, 1},
				{0, 3, 9, 12, 15},
				{0, 5, 20, 6, 10},
			},
			y: []float64{2, 31, 109, 62, 87},
			opt: &OLSOptions{
				FitIntercept: false,
			},
			intercept: 0.0,
			coef:      []float64{2.0, 3.0, 4.0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, err := NewDesignMatrix(td.x...)
			require.Nil(t, err)

			y := mat.NewDense(len(td.y), 1, td.y)

			testModel(t, NewOLSRegression(td.opt), x, y, td.intercept, td.coef, tol)
		})
	}
}

func TestOLSRegressionErrors(t *testing.T) {
	model := NewOLSRegression(nil)

	x, err := NewDesignMatrix([]float64{1, 2, 3})
	require.Nil(t, err)

	_, err = model.Predict(x)
	assert.ErrorIs(t, err, errs.ErrModel)

	err = model.Fit(x, mat.NewDense(2, 1, []float64{1, 2}))
	assert.ErrorIs(t, err, errs.ErrInvalidData)

	err = model.Fit(nil, nil)
	assert.ErrorIs(t, err, ErrNoTrainingMatrix)

	constant, err := NewDesignMatrix([]float64{1, 1, 1})
	require.Nil(t, err)
	err = model.Fit(constant, mat.NewDense(3, 1, []float64{1, 2, 3}))
	assert.ErrorIs(t, err, ErrSingularMatrix)

	_, err = NewDesignMatrix([]float64{1, 2}, []float64{1})
	assert.ErrorIs(t, err, errs.ErrInvalidData)
}

func TestSlope(t *testing.T) {
	testData := map[string]struct {
		x        []float64
		y        []float64
		expected float64
		err      error
	}{
		"increasing": {
			x:        []float64{0, 1, 2, 3},
			y:        []float64{1, 3, 5, 7},
			expected: 2.0,
		},
		"flat": {
			x:        []float64{0, 1, 2},
			y:        []float64{4, 4, 4},
			expected: 0.0,
		},
		"noisy decreasing": {
			x:        []float64{0, 1, 2, 3},
			y:        []float64{3, 2, 2, 0},
			expected: -0.9,
		},
		"single point": {
			x:   []float64{0},
			y:   []float64{1},
			err: errs.ErrModel,
		},
		"empty": {
			err: errs.ErrInvalidData,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res, err := Slope(td.x, td.y)
			assert.ErrorIs(t, err, td.err)
			if err == nil {
				assert.InDelta(t, td.expected, res, 1e-9)
			}
		})
	}
}

func BenchmarkOLSRegression(b *testing.B) {
	nObs, nFeat := 1000, 100
	cols := make([][]float64, nFeat)
	for j := range cols {
		cols[j] = timedataset.GenerateNoise(nObs, 1.0, uint64(j))
	}
	x, err := NewDesignMatrix(cols...)
	if err != nil {
		b.Fatal(err)
	}
	y := mat.NewDense(nObs, 1, timedataset.GenerateNoise(nObs, 1.0, uint64(nFeat)))

	for i := 0; i < b.N; i++ {
		model := NewOLSRegression(&OLSOptions{FitIntercept: false})
		if err := model.Fit(x, y); err != nil {
			b.Error(err)
			continue
		}
	}
}
