// Package models holds the linear regression used to estimate local trend slopes
package models

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"gonum.org/v1/gonum/mat"
)

type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}

// NewDesignMatrix builds a matrix with one column per input slice. All columns must have the
// same length.
func NewDesignMatrix(cols ...[]float64) (*mat.Dense, error) {
	if len(cols) == 0 || len(cols[0]) == 0 {
		return nil, fmt.Errorf("design matrix needs at least one non-empty column, %w", errs.ErrInvalidData)
	}
	m := len(cols[0])
	x := mat.NewDense(m, len(cols), nil)
	for j, col := range cols {
		if len(col) != m {
			return nil, fmt.Errorf("column %d has length %d, expected %d, %w", j, len(col), m, errs.ErrInvalidData)
		}
		x.SetCol(j, col)
	}
	return x, nil
}
