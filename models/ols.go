package models

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// singularTol is the smallest magnitude of an R diagonal entry treated as non-zero
const singularTol = 1e-12

type OLSOptions struct {
	FitIntercept bool
}

func NewDefaultOLSOptions() *OLSOptions {
	return &OLSOptions{
		FitIntercept: true,
	}
}

// OLSRegression computes ordinary least squares using QR factorization
type OLSRegression struct {
	opt       *OLSOptions
	coef      []float64
	intercept float64
	fitted    bool
}

func NewOLSRegression(opt *OLSOptions) *OLSRegression {
	if opt == nil {
		opt = NewDefaultOLSOptions()
	}
	return &OLSRegression{
		opt: opt,
	}
}

// withOnes prepends a column of ones to x
func withOnes(x mat.Matrix) mat.Matrix {
	m, _ := x.Dims()
	ones := make([]float64, m)
	floats.AddConst(1.0, ones)
	onesMx := mat.NewDense(1, m, ones)

	var xWithOnes mat.Dense
	xWithOnes.Stack(onesMx, x.T())
	return xWithOnes.T()
}

func (o *OLSRegression) Fit(x, y mat.Matrix) error {
	if x == nil {
		return ErrNoTrainingMatrix
	}
	if y == nil {
		return ErrNoTargetMatrix
	}
	m, n := x.Dims()

	ym, _ := y.Dims()
	if ym != m {
		return fmt.Errorf("training data has %d rows and target has %d row, %w", m, ym, ErrTargetLenMismatch)
	}

	if o.opt.FitIntercept {
		x = withOnes(x)
		_, n = x.Dims()
	}
	if m < n {
		return fmt.Errorf("%d rows cannot determine %d coefficients, %w", m, n, ErrSingularMatrix)
	}

	qr := new(mat.QR)
	qr.Factorize(x)

	q := new(mat.Dense)
	r := new(mat.Dense)

	qr.QTo(q)
	qr.RTo(r)
	yq := new(mat.Dense)
	yq.Mul(y.T(), q)

	// back substitution on the upper triangular R
	c := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		if math.Abs(r.At(i, i)) < singularTol {
			return fmt.Errorf("zero pivot at column %d, %w", i, ErrSingularMatrix)
		}
		c[i] = yq.At(0, i)
		for j := i + 1; j < n; j++ {
			c[i] -= c[j] * r.At(i, j)
		}
		c[i] /= r.At(i, i)
	}

	if o.opt.FitIntercept {
		o.intercept = c[0]
		o.coef = c[1:]
	} else {
		o.intercept = 0
		o.coef = c
	}
	o.fitted = true
	return nil
}

func (o *OLSRegression) Predict(x mat.Matrix) ([]float64, error) {
	if !o.fitted {
		return nil, ErrUntrainedModel
	}
	if x == nil {
		return nil, ErrNoDesignMatrix
	}

	coef := o.coef
	if o.opt.FitIntercept {
		coef = append([]float64{o.intercept}, o.coef...)
		x = withOnes(x)
	}
	n := len(coef)

	xT := x.T()
	xn, _ := xT.Dims()
	if xn != n {
		return nil, fmt.Errorf("got %d features in design matrix, but expected %d, %w", xn, n, ErrFeatureLenMismatch)
	}
	coefMx := mat.NewDense(1, n, coef)

	var res mat.Dense
	res.Mul(coefMx, xT)
	return res.RawRowView(0), nil
}

// Score returns the r-squared of the predictions on x against y
func (o *OLSRegression) Score(x, y mat.Matrix) (float64, error) {
	if x == nil {
		return 0.0, ErrNoDesignMatrix
	}
	if y == nil {
		return 0.0, ErrNoTargetMatrix
	}

	m, _ := x.Dims()

	ym, _ := y.Dims()
	if m != ym {
		return 0.0, fmt.Errorf("design matrix has %d rows and target has %d rows, %w", m, ym, ErrTargetLenMismatch)
	}

	res, err := o.Predict(x)
	if err != nil {
		return 0.0, err
	}

	ySlice := mat.Col(nil, 0, y)

	return stat.RSquaredFrom(res, ySlice, nil), nil
}

func (o *OLSRegression) Intercept() float64 {
	return o.intercept
}

func (o *OLSRegression) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}

// Slope fits y = a + b*x and returns b
func Slope(x, y []float64) (float64, error) {
	xMx, err := NewDesignMatrix(x)
	if err != nil {
		return 0, err
	}
	yMx, err := NewDesignMatrix(y)
	if err != nil {
		return 0, err
	}

	ols := NewOLSRegression(nil)
	if err := ols.Fit(xMx, yMx); err != nil {
		return 0, err
	}
	return ols.coef[0], nil
}
