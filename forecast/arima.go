package forecast

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
	"go.uber.org/zap"
)

const (
	arimaConfidence = 0.75

	// arimaStdDev is the unit standard deviation used for every prediction interval
	arimaStdDev = 1.0
)

// Order is the (p, d, q) order of an ARIMA model
type Order struct {
	P int `json:"p"`
	D int `json:"d"`
	Q int `json:"q"`
}

// ARIMA is a simplified autoregressive integrated moving average forecaster.
//
// AR coefficients are estimated independently per lag as sum(x[j]*x[j-k]) / sum(x[j-k]^2)
// over the differenced series rather than by solving the Yule-Walker system, and MA
// coefficients are fixed at 0.1*(i+1)/q without being fit to residuals. Only the AR terms
// contribute to predictions.
//
// Predictions are produced on the differenced scale. When d > 0 they are not integrated
// back to the original scale; use Integrate on the predictions to do so.
type ARIMA struct {
	order Order

	arCoef      []float64
	maCoef      []float64
	differenced []float64
	fitted      bool
}

// NewARIMA creates an ARIMA(p, d, q) model. Negative orders are treated as 0.
func NewARIMA(p, d, q int) *ARIMA {
	order := Order{P: max(p, 0), D: max(d, 0), Q: max(q, 0)}
	if order.P != p || order.D != d || order.Q != q {
		zap.L().Debug("clamped negative arima order", zap.Int("p", p), zap.Int("d", d), zap.Int("q", q))
	}
	return &ARIMA{
		order:  order,
		arCoef: make([]float64, order.P),
		maCoef: make([]float64, order.Q),
	}
}

func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

func (a *ARIMA) Name() string {
	return string(MethodARIMA)
}

func (a *ARIMA) Order() Order {
	return a.order
}

// ARCoefficients returns a copy of the autoregressive coefficients, lag 1 first
func (a *ARIMA) ARCoefficients() []float64 {
	res := make([]float64, len(a.arCoef))
	copy(res, a.arCoef)
	return res
}

// MACoefficients returns a copy of the moving average coefficients
func (a *ARIMA) MACoefficients() []float64 {
	res := make([]float64, len(a.maCoef))
	copy(res, a.maCoef)
	return res
}

// Differenced returns a copy of the differenced history retained by the last fit
func (a *ARIMA) Differenced() []float64 {
	res := make([]float64, len(a.differenced))
	copy(res, a.differenced)
	return res
}

func (a *ARIMA) Fit(ts *timedataset.TimeSeries) error {
	minLen := a.order.P + a.order.D + a.order.Q + 1
	if ts.Len() < minLen {
		return fmt.Errorf(
			"arima%v needs at least %d data points, got %d, %w",
			a.order, minLen, ts.Len(), errs.ErrInsufficientData,
		)
	}

	differenced := Difference(ts.Y, a.order.D)
	if err := a.estimateAR(differenced); err != nil {
		return err
	}
	a.estimateMA()
	a.differenced = differenced
	a.fitted = true

	zap.L().Debug("fit arima",
		zap.Int("p", a.order.P),
		zap.Int("d", a.order.D),
		zap.Int("q", a.order.Q),
		zap.Float64s("ar", a.arCoef),
		zap.Int("samples", ts.Len()),
	)
	return nil
}

// estimateAR fits each lag coefficient on its own as a least squares ratio of the lagged
// cross products. A zero denominator yields a zero coefficient.
func (a *ARIMA) estimateAR(x []float64) error {
	if len(x) <= a.order.P {
		return fmt.Errorf("not enough differenced data for ar(%d) estimation, %w", a.order.P, errs.ErrInsufficientData)
	}

	for i := 0; i < a.order.P; i++ {
		lag := i + 1
		var sumXY, sumX2 float64
		for j := lag; j < len(x); j++ {
			sumXY += x[j] * x[j-lag]
			sumX2 += x[j-lag] * x[j-lag]
		}
		if sumX2 == 0 {
			a.arCoef[i] = 0
			continue
		}
		a.arCoef[i] = sumXY / sumX2
	}
	return nil
}

// estimateMA sets placeholder coefficients of 0.1*(i+1)/q
func (a *ARIMA) estimateMA() {
	for i := 0; i < a.order.Q; i++ {
		a.maCoef[i] = 0.1 * float64(i+1) / float64(a.order.Q)
	}
}

// Forecast extends the differenced history one step at a time with the AR recurrence. The
// predictions stay on the differenced scale.
func (a *ARIMA) Forecast(steps int) (*Result, error) {
	if !a.fitted {
		return nil, ErrUntrainedForecast
	}
	if err := validateSteps(steps); err != nil {
		return nil, err
	}

	history := make([]float64, len(a.differenced), len(a.differenced)+steps)
	copy(history, a.differenced)

	predictions := make([]float64, 0, steps)
	for s := 0; s < steps; s++ {
		var pred float64
		for i, c := range a.arCoef {
			if i >= len(history) {
				break
			}
			pred += c * history[len(history)-1-i]
		}
		predictions = append(predictions, pred)
		history = append(history, pred)
	}

	return &Result{
		Predictions: predictions,
		Confidence:  arimaConfidence,
	}, nil
}

// ForecastWithConfidence bounds the forecast by z times a unit standard deviation
func (a *ARIMA) ForecastWithConfidence(steps int, level float64) (*Result, error) {
	res, err := a.Forecast(steps)
	if err != nil {
		return nil, err
	}
	if err := validateLevel(level); err != nil {
		return nil, err
	}
	return res.withMargin(zScore(level)*arimaStdDev, level), nil
}

// Difference applies the first difference d times, shrinking the length by one per pass
func Difference(y []float64, d int) []float64 {
	res := make([]float64, len(y))
	copy(res, y)
	for i := 0; i < d; i++ {
		res = timedataset.Difference(res)
	}
	return res
}

// Integrate undoes d passes of differencing with a cumulative sum. Each pass prepends a
// seed and grows the length by one: the last original value when d is 1, otherwise 0.
func Integrate(differenced, original []float64, d int) []float64 {
	res := make([]float64, len(differenced))
	copy(res, differenced)

	var seed float64
	if d == 1 && len(original) > 0 {
		seed = original[len(original)-1]
	}

	for i := 0; i < d; i++ {
		integrated := make([]float64, 0, len(res)+1)
		integrated = append(integrated, seed)
		for _, v := range res {
			integrated = append(integrated, integrated[len(integrated)-1]+v)
		}
		res = integrated
	}
	return res
}
