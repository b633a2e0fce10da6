package forecast

import (
	"fmt"

	"github.com/aouyang1/go-telemetry/errs"
)

// Method names a forecasting algorithm
type Method string

const (
	MethodExponentialSmoothing Method = "es"
	MethodMovingAverage        Method = "ma"
	MethodARIMA                Method = "arima"
)

// Options selects and parameterizes a forecaster
type Options struct {
	Method Method `json:"method" yaml:"method"`

	// exponential smoothing
	Alpha float64 `json:"alpha" yaml:"alpha"`

	// moving average
	Window int `json:"window" yaml:"window"`

	// arima order
	P int `json:"p" yaml:"p"`
	D int `json:"d" yaml:"d"`
	Q int `json:"q" yaml:"q"`
}

func NewDefaultOptions() *Options {
	return &Options{
		Method: MethodExponentialSmoothing,
		Alpha:  0.3,
		Window: 3,
		P:      2,
		D:      1,
		Q:      1,
	}
}

// New creates the forecaster named by the options. If no options are provided a default is used.
func New(opt *Options) (Forecaster, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}

	switch opt.Method {
	case MethodExponentialSmoothing:
		return NewExponentialSmoothing(opt.Alpha)
	case MethodMovingAverage:
		return NewMovingAverage(opt.Window)
	case MethodARIMA:
		return NewARIMA(opt.P, opt.D, opt.Q), nil
	default:
		return nil, fmt.Errorf("unknown forecast method %q, %w", opt.Method, errs.ErrInvalidParameter)
	}
}
