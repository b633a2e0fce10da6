package telemetry

import (
	"github.com/aouyang1/go-telemetry/anomaly"
	"github.com/aouyang1/go-telemetry/decomposition"
	"github.com/aouyang1/go-telemetry/feature"
	"github.com/aouyang1/go-telemetry/forecast"
)

// OutlierOptions configures the percentile band used to flag outliers with the tukey method
type OutlierOptions struct {
	UpperPercentile float64 `json:"upper_percentile" yaml:"upper_percentile"`
	LowerPercentile float64 `json:"lower_percentile" yaml:"lower_percentile"`
	TukeyFactor     float64 `json:"tukey_factor" yaml:"tukey_factor"`
}

func NewOutlierOptions() *OutlierOptions {
	return &OutlierOptions{
		UpperPercentile: 0.9,
		LowerPercentile: 0.1,
		TukeyFactor:     1.0,
	}
}

// Options configures every stage of an analysis
type Options struct {
	// seasonal decomposition
	Period int                `json:"period" yaml:"period"`
	Mode   decomposition.Mode `json:"mode" yaml:"mode"`

	// forecasting; a Holdout greater than 0 also backtests the forecaster on the last
	// Holdout samples
	Forecast   *forecast.Options `json:"forecast" yaml:"forecast"`
	Steps      int               `json:"steps" yaml:"steps"`
	Confidence float64           `json:"confidence" yaml:"confidence"`
	Holdout    int               `json:"holdout" yaml:"holdout"`

	// anomaly detection; an AnomalyWindow of 0 disables the moving average detector and nil
	// OutlierOptions disables the tukey detector
	Anomaly        *anomaly.Options `json:"anomaly" yaml:"anomaly"`
	AnomalyWindow  int              `json:"anomaly_window" yaml:"anomaly_window"`
	OutlierOptions *OutlierOptions  `json:"outlier_options,omitempty" yaml:"outlier_options,omitempty"`

	Feature *feature.Options `json:"feature" yaml:"feature"`
}

func NewDefaultOptions() *Options {
	return &Options{
		Period:         7,
		Mode:           decomposition.Additive,
		Forecast:       forecast.NewDefaultOptions(),
		Steps:          10,
		Confidence:     0.95,
		Anomaly:        anomaly.NewDefaultOptions(),
		AnomalyWindow:  5,
		OutlierOptions: NewOutlierOptions(),
		Feature:        feature.NewDefaultOptions(),
	}
}
