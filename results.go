package telemetry

import (
	"github.com/aouyang1/go-telemetry/anomaly"
	"github.com/aouyang1/go-telemetry/decomposition"
	"github.com/aouyang1/go-telemetry/feature"
	"github.com/aouyang1/go-telemetry/forecast"
	"github.com/aouyang1/go-telemetry/stats"
	"github.com/aouyang1/go-telemetry/timedataset"
)

// Values is a float slice encoding NaN as a JSON null
type Values = stats.Values

// DecompositionReport holds the components of the series. Trend and residual are null at the
// ends where the centered moving average is undefined.
type DecompositionReport struct {
	Mode     decomposition.Mode `json:"mode"`
	Period   int                `json:"period"`
	Trend    Values             `json:"trend"`
	Seasonal Values             `json:"seasonal"`
	Residual Values             `json:"residual"`
}

// ForecastReport holds the predictions past the end of the series
type ForecastReport struct {
	Method      string                   `json:"method"`
	T           timedataset.TimeSlice    `json:"time,omitempty"`
	Predictions Values                   `json:"predictions"`
	Lower       Values                   `json:"lower,omitempty"`
	Upper       Values                   `json:"upper,omitempty"`
	Confidence  float64                  `json:"confidence"`
	Backtest    *forecast.BacktestResult `json:"backtest,omitempty"`
}

// AnomalyReport groups the anomalies flagged by each detector
type AnomalyReport struct {
	Ensemble   []anomaly.Anomaly `json:"ensemble"`
	Contextual []anomaly.Anomaly `json:"contextual,omitempty"`
	Outliers   []anomaly.Anomaly `json:"outliers,omitempty"`
}

// Report is the result of analyzing a single series. Stages that could not run because the
// series was too short are nil and noted in Warnings.
type Report struct {
	Name          string                `json:"name,omitempty"`
	T             timedataset.TimeSlice `json:"time,omitempty"`
	Y             Values                `json:"values"`
	Statistics    stats.Summary         `json:"statistics"`
	Decomposition *DecompositionReport  `json:"decomposition,omitempty"`
	Forecast      *ForecastReport       `json:"forecast,omitempty"`
	Anomalies     *AnomalyReport        `json:"anomalies,omitempty"`
	Features      feature.Set           `json:"features,omitempty"`
	Warnings      []string              `json:"warnings,omitempty"`
}
