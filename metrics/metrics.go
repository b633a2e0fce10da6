// Package metrics instruments the analysis pipeline with prometheus collectors
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "telemetry"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultSkipped = "skipped"
)

// Recorder holds the pipeline collectors on its own registry
type Recorder struct {
	registry *prometheus.Registry

	StageTotal    *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	Anomalies     *prometheus.CounterVec
	Samples       prometheus.Gauge
	ForecastSteps *prometheus.CounterVec
}

// NewRecorder creates a recorder with every collector registered on a fresh registry
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		StageTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "stage_total",
				Help:      "Total number of pipeline stage runs by result",
			},
			[]string{"stage", "result"},
		),
		StageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages in seconds",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
			[]string{"stage"},
		),
		Anomalies: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "anomalies_total",
				Help:      "Total number of anomalies detected by method",
			},
			[]string{"method"},
		),
		Samples: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "series_samples",
				Help:      "Number of samples in the last analyzed series",
			},
		),
		ForecastSteps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forecast_steps_total",
				Help:      "Total number of forecast steps produced by method",
			},
			[]string{"method"},
		),
	}
}

// Registry returns the gatherer holding the recorder's collectors
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveStage records the outcome and elapsed time since start of a pipeline stage
func (r *Recorder) ObserveStage(stage string, start time.Time, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}
	r.StageTotal.WithLabelValues(stage, result).Inc()
	r.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// SkipStage records a stage that did not run
func (r *Recorder) SkipStage(stage string) {
	r.StageTotal.WithLabelValues(stage, ResultSkipped).Inc()
}

func (r *Recorder) RecordAnomalies(method string, n int) {
	r.Anomalies.WithLabelValues(method).Add(float64(n))
}

func (r *Recorder) RecordForecast(method string, steps int) {
	r.ForecastSteps.WithLabelValues(method).Add(float64(steps))
}

func (r *Recorder) SetSamples(n int) {
	r.Samples.Set(float64(n))
}

// WriteTextfile writes every collected metric in the text exposition format, suitable for
// the node exporter textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("unable to write metrics to %s: %w", path, err)
	}
	return nil
}
