// Package telemetry analyzes a single numeric time series end to end: summary statistics,
// seasonal decomposition, forecasting with confidence bounds, anomaly detection and feature
// extraction. Each stage is also available on its own from the subpackages.
package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/aouyang1/go-telemetry/anomaly"
	"github.com/aouyang1/go-telemetry/decomposition"
	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/feature"
	"github.com/aouyang1/go-telemetry/forecast"
	"github.com/aouyang1/go-telemetry/metrics"
	"github.com/aouyang1/go-telemetry/timedataset"
	"go.uber.org/zap"
)

const (
	StageStatistics    = "statistics"
	StageDecomposition = "decomposition"
	StageForecast      = "forecast"
	StageBacktest      = "backtest"
	StageAnomaly       = "anomaly"
	StageFeature       = "feature"
)

// Analyzer runs every analysis stage over a series with a fixed set of options
type Analyzer struct {
	opt        *Options
	decomposer *decomposition.Decomposer
	detector   *anomaly.Detector
	recorder   *metrics.Recorder
}

// New creates an Analyzer using the provided options. If no options are provided a default
// is used.
func New(opt *Options) (*Analyzer, error) {
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.Steps < 0 {
		return nil, fmt.Errorf("got %d steps, %w", opt.Steps, forecast.ErrNegativeSteps)
	}
	if opt.Confidence < 0 || opt.Confidence > 1 {
		return nil, fmt.Errorf("got %.3f, %w", opt.Confidence, forecast.ErrConfidenceLevel)
	}
	if opt.Holdout < 0 {
		return nil, fmt.Errorf("holdout must not be negative, got %d, %w", opt.Holdout, errs.ErrInvalidParameter)
	}

	if oo := opt.OutlierOptions; oo != nil && oo.LowerPercentile >= oo.UpperPercentile {
		return nil, fmt.Errorf("outlier lower percentile must be below upper percentile, %w", errs.ErrInvalidParameter)
	}

	decomposer, err := decomposition.New(opt.Mode, opt.Period)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize decomposer, %w", err)
	}
	// validates the forecast options up front so Analyze only fails on data
	if _, err := forecast.New(opt.Forecast); err != nil {
		return nil, fmt.Errorf("unable to initialize forecaster, %w", err)
	}
	detector, err := anomaly.New(opt.Anomaly)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize anomaly detector, %w", err)
	}

	return &Analyzer{
		opt:        opt,
		decomposer: decomposer,
		detector:   detector,
		recorder:   metrics.NewRecorder(),
	}, nil
}

// Recorder returns the metrics recorded across every call to Analyze
func (a *Analyzer) Recorder() *metrics.Recorder {
	return a.recorder
}

// Analyze runs every stage over the series. A stage that needs more samples than the series
// holds is skipped with a warning in the report, any other failure aborts the analysis.
func (a *Analyzer) Analyze(ts *timedataset.TimeSeries) (*Report, error) {
	if ts.IsEmpty() {
		return nil, fmt.Errorf("cannot analyze empty series, %w", errs.ErrInsufficientData)
	}
	a.recorder.SetSamples(ts.Len())

	report := &Report{
		Name: ts.Name,
		Y:    Values(ts.Values()),
	}
	if ts.HasTime() {
		report.T = ts.Copy().T
	}

	start := time.Now()
	report.Statistics = ts.Statistics()
	a.recorder.ObserveStage(StageStatistics, start, nil)

	stages := []struct {
		name string
		run  func(*timedataset.TimeSeries, *Report) error
	}{
		{StageDecomposition, a.decompose},
		{StageForecast, a.forecast},
		{StageBacktest, a.backtest},
		{StageAnomaly, a.detectAnomalies},
		{StageFeature, a.extractFeatures},
	}
	for _, stage := range stages {
		start := time.Now()
		err := stage.run(ts, report)
		if errors.Is(err, errs.ErrInsufficientData) {
			a.recorder.SkipStage(stage.name)
			report.Warnings = append(report.Warnings, fmt.Sprintf("skipped %s: %s", stage.name, err))
			zap.L().Warn("skipped analysis stage",
				zap.String("stage", stage.name),
				zap.String("series", ts.Name),
				zap.Error(err),
			)
			continue
		}
		a.recorder.ObserveStage(stage.name, start, err)
		if err != nil {
			return nil, fmt.Errorf("%s stage failed, %w", stage.name, err)
		}
	}

	zap.L().Debug("analyzed series",
		zap.String("series", ts.Name),
		zap.Int("samples", ts.Len()),
		zap.Int("warnings", len(report.Warnings)),
	)
	return report, nil
}

func (a *Analyzer) decompose(ts *timedataset.TimeSeries, report *Report) error {
	res, err := a.decomposer.Decompose(ts)
	if err != nil {
		return err
	}
	report.Decomposition = &DecompositionReport{
		Mode:     a.decomposer.Mode(),
		Period:   a.decomposer.Period(),
		Trend:    res.Trend,
		Seasonal: res.Seasonal,
		Residual: res.Residual,
	}
	return nil
}

func (a *Analyzer) forecast(ts *timedataset.TimeSeries, report *Report) error {
	f, err := forecast.New(a.opt.Forecast)
	if err != nil {
		return err
	}
	if err := f.Fit(ts); err != nil {
		return err
	}
	res, err := f.ForecastWithConfidence(a.opt.Steps, a.opt.Confidence)
	if err != nil {
		return err
	}

	fr := &ForecastReport{
		Method:      f.Name(),
		Predictions: res.Predictions,
		Lower:       res.Lower,
		Upper:       res.Upper,
		Confidence:  res.Confidence,
	}
	if ts.Len() > 1 && ts.HasTime() {
		horizon, err := ts.T.Horizon(a.opt.Steps)
		if err != nil {
			return err
		}
		fr.T = horizon
	}
	report.Forecast = fr
	a.recorder.RecordForecast(f.Name(), a.opt.Steps)
	return nil
}

func (a *Analyzer) backtest(ts *timedataset.TimeSeries, report *Report) error {
	if a.opt.Holdout == 0 || report.Forecast == nil {
		return nil
	}
	f, err := forecast.New(a.opt.Forecast)
	if err != nil {
		return err
	}
	res, err := forecast.Backtest(f, ts, a.opt.Holdout)
	if err != nil {
		return err
	}
	report.Forecast.Backtest = res
	return nil
}

func (a *Analyzer) detectAnomalies(ts *timedataset.TimeSeries, report *Report) error {
	ensemble, err := a.detector.DetectEnsemble(ts)
	if err != nil {
		return err
	}
	ar := &AnomalyReport{Ensemble: ensemble}
	a.recorder.RecordAnomalies(string(anomaly.MethodEnsemble), len(ensemble))

	if a.opt.AnomalyWindow > 0 && a.opt.AnomalyWindow <= ts.Len() {
		contextual, err := a.detector.DetectMovingAverage(ts, a.opt.AnomalyWindow)
		if err != nil {
			return err
		}
		ar.Contextual = contextual
		a.recorder.RecordAnomalies(string(anomaly.MethodMovingAverage), len(contextual))
	}

	if oo := a.opt.OutlierOptions; oo != nil {
		outliers, err := a.detector.DetectTukey(ts, oo.LowerPercentile, oo.UpperPercentile, oo.TukeyFactor)
		if err != nil {
			return err
		}
		ar.Outliers = outliers
		a.recorder.RecordAnomalies(string(anomaly.MethodTukey), len(outliers))
	}

	report.Anomalies = ar
	return nil
}

func (a *Analyzer) extractFeatures(ts *timedataset.TimeSeries, report *Report) error {
	set, err := feature.Extract(ts, a.opt.Feature)
	if err != nil {
		return err
	}
	report.Features = set
	return nil
}
