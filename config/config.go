// Package config loads the command line tool configuration. Values start from Default, are
// overlaid by an optional YAML file and then by TELEMETRY_ prefixed environment variables,
// which may be supplied through a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/aouyang1/go-telemetry"
	"github.com/aouyang1/go-telemetry/anomaly"
	"github.com/aouyang1/go-telemetry/decomposition"
	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/feature"
	"github.com/aouyang1/go-telemetry/forecast"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "TELEMETRY"

// Config is the complete tool configuration. Environment variables are named after the
// section and field, e.g. TELEMETRY_FORECAST_ALPHA or TELEMETRY_ANOMALY_Z_THRESHOLD.
type Config struct {
	Decomposition DecompositionConfig `yaml:"decomposition"`
	Forecast      ForecastConfig      `yaml:"forecast"`
	Anomaly       AnomalyConfig       `yaml:"anomaly"`
	Outlier       OutlierConfig       `yaml:"outlier"`
	Feature       FeatureConfig       `yaml:"feature"`
	Logging       LoggingConfig       `yaml:"logging"`
	Output        OutputConfig        `yaml:"output"`
}

type DecompositionConfig struct {
	Period int    `yaml:"period" validate:"gte=1"`
	Mode   string `yaml:"mode" validate:"oneof=additive multiplicative add mul"`
}

type ForecastConfig struct {
	Method     string  `yaml:"method" validate:"oneof=es ma arima"`
	Alpha      float64 `yaml:"alpha" validate:"gt=0,lte=1"`
	Window     int     `yaml:"window" validate:"gte=1"`
	P          int     `yaml:"p" validate:"gte=0"`
	D          int     `yaml:"d" validate:"gte=0"`
	Q          int     `yaml:"q" validate:"gte=0"`
	Steps      int     `yaml:"steps" validate:"gte=0"`
	Confidence float64 `yaml:"confidence" validate:"gte=0,lte=1"`
	Holdout    int     `yaml:"holdout" validate:"gte=0"`
}

type AnomalyConfig struct {
	ZThreshold         float64 `yaml:"z_threshold" split_words:"true" validate:"gte=0"`
	IQRMultiplier      float64 `yaml:"iqr_multiplier" split_words:"true" validate:"gte=0"`
	DeviationThreshold float64 `yaml:"deviation_threshold" split_words:"true" validate:"gte=0"`
	Window             int     `yaml:"window" validate:"gte=0"`
}

// OutlierConfig configures the tukey percentile band detector
type OutlierConfig struct {
	Enabled         bool    `yaml:"enabled"`
	LowerPercentile float64 `yaml:"lower_percentile" split_words:"true" validate:"gte=0,lte=1,ltfield=UpperPercentile"`
	UpperPercentile float64 `yaml:"upper_percentile" split_words:"true" validate:"gte=0,lte=1"`
	TukeyFactor     float64 `yaml:"tukey_factor" split_words:"true" validate:"gte=0"`
}

type FeatureConfig struct {
	Lags             []int `yaml:"lags" validate:"dive,gte=1"`
	Window           int   `yaml:"window" validate:"gte=0"`
	TrendWindow      int   `yaml:"trend_window" split_words:"true" validate:"eq=0|gte=2"`
	RateOfChange     int   `yaml:"rate_of_change" split_words:"true" validate:"gte=0"`
	HolidayIndicator bool  `yaml:"holiday_indicator" split_words:"true"`
}

type LoggingConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

type OutputConfig struct {
	Plot    string `yaml:"plot"`
	Metrics string `yaml:"metrics"`
	Pretty  bool   `yaml:"pretty"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	fOpt := forecast.NewDefaultOptions()
	aOpt := anomaly.NewDefaultOptions()
	featOpt := feature.NewDefaultOptions()
	oOpt := telemetry.NewOutlierOptions()
	return &Config{
		Decomposition: DecompositionConfig{
			Period: 7,
			Mode:   decomposition.Additive.String(),
		},
		Forecast: ForecastConfig{
			Method:     string(fOpt.Method),
			Alpha:      fOpt.Alpha,
			Window:     fOpt.Window,
			P:          fOpt.P,
			D:          fOpt.D,
			Q:          fOpt.Q,
			Steps:      10,
			Confidence: 0.95,
		},
		Anomaly: AnomalyConfig{
			ZThreshold:         aOpt.ZThreshold,
			IQRMultiplier:      aOpt.IQRMultiplier,
			DeviationThreshold: aOpt.DeviationThreshold,
			Window:             5,
		},
		Outlier: OutlierConfig{
			Enabled:         true,
			LowerPercentile: oOpt.LowerPercentile,
			UpperPercentile: oOpt.UpperPercentile,
			TukeyFactor:     oOpt.TukeyFactor,
		},
		Feature: FeatureConfig{
			Lags:             featOpt.Lags,
			Window:           featOpt.Window,
			TrendWindow:      featOpt.TrendWindow,
			RateOfChange:     featOpt.RateOfChange,
			HolidayIndicator: featOpt.HolidayIndicator,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path if it is not empty,
// and the environment. Environment files that do not exist are ignored; variables already set
// in the process environment take precedence over the files. The result is not validated so
// callers can apply further overrides before calling Validate.
func Load(path string, envFiles ...string) (*Config, error) {
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w, %w", err, errs.ErrInvalidParameter)
	}

	return cfg, nil
}

// loadFile overlays the fields present in the YAML file at path
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w, %w", path, err, errs.ErrInvalidParameter)
	}
	return nil
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid value for %s failing %q, %w", verrs[0].Namespace(), verrs[0].Tag(), errs.ErrInvalidParameter)
		}
		return fmt.Errorf("config validation failed: %w, %w", err, errs.ErrInvalidParameter)
	}
	return nil
}

// AnalyzerOptions converts the configuration into analyzer options
func (c *Config) AnalyzerOptions() (*telemetry.Options, error) {
	mode, err := decomposition.ParseMode(c.Decomposition.Mode)
	if err != nil {
		return nil, err
	}

	lags := make([]int, len(c.Feature.Lags))
	copy(lags, c.Feature.Lags)

	var outlier *telemetry.OutlierOptions
	if c.Outlier.Enabled {
		outlier = &telemetry.OutlierOptions{
			LowerPercentile: c.Outlier.LowerPercentile,
			UpperPercentile: c.Outlier.UpperPercentile,
			TukeyFactor:     c.Outlier.TukeyFactor,
		}
	}

	return &telemetry.Options{
		Period: c.Decomposition.Period,
		Mode:   mode,
		Forecast: &forecast.Options{
			Method: forecast.Method(c.Forecast.Method),
			Alpha:  c.Forecast.Alpha,
			Window: c.Forecast.Window,
			P:      c.Forecast.P,
			D:      c.Forecast.D,
			Q:      c.Forecast.Q,
		},
		Steps:      c.Forecast.Steps,
		Confidence: c.Forecast.Confidence,
		Holdout:    c.Forecast.Holdout,
		Anomaly: &anomaly.Options{
			ZThreshold:         c.Anomaly.ZThreshold,
			IQRMultiplier:      c.Anomaly.IQRMultiplier,
			DeviationThreshold: c.Anomaly.DeviationThreshold,
		},
		AnomalyWindow:  c.Anomaly.Window,
		OutlierOptions: outlier,
		Feature: &feature.Options{
			Lags:             lags,
			Window:           c.Feature.Window,
			TrendWindow:      c.Feature.TrendWindow,
			RateOfChange:     c.Feature.RateOfChange,
			HolidayIndicator: c.Feature.HolidayIndicator,
		},
	}, nil
}
