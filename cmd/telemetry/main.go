// Command telemetry analyzes a single time series read from a csv, json or yaml file and
// writes the requested result as JSON to stdout.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/aouyang1/go-telemetry"
	"github.com/aouyang1/go-telemetry/config"
	"github.com/aouyang1/go-telemetry/logger"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var commands = []string{"stats", "decompose", "forecast", "anomalies", "features", "analyze"}

var errUnknownCommand = errors.New("unknown command")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	configPath string
	envFile    string

	period     int
	mode       string
	method     string
	alpha      float64
	window     int
	steps      int
	confidence float64
	holdout    int

	logLevel string
	dev      bool
	plot     string
	metrics  string
	pretty   bool
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *flags) {
	f := &flags{}
	fs := flag.NewFlagSet("telemetry", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.configPath, "config", "", "Path to a YAML config file")
	fs.StringVar(&f.envFile, "env", ".env", "Path to an env file with TELEMETRY_ variables")

	fs.IntVar(&f.period, "period", 0, "Seasonal period in samples")
	fs.StringVar(&f.mode, "mode", "", "Decomposition mode: additive or multiplicative")
	fs.StringVar(&f.method, "method", "", "Forecast method: es, ma or arima")
	fs.Float64Var(&f.alpha, "alpha", 0, "Exponential smoothing factor")
	fs.IntVar(&f.window, "window", 0, "Moving average forecast window")
	fs.IntVar(&f.steps, "steps", 0, "Number of steps to forecast")
	fs.Float64Var(&f.confidence, "confidence", 0, "Forecast confidence level")
	fs.IntVar(&f.holdout, "holdout", 0, "Samples held out to backtest the forecast")

	fs.StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.BoolVar(&f.dev, "dev", false, "Use human readable development logging")
	fs.StringVar(&f.plot, "plot", "", "Write an html plot of the analysis to this path")
	fs.StringVar(&f.metrics, "metrics", "", "Write prometheus metrics in the textfile format to this path")
	fs.BoolVar(&f.pretty, "pretty", false, "Indent the JSON output")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: telemetry [flags] <%s> <file>\n", strings.Join(commands, "|"))
		fmt.Fprintf(stderr, "\nFlags:\n")
		fs.PrintDefaults()
	}
	return fs, f
}

// apply overrides the configuration with every flag set on the command line
func (f *flags) apply(fs *flag.FlagSet, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "period":
			cfg.Decomposition.Period = f.period
		case "mode":
			cfg.Decomposition.Mode = f.mode
		case "method":
			cfg.Forecast.Method = f.method
		case "alpha":
			cfg.Forecast.Alpha = f.alpha
		case "window":
			cfg.Forecast.Window = f.window
		case "steps":
			cfg.Forecast.Steps = f.steps
		case "confidence":
			cfg.Forecast.Confidence = f.confidence
		case "holdout":
			cfg.Forecast.Holdout = f.holdout
		case "log-level":
			cfg.Logging.Level = f.logLevel
		case "dev":
			cfg.Logging.Development = f.dev
		case "plot":
			cfg.Output.Plot = f.plot
		case "metrics":
			cfg.Output.Metrics = f.metrics
		case "pretty":
			cfg.Output.Pretty = f.pretty
		}
	})
}

func run(args []string, stdout, stderr io.Writer) int {
	fs, f := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return exitUsage
	}
	command, path := fs.Arg(0), fs.Arg(1)

	cfg, err := config.Load(f.configPath, f.envFile)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return exitError
	}
	f.apply(fs, cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid configuration: %v\n", err)
		return exitUsage
	}

	log, restore, err := logger.Install(cfg.Logging.Level, cfg.Logging.Development,
		zap.String("run_id", uuid.NewString()),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logger: %v\n", err)
		return exitError
	}
	defer restore()

	out, err := execute(command, path, cfg)
	if errors.Is(err, errUnknownCommand) {
		fmt.Fprintf(stderr, "%v\n", err)
		fs.Usage()
		return exitUsage
	}
	if err != nil {
		log.Error("analysis failed",
			zap.String("command", command),
			zap.String("file", path),
			zap.Error(err),
		)
		return exitError
	}

	var data []byte
	if cfg.Output.Pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}
	if err != nil {
		log.Error("unable to encode result", zap.Error(err))
		return exitError
	}
	fmt.Fprintln(stdout, string(data))
	return exitOK
}

// execute analyzes the series at path and returns the section of the report selected by the
// command. The plot and metrics outputs are written when configured.
func execute(command, path string, cfg *config.Config) (interface{}, error) {
	if !slices.Contains(commands, command) {
		return nil, fmt.Errorf("%w %q", errUnknownCommand, command)
	}

	ts, err := timedataset.ReadFile(path)
	if err != nil {
		return nil, err
	}

	opt, err := cfg.AnalyzerOptions()
	if err != nil {
		return nil, err
	}
	a, err := telemetry.New(opt)
	if err != nil {
		return nil, err
	}

	report, err := a.Analyze(ts)
	if err != nil {
		return nil, err
	}
	zap.L().Info("analyzed series",
		zap.String("series", ts.Name),
		zap.Int("samples", ts.Len()),
		zap.Strings("warnings", report.Warnings),
	)

	if cfg.Output.Plot != "" {
		if err := writePlot(report, cfg.Output.Plot); err != nil {
			return nil, err
		}
	}
	if cfg.Output.Metrics != "" {
		if err := a.Recorder().WriteTextfile(cfg.Output.Metrics); err != nil {
			return nil, err
		}
	}

	return section(command, report)
}

// section picks the part of the report for the command. A stage that was skipped is an
// error when it was explicitly requested.
func section(command string, report *telemetry.Report) (interface{}, error) {
	var (
		out     interface{}
		missing bool
	)
	switch command {
	case "stats":
		out = report.Statistics
	case "decompose":
		out, missing = report.Decomposition, report.Decomposition == nil
	case "forecast":
		out, missing = report.Forecast, report.Forecast == nil
	case "anomalies":
		out, missing = report.Anomalies, report.Anomalies == nil
	case "features":
		out, missing = report.Features, report.Features == nil
	default:
		out = report
	}
	if missing {
		return nil, fmt.Errorf("%s unavailable: %s", command, strings.Join(report.Warnings, "; "))
	}
	return out, nil
}

func writePlot(report *telemetry.Report, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create plot file, %w", err)
	}
	defer file.Close()
	return report.Plot(file)
}
