package telemetry

import (
	"fmt"
	"io"
	"math"

	"github.com/aouyang1/go-telemetry/anomaly"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// lineData converts y into chart points leaving gaps for NaN values
func lineData(y []float64) []opts.LineData {
	data := make([]opts.LineData, 0, len(y))
	for _, v := range y {
		if math.IsNaN(v) {
			data = append(data, opts.LineData{Value: nil})
			continue
		}
		data = append(data, opts.LineData{Value: v})
	}
	return data
}

// padded returns y placed at offset within a slice of length n filled with NaN
func padded(y []float64, offset, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = math.NaN()
	}
	copy(res[offset:], y)
	return res
}

// LineTSeries generates an echart multi-line chart for some arbitrary x axis and values. Each
// series in y must have the same length as x.
func LineTSeries(title string, seriesName []string, x interface{}, y [][]float64) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	line = line.SetXAxis(x)
	for i, series := range seriesName {
		line = line.AddSeries(series, lineData(y[i]))
	}
	return line
}

// xAxis returns the time points of the report extended by the forecast horizon, or sample
// indices when the series has no time
func (r *Report) xAxis() interface{} {
	n := len(r.Y)
	if r.Forecast != nil {
		n += len(r.Forecast.Predictions)
	}

	if len(r.T) > 0 && (r.Forecast == nil || len(r.Forecast.T) == len(r.Forecast.Predictions)) {
		x := make([]string, 0, n)
		for _, t := range r.T {
			x = append(x, t.Format("2006-01-02 15:04:05"))
		}
		if r.Forecast != nil {
			for _, t := range r.Forecast.T {
				x = append(x, t.Format("2006-01-02 15:04:05"))
			}
		}
		return x
	}

	x := make([]int, n)
	for i := range x {
		x[i] = i
	}
	return x
}

// LineForecast plots the observed values followed by the forecast and its bounds
func (r *Report) LineForecast() *charts.Line {
	n := len(r.Y)
	names := []string{"Actual"}
	y := [][]float64{r.Y}
	if r.Forecast != nil {
		steps := len(r.Forecast.Predictions)
		y[0] = padded(r.Y, 0, n+steps)
		names = append(names, "Forecast")
		y = append(y, padded(r.Forecast.Predictions, n, n+steps))
		if r.Forecast.Lower != nil && r.Forecast.Upper != nil {
			names = append(names, "Upper", "Lower")
			y = append(y,
				padded(r.Forecast.Upper, n, n+steps),
				padded(r.Forecast.Lower, n, n+steps),
			)
		}
	}
	title := "Forecast"
	if r.Name != "" {
		title = fmt.Sprintf("%s Forecast", r.Name)
	}
	return LineTSeries(title, names, r.xAxis(), y)
}

// LineAnomalies plots the observed values with the ensemble anomalies overlaid
func (r *Report) LineAnomalies() *charts.Line {
	flagged := make([]float64, len(r.Y))
	for i := range flagged {
		flagged[i] = math.NaN()
	}
	var ensemble []anomaly.Anomaly
	if r.Anomalies != nil {
		ensemble = r.Anomalies.Ensemble
	}
	for _, a := range ensemble {
		flagged[a.Index] = a.Value
	}

	n := len(r.Y)
	if r.Forecast != nil {
		n += len(r.Forecast.Predictions)
	}
	return LineTSeries(
		"Anomalies",
		[]string{"Actual", "Anomaly"},
		r.xAxis(),
		[][]float64{padded(r.Y, 0, n), padded(flagged, 0, n)},
	)
}

// LineDecomposition plots the trend, seasonal and residual components
func (r *Report) LineDecomposition() *charts.Line {
	n := len(r.Y)
	if r.Forecast != nil {
		n += len(r.Forecast.Predictions)
	}
	d := r.Decomposition
	return LineTSeries(
		fmt.Sprintf("%s Decomposition", d.Mode),
		[]string{"Trend", "Seasonal", "Residual"},
		r.xAxis(),
		[][]float64{
			padded(d.Trend, 0, n),
			padded(d.Seasonal, 0, n),
			padded(d.Residual, 0, n),
		},
	)
}

// Plot uses the Apache Echarts library to render an html page showing the forecast, the
// detected anomalies and the decomposition components
func (r *Report) Plot(w io.Writer) error {
	page := components.NewPage()
	page.AddCharts(r.LineForecast(), r.LineAnomalies())
	if r.Decomposition != nil {
		page.AddCharts(r.LineDecomposition())
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("unable to render report, %w", err)
	}
	return nil
}
