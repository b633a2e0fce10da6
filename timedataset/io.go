package timedataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v2"
)

var ErrUnknownFormat = fmt.Errorf("unknown series file format, %w", errs.ErrInvalidParameter)

// document is the on disk shape of a series for json and yaml inputs. Times are RFC3339.
type document struct {
	Name   string    `json:"name" yaml:"name"`
	Time   []string  `json:"time" yaml:"time"`
	Values []float64 `json:"values" yaml:"values"`
}

func (d document) series() (*TimeSeries, error) {
	if len(d.Time) == 0 {
		return New(d.Values).WithName(d.Name), nil
	}

	t := make(TimeSlice, 0, len(d.Time))
	for i, raw := range d.Time {
		pt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("unable to parse time at %d, %w, %w", i, err, errs.ErrInvalidData)
		}
		t = append(t, pt)
	}
	ts, err := NewWithTime(t, d.Values)
	if err != nil {
		return nil, err
	}
	return ts.WithName(d.Name), nil
}

// ReadFile loads a series choosing the decoder from the file extension: .csv, .json,
// .yaml or .yml.
func ReadFile(path string) (*TimeSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var ts *TimeSeries
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		ts, err = ReadCSV(f)
	case ".json":
		ts, err = ReadJSON(f)
	case ".yaml", ".yml":
		ts, err = ReadYAML(f)
	default:
		return nil, fmt.Errorf("%s, %w", path, ErrUnknownFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s, %w", path, err)
	}
	if ts.Name == "" {
		ts.Name = name
	}
	return ts, nil
}

// ReadCSV decodes either a single value column or a time,value pair per row. A leading row
// that does not parse is treated as a header.
func ReadCSV(r io.Reader) (*TimeSeries, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var t TimeSlice
	var y []float64
	for row := 0; ; row++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read csv row %d, %w, %w", row, err, errs.ErrInvalidData)
		}

		var rawTime, rawVal string
		switch len(rec) {
		case 1:
			rawVal = rec[0]
		case 2:
			rawTime, rawVal = rec[0], rec[1]
		default:
			return nil, fmt.Errorf("expected 1 or 2 columns at row %d, got %d, %w", row, len(rec), errs.ErrInvalidData)
		}

		val, err := strconv.ParseFloat(strings.TrimSpace(rawVal), 64)
		if err != nil {
			if row == 0 {
				continue
			}
			return nil, fmt.Errorf("unable to parse value at row %d, %w, %w", row, err, errs.ErrInvalidData)
		}
		y = append(y, val)

		if rawTime == "" {
			continue
		}
		pt, err := time.Parse(time.RFC3339, strings.TrimSpace(rawTime))
		if err != nil {
			return nil, fmt.Errorf("unable to parse time at row %d, %w, %w", row, err, errs.ErrInvalidData)
		}
		t = append(t, pt)
	}

	if len(t) == 0 {
		return New(y), nil
	}
	return NewWithTime(t, y)
}

func ReadJSON(r io.Reader) (*TimeSeries, error) {
	var d document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("unable to decode json series, %w, %w", err, errs.ErrInvalidData)
	}
	return d.series()
}

func ReadYAML(r io.Reader) (*TimeSeries, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var d document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("unable to decode yaml series, %w, %w", err, errs.ErrInvalidData)
	}
	return d.series()
}
