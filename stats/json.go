package stats

import (
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// Float is a float64 encoding NaN and infinities as a JSON null
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	return appendFloat(nil, float64(f)), nil
}

// Values is a float slice encoding NaN and infinities as JSON nulls
type Values []float64

func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	buf := make([]byte, 0, 2+8*len(v))
	buf = append(buf, '[')
	for i, val := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendFloat(buf, val)
	}
	return append(buf, ']'), nil
}

func appendFloat(buf []byte, v float64) []byte {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return append(buf, "null"...)
	}
	return strconv.AppendFloat(buf, v, 'g', -1, 64)
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Mean   Float `json:"mean"`
		Median Float `json:"median"`
		StdDev Float `json:"std_dev"`
		Min    Float `json:"min"`
		Max    Float `json:"max"`
		Count  int   `json:"count"`
	}{
		Mean:   Float(s.Mean),
		Median: Float(s.Median),
		StdDev: Float(s.StdDev),
		Min:    Float(s.Min),
		Max:    Float(s.Max),
		Count:  s.Count,
	})
}
