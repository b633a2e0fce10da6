package timedataset

import (
	"fmt"
	"math"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
)

type TimeSlice []time.Time

func (t TimeSlice) StartTime() time.Time {
	var startTime time.Time
	if len(t) < 1 {
		return startTime
	}
	return t[0]
}

func (t TimeSlice) EndTime() time.Time {
	var lastTime time.Time
	if len(t) < 1 {
		return lastTime
	}

	lastTime = t[len(t)-1]
	return lastTime
}

// EstimateFreq returns the most common spacing between consecutive time points, preferring
// the smallest spacing on ties.
func (t TimeSlice) EstimateFreq() (time.Duration, error) {
	if len(t) < 2 {
		return 0, fmt.Errorf("%w, %w", ErrCannotInferFreq, errs.ErrInsufficientData)
	}

	frequencies := make(map[time.Duration]int)
	for i := 1; i < len(t); i++ {
		delta := t[i].Sub(t[i-1])
		frequencies[delta] += 1
	}

	var maxCnt int
	maxDelta := time.Duration(math.MaxInt64)

	for delta, cnt := range frequencies {
		if cnt > maxCnt || (cnt == maxCnt && delta < maxDelta) {
			maxCnt = cnt
			maxDelta = delta
		}
	}
	return maxDelta, nil
}

// Horizon extends the time slice by n points past the end time using the estimated frequency
func (t TimeSlice) Horizon(n int) (TimeSlice, error) {
	freq, err := t.EstimateFreq()
	if err != nil {
		return nil, err
	}
	end := t.EndTime()
	res := make(TimeSlice, 0, n)
	for i := 0; i < n; i++ {
		res = append(res, end.Add(time.Duration(i+1)*freq))
	}
	return res, nil
}
