// Package event describes calendar spans, such as public holidays, that can be matched against
// the time points of a series
package event

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

var (
	ErrStartAfterEnd = fmt.Errorf("event start time is after end time, %w", errs.ErrInvalidParameter)
	ErrUnsetTime     = fmt.Errorf("unset event start or end time, %w", errs.ErrInvalidParameter)
	ErrNoEventName   = fmt.Errorf("no event name, %w", errs.ErrInvalidParameter)
)

// USFederal are the observed US federal holidays
var USFederal = []*cal.Holiday{
	us.NewYear,
	us.MlkDay,
	us.PresidentsDay,
	us.MemorialDay,
	us.Juneteenth,
	us.IndependenceDay,
	us.LaborDay,
	us.ColumbusDay,
	us.VeteransDay,
	us.ThanksgivingDay,
	us.ChristmasDay,
}

// Event is a named half open time span [Start, End)
type Event struct {
	Name  string    `json:"name"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewEvent(name string, start, end time.Time) Event {
	return Event{
		Name:  name,
		Start: start,
		End:   end,
	}
}

func (e *Event) Valid() error {
	if e.Start.IsZero() || e.End.IsZero() {
		return ErrUnsetTime
	}
	if e.Start.After(e.End) {
		return ErrStartAfterEnd
	}
	if e.Name == "" {
		return ErrNoEventName
	}
	return nil
}

// Contains reports whether t falls within the event
func (e *Event) Contains(t time.Time) bool {
	return !t.Before(e.Start) && t.Before(e.End)
}

func Christmas(start, end time.Time, durBefore, durAfter time.Duration) []Event {
	return Holiday(us.ChristmasDay, start, end, durBefore, durAfter)
}

func Thanksgiving(start, end time.Time, durBefore, durAfter time.Duration) []Event {
	return Holiday(us.ThanksgivingDay, start, end, durBefore, durAfter)
}

// Holiday returns a day long event for every observed date of the holiday within [start, end],
// padded by durBefore and durAfter. The observed date is expressed as midnight in the
// location of start.
func Holiday(hol *cal.Holiday, start, end time.Time, durBefore, durAfter time.Duration) []Event {
	startLoc := start.Location()

	events := []Event{}
	for i := start.Year(); i <= end.Year(); i++ {
		_, observed := hol.Calc(i)
		if observed.IsZero() {
			continue
		}
		_, offset := observed.Zone()
		_, startOffset := start.Zone()

		observed = observed.Add(time.Duration(offset) * time.Second).In(startLoc).Add(time.Duration(-startOffset) * time.Second)

		if (observed.After(start) || observed.Equal(start)) && (observed.Before(end) || observed.Equal(end)) {
			events = append(events, Event{
				Name:  strings.ReplaceAll(fmt.Sprintf("%s_%d", hol.Name, i), " ", "_"),
				Start: observed.Add(-durBefore),
				End:   observed.Add(24 * time.Hour).Add(durAfter),
			})
		}
	}
	return events
}

// Holidays returns the events of every holiday between start and end ordered by start time
func Holidays(hols []*cal.Holiday, start, end time.Time, durBefore, durAfter time.Duration) []Event {
	events := []Event{}
	for _, hol := range hols {
		events = append(events, Holiday(hol, start, end, durBefore, durAfter)...)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events
}

// Mask returns 1 for every time point covered by at least one event and 0 otherwise
func Mask(events []Event, t timedataset.TimeSlice) []float64 {
	mask := make([]float64, len(t))
	for i, ct := range t {
		for _, e := range events {
			if e.Contains(ct) {
				mask[i] = 1.0
				break
			}
		}
	}
	return mask
}
