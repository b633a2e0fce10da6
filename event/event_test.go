package event

import (
	"testing"
	"time"

	"github.com/aouyang1/go-telemetry/errs"
	"github.com/aouyang1/go-telemetry/timedataset"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
	"github.com/stretchr/testify/assert"
)

func TestHoliday(t *testing.T) {
	testData := map[string]struct {
		hol       *cal.Holiday
		start     time.Time
		end       time.Time
		durBefore time.Duration
		durAfter  time.Duration
		expected  []Event
	}{
		"simple": {
			hol:       us.ChristmasDay,
			start:     time.Date(2024, 12, 8, 1, 0, 0, 0, time.UTC),
			end:       time.Date(2026, 12, 8, 1, 0, 0, 0, time.UTC),
			durBefore: 0,
			durAfter:  0,
			expected: []Event{
				{
					"Christmas_Day_2024",
					time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
				},
				{
					"Christmas_Day_2025",
					time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 26, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		"non utc tz": {
			hol:       us.ChristmasDay,
			start:     time.Date(2024, 12, 8, 1, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
			end:       time.Date(2026, 12, 8, 1, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
			durBefore: 0,
			durAfter:  0,
			expected: []Event{
				{
					"Christmas_Day_2024",
					time.Date(2024, 12, 25, 0, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
					time.Date(2024, 12, 26, 0, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
				},
				{
					"Christmas_Day_2025",
					time.Date(2025, 12, 25, 0, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
					time.Date(2025, 12, 26, 0, 0, 0, 0, time.FixedZone("UTC-8", -8*60*60)),
				},
			},
		},

		"with buffer": {
			hol:       us.ChristmasDay,
			start:     time.Date(2024, 12, 8, 1, 0, 0, 0, time.UTC),
			end:       time.Date(2026, 12, 8, 1, 0, 0, 0, time.UTC),
			durBefore: time.Duration(24 * time.Hour),
			durAfter:  time.Duration(2 * 24 * time.Hour),
			expected: []Event{
				{
					"Christmas_Day_2024",
					time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC),
					time.Date(2024, 12, 28, 0, 0, 0, 0, time.UTC),
				},
				{
					"Christmas_Day_2025",
					time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC),
					time.Date(2025, 12, 28, 0, 0, 0, 0, time.UTC),
				},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := Holiday(td.hol, td.start, td.end, td.durBefore, td.durAfter)
			assert.Equal(t, td.expected, res)
		})
	}
}

func TestValid(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	testData := map[string]struct {
		event Event
		err   error
	}{
		"valid":           {event: NewEvent("launch", start, start.Add(time.Hour))},
		"unset end":       {event: NewEvent("launch", start, time.Time{}), err: ErrUnsetTime},
		"start after end": {event: NewEvent("launch", start.Add(time.Hour), start), err: ErrStartAfterEnd},
		"no name":         {event: NewEvent("", start, start.Add(time.Hour)), err: ErrNoEventName},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := td.event.Valid()
			assert.ErrorIs(t, err, td.err)
			if td.err != nil {
				assert.ErrorIs(t, err, errs.ErrInvalidParameter)
			}
		})
	}
}

func TestContains(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e := NewEvent("window", start, start.Add(time.Hour))

	assert.True(t, e.Contains(start))
	assert.True(t, e.Contains(start.Add(59*time.Minute)))
	assert.False(t, e.Contains(start.Add(time.Hour)))
	assert.False(t, e.Contains(start.Add(-time.Second)))
}

func TestHolidays(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)

	res := Holidays([]*cal.Holiday{us.ChristmasDay, us.IndependenceDay}, start, end, 0, 0)
	assert.Equal(t, []Event{
		{
			"Independence_Day_2024",
			time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"Christmas_Day_2024",
			time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
		},
	}, res)

	federal := Holidays(USFederal, start, end, 0, 0)
	assert.Len(t, federal, len(USFederal))
	for i := 1; i < len(federal); i++ {
		assert.True(t, federal[i-1].Start.Before(federal[i].Start))
	}
}

func TestMask(t *testing.T) {
	events := Christmas(
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		0, 0,
	)
	tSlice := timedataset.TimeSlice{
		time.Date(2024, 12, 24, 12, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 25, 18, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 26, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, []float64{0, 1, 1, 0}, Mask(events, tSlice))
	assert.Equal(t, []float64{}, Mask(events, timedataset.TimeSlice{}))
}
