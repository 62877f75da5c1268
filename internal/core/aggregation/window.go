package aggregation

import (
	"errors"
	"fmt"
	"time"
)

// DayLayout is the wire format of every calendar date in this service.
const DayLayout = "2006-01-02"

// ErrInvertedRange is returned when a range ends before it starts.
var ErrInvertedRange = errors.New("start date is after end date")

// TimeseriesPoint is one day of a dense daily series.
type TimeseriesPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ParseDay parses a YYYY-MM-DD string into a date at UTC midnight.
func ParseDay(s string) (time.Time, error) {
	d, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return d, nil
}

// Day drops the time of day from t, keeping its wall-clock date, at UTC midnight.
// Example: Day(2026-01-11T02:00:00+01:00) → 2026-01-11T00:00:00Z
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysCount returns the number of calendar days in [start, end], inclusive.
func DaysCount(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours()/24) + 1
}

// GenerateDateRange returns every calendar date from start to end inclusive, ascending.
func GenerateDateRange(start, end time.Time) ([]time.Time, error) {
	first, last := Day(start), Day(end)
	if first.After(last) {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvertedRange, first.Format(DayLayout), last.Format(DayLayout))
	}

	days := make([]time.Time, 0, DaysCount(first, last))
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// FillMissingDays emits one point per day of [start, end], taking the value
// from values (keyed by YYYY-MM-DD) or 0 when the day is absent.
// Keys outside the range are ignored.
func FillMissingDays(values map[string]float64, start, end time.Time) ([]TimeseriesPoint, error) {
	days, err := GenerateDateRange(start, end)
	if err != nil {
		return nil, err
	}

	points := make([]TimeseriesPoint, 0, len(days))
	for _, d := range days {
		key := d.Format(DayLayout)
		points = append(points, TimeseriesPoint{
			Date:  key,
			Value: values[key],
		})
	}
	return points, nil
}
