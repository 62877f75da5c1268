package aggregation

import (
	"fmt"
	"time"
)

// ShiftWindow is one row of the shift threshold table.
// Minutes are wall-clock minutes since local midnight, StartMinute inclusive,
// EndMinute exclusive.
type ShiftWindow struct {
	ID          int
	StartMinute int
	EndMinute   int
}

// ShiftTable is the single source of truth for shift boundaries.
// Both the in-process classifier (ShiftID) and the SQL CASE expression
// rendered by QueryBuilder are derived from it.
//
//	1: 06:00 – 13:59:59
//	2: 14:00 – 21:59:59
//	3: 22:00 – 05:59:59 (crosses midnight, fallback)
var ShiftTable = []ShiftWindow{
	{ID: 1, StartMinute: 6 * 60, EndMinute: 14 * 60},
	{ID: 2, StartMinute: 14 * 60, EndMinute: 22 * 60},
}

// NightShiftID is returned for every minute not covered by ShiftTable.
const NightShiftID = 3

// WorkdayOffset is subtracted from a timestamp before taking its date.
// A workday starts at the first minute of shift 1.
var WorkdayOffset = time.Duration(ShiftTable[0].StartMinute) * time.Minute

// ShiftInfo is the logical shift identity of a timestamp.
type ShiftInfo struct {
	ShiftID int       `json:"shiftId"`
	Workday time.Time `json:"shiftWorkday"`
}

// WorkdayString returns the workday formatted as YYYY-MM-DD.
func (s ShiftInfo) WorkdayString() string {
	return s.Workday.Format(DayLayout)
}

// minuteOfDay truncates t to whole minutes on its own wall clock.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ShiftID classifies t into shift 1, 2 or 3 using its local wall clock.
func ShiftID(t time.Time) int {
	return shiftForMinute(minuteOfDay(t))
}

func shiftForMinute(m int) int {
	for _, w := range ShiftTable {
		if m >= w.StartMinute && m < w.EndMinute {
			return w.ID
		}
	}
	return NightShiftID
}

// ShiftWorkday returns the calendar date of t minus WorkdayOffset, at UTC midnight.
// The subtraction happens on the wall clock so DST transitions cannot move a
// sample to the wrong workday.
func ShiftWorkday(t time.Time) time.Time {
	day := Day(t)
	if minuteOfDay(t) < int(WorkdayOffset/time.Minute) {
		return day.AddDate(0, 0, -1)
	}
	return day
}

// ShiftInfoFor returns both the shift id and workday of t.
func ShiftInfoFor(t time.Time) ShiftInfo {
	return ShiftInfo{
		ShiftID: ShiftID(t),
		Workday: ShiftWorkday(t),
	}
}

// ShiftName returns the display label of a shift.
func ShiftName(id int) string {
	start, end, _, err := ShiftTimeRange(id)
	if err != nil {
		return fmt.Sprintf("Équipe %d", id)
	}
	return fmt.Sprintf("Équipe %d (%s–%s)", id, start, end)
}

// ShiftTimeRange returns the HH:MM start and end of a shift and whether it crosses midnight.
func ShiftTimeRange(id int) (start, end string, crossesMidnight bool, err error) {
	for _, w := range ShiftTable {
		if w.ID == id {
			return clock(w.StartMinute), clock(w.EndMinute), false, nil
		}
	}
	if id == NightShiftID {
		last := ShiftTable[len(ShiftTable)-1]
		return clock(last.EndMinute), clock(ShiftTable[0].StartMinute), true, nil
	}
	return "", "", false, fmt.Errorf("unknown shift id %d", id)
}

func clock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
