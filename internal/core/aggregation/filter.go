package aggregation

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidFilter marks caller input that fails validation.
var ErrInvalidFilter = errors.New("invalid filter")

// Team selects one shift or all of them.
type Team string

const (
	TeamAll Team = "all"
	Team1   Team = "1"
	Team2   Team = "2"
	Team3   Team = "3"
)

// Valid reports whether t is a known team value.
func (t Team) Valid() bool {
	switch t {
	case TeamAll, Team1, Team2, Team3:
		return true
	}
	return false
}

// ShiftID returns the shift number a team maps to; false for TeamAll.
func (t Team) ShiftID() (int, bool) {
	if t == TeamAll {
		return 0, false
	}
	id, err := strconv.Atoi(string(t))
	if err != nil {
		return 0, false
	}
	return id, true
}

// Mode restricts which samples enter an aggregate.
type Mode string

const (
	// ModeRaw keeps every non-null reading, zeros included.
	ModeRaw Mode = "raw"
	// ModeRunning keeps only readings > 0 (line actually running).
	ModeRunning Mode = "running"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeRaw || m == ModeRunning
}

// FilterSpec is the validated set of constraints for one aggregation call.
// Build it with NewFilterSpec and pass it by value.
type FilterSpec struct {
	StartDate time.Time
	EndDate   time.Time
	Team      Team
	MachineID int64 // 0 means all machines
	Mode      Mode
}

// NewFilterSpec validates raw request values and returns a FilterSpec.
// Empty team and mode default to TeamAll and ModeRaw.
func NewFilterSpec(startDate, endDate, team string, machineID int64, mode string) (FilterSpec, error) {
	start, err := ParseDay(startDate)
	if err != nil {
		return FilterSpec{}, fmt.Errorf("%w: startDate: %v", ErrInvalidFilter, err)
	}
	end, err := ParseDay(endDate)
	if err != nil {
		return FilterSpec{}, fmt.Errorf("%w: endDate: %v", ErrInvalidFilter, err)
	}

	if team == "" {
		team = string(TeamAll)
	}
	if mode == "" {
		mode = string(ModeRaw)
	}

	f := FilterSpec{
		StartDate: start,
		EndDate:   end,
		Team:      Team(team),
		MachineID: machineID,
		Mode:      Mode(mode),
	}
	if err := f.Validate(); err != nil {
		return FilterSpec{}, err
	}
	return f, nil
}

// Validate checks the invariants every consumer of a FilterSpec relies on.
func (f FilterSpec) Validate() error {
	if f.StartDate.After(f.EndDate) {
		return fmt.Errorf("%w: startDate must be before or equal to endDate", ErrInvalidFilter)
	}
	if !f.Team.Valid() {
		return fmt.Errorf("%w: team must be one of: all, 1, 2, 3", ErrInvalidFilter)
	}
	if f.MachineID < 0 {
		return fmt.Errorf("%w: machineId must be >= 1", ErrInvalidFilter)
	}
	if !f.Mode.Valid() {
		return fmt.Errorf("%w: mode must be one of: raw, running", ErrInvalidFilter)
	}
	return nil
}

// DaysCount is the number of calendar days covered by the filter.
func (f FilterSpec) DaysCount() int {
	return DaysCount(f.StartDate, f.EndDate)
}

// StartString returns StartDate as YYYY-MM-DD.
func (f FilterSpec) StartString() string { return f.StartDate.Format(DayLayout) }

// EndString returns EndDate as YYYY-MM-DD.
func (f FilterSpec) EndString() string { return f.EndDate.Format(DayLayout) }

// MachineIDOrNil returns nil when no machine filter is set, for JSON echoes.
func (f FilterSpec) MachineIDOrNil() *int64 {
	if f.MachineID <= 0 {
		return nil
	}
	id := f.MachineID
	return &id
}
