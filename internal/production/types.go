package production

import (
	"github.com/delta-line/line-metrics/internal/core/aggregation"
)

// FilterQuery is the query string accepted by every metric endpoint.
type FilterQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
	Team      string `form:"team" binding:"omitempty,oneof=all 1 2 3"`
	MachineID *int64 `form:"machineId" binding:"omitempty,min=1"`
	Mode      string `form:"mode" binding:"omitempty,oneof=raw running"`
}

// FilterSpec validates the bound query; an absent machineId selects all machines.
func (q FilterQuery) FilterSpec() (aggregation.FilterSpec, error) {
	var machineID int64
	if q.MachineID != nil {
		machineID = *q.MachineID
	}
	return aggregation.NewFilterSpec(q.StartDate, q.EndDate, q.Team, machineID, q.Mode)
}

// filterEcho repeats the applied filters in summary responses.
type filterEcho struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Team      string `json:"team"`
	MachineID *int64 `json:"machineId"`
	Mode      string `json:"mode"`
}

func echo(f aggregation.FilterSpec) filterEcho {
	return filterEcho{
		StartDate: f.StartString(),
		EndDate:   f.EndString(),
		Team:      string(f.Team),
		MachineID: f.MachineIDOrNil(),
		Mode:      string(f.Mode),
	}
}

// FootageSummary is the KPI block of the footage page.
type FootageSummary struct {
	filterEcho
	TotalM    int64 `json:"metrageTotalM"`
	DaysCount int   `json:"daysCount"`
	DailyAvgM int64 `json:"metrageDailyAvgM"`
}

// SpeedSummary is the KPI block of the speed page, in m/min.
type SpeedSummary struct {
	filterEcho
	AvgSpeedMpm float64 `json:"avgSpeedMpm"`
	MaxSpeedMpm float64 `json:"maxSpeedMpm"`
}

// TimeseriesResponse is a dense daily series for charting.
type TimeseriesResponse struct {
	Unit   string                        `json:"unit"`
	Points []aggregation.TimeseriesPoint `json:"points"`
}

// FootageOverview bundles the summary and series of one footage request.
type FootageOverview struct {
	Summary    *FootageSummary     `json:"summary"`
	Timeseries *TimeseriesResponse `json:"timeseries"`
}

// SpeedOverview bundles the summary and series of one speed request.
type SpeedOverview struct {
	Summary    *SpeedSummary       `json:"summary"`
	Timeseries *TimeseriesResponse `json:"timeseries"`
}
