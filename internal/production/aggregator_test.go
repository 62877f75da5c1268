package production

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/delta-line/line-metrics/internal/core/aggregation"
	"github.com/delta-line/line-metrics/internal/core/storage"
	storagemocks "github.com/delta-line/line-metrics/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testSource = aggregation.SampleSource{
	Table:           "production_samples",
	TimestampColumn: "ts",
	MachineColumn:   "machine_id",
}

func mustFilter(t *testing.T, start, end, team string, machineID int64, mode string) aggregation.FilterSpec {
	t.Helper()
	f, err := aggregation.NewFilterSpec(start, end, team, machineID, mode)
	require.NoError(t, err)
	return f
}

func newTestAggregator(t *testing.T, metric Metric) (*Aggregator, *storagemocks.QueryExecutor) {
	t.Helper()
	executor := storagemocks.NewQueryExecutor(t)
	return NewAggregator(metric, aggregation.NewQueryBuilder(testSource), executor), executor
}

var speedMetric = Metric{Name: "speed", Column: "speed_mpm", Unit: "m/min", Series: aggregation.AggAvg}

func TestAggregator_TimeseriesFillsSparseRows(t *testing.T) {
	agg, executor := newTestAggregator(t, speedMetric)
	f := mustFilter(t, "2026-01-10", "2026-01-14", "all", 0, "running")

	executor.EXPECT().
		ExecuteQuery(mock.Anything, mock.Anything, "2026-01-10", "2026-01-14").
		Return([]storage.Row{
			{"date": time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC), "value": []byte("42.5")},
			{"date": "2026-01-13", "value": 38.0},
		}, nil).
		Once()

	resp, err := agg.Timeseries(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, "m/min", resp.Unit)
	require.Equal(t, []aggregation.TimeseriesPoint{
		{Date: "2026-01-10", Value: 0},
		{Date: "2026-01-11", Value: 42.5},
		{Date: "2026-01-12", Value: 0},
		{Date: "2026-01-13", Value: 38},
		{Date: "2026-01-14", Value: 0},
	}, resp.Points)
}

func TestAggregator_TimeseriesNoRowsIsAllZero(t *testing.T) {
	agg, executor := newTestAggregator(t, speedMetric)
	f := mustFilter(t, "2026-02-01", "2026-03-01", "all", 0, "raw")

	executor.EXPECT().
		ExecuteQuery(mock.Anything, mock.Anything, "2026-02-01", "2026-03-01").
		Return([]storage.Row{}, nil).
		Once()

	resp, err := agg.Timeseries(context.Background(), f)
	require.NoError(t, err)
	require.Len(t, resp.Points, f.DaysCount())
	for _, p := range resp.Points {
		require.Zero(t, p.Value)
	}
}

func TestAggregator_TimeseriesRoundsWhenConfigured(t *testing.T) {
	agg, executor := newTestAggregator(t, Metric{Name: "footage", Column: "metrage_inc_m", Unit: "m", Series: aggregation.AggSum, Round: true})
	f := mustFilter(t, "2026-01-10", "2026-01-11", "all", 0, "raw")

	executor.EXPECT().
		ExecuteQuery(mock.Anything, mock.Anything, "2026-01-10", "2026-01-11").
		Return([]storage.Row{{"date": "2026-01-10", "value": "100.6"}}, nil).
		Once()

	resp, err := agg.Timeseries(context.Background(), f)
	require.NoError(t, err)
	require.Equal(t, float64(101), resp.Points[0].Value)
}

func TestAggregator_SummaryNullReadsAsZero(t *testing.T) {
	agg, executor := newTestAggregator(t, speedMetric)
	f := mustFilter(t, "2026-01-10", "2026-01-11", "2", 3, "raw")

	executor.EXPECT().
		ExecuteQuery(mock.Anything, mock.Anything, "2026-01-10", "2026-01-11", 2, int64(3)).
		Return([]storage.Row{{"avg_value": nil, "max_value": nil}}, nil).
		Once()

	values, err := agg.Summary(context.Background(), f,
		aggregation.Aggregate{Func: aggregation.AggAvg, Alias: "avg_value"},
		aggregation.Aggregate{Func: aggregation.AggMax, Alias: "max_value"})
	require.NoError(t, err)
	require.True(t, values["avg_value"].IsZero())
	require.True(t, values["max_value"].IsZero())
}

func TestAggregator_Failures(t *testing.T) {
	f := mustFilter(t, "2026-01-10", "2026-01-12", "all", 0, "raw")

	tests := []struct {
		name string
		rows []storage.Row
		err  error
		run  func(a *Aggregator) error
	}{
		{
			name: "executor error on timeseries",
			err:  errors.New("pq: connection refused"),
			run: func(a *Aggregator) error {
				_, err := a.Timeseries(context.Background(), f)
				return err
			},
		},
		{
			name: "duplicate day",
			rows: []storage.Row{
				{"date": "2026-01-10", "value": 1.0},
				{"date": "2026-01-10", "value": 2.0},
			},
			run: func(a *Aggregator) error {
				_, err := a.Timeseries(context.Background(), f)
				return err
			},
		},
		{
			name: "non-finite summary value",
			rows: []storage.Row{{"avg_value": math.NaN(), "max_value": math.Inf(1)}},
			run: func(a *Aggregator) error {
				_, err := a.Summary(context.Background(), f,
					aggregation.Aggregate{Func: aggregation.AggAvg, Alias: "avg_value"},
					aggregation.Aggregate{Func: aggregation.AggMax, Alias: "max_value"})
				return err
			},
		},
		{
			name: "non-finite series value",
			rows: []storage.Row{{"date": "2026-01-10", "value": math.Inf(-1)}},
			run: func(a *Aggregator) error {
				_, err := a.Timeseries(context.Background(), f)
				return err
			},
		},
		{
			name: "unparseable value",
			rows: []storage.Row{{"date": "2026-01-10", "value": "fast"}},
			run: func(a *Aggregator) error {
				_, err := a.Timeseries(context.Background(), f)
				return err
			},
		},
		{
			name: "executor error on summary",
			err:  errors.New("pq: canceling statement due to statement timeout"),
			run: func(a *Aggregator) error {
				_, err := a.Summary(context.Background(), f, aggregation.Aggregate{Func: aggregation.AggAvg, Alias: "avg_value"})
				return err
			},
		},
		{
			name: "more than one summary row",
			rows: []storage.Row{{"avg_value": 1.0}, {"avg_value": 2.0}},
			run: func(a *Aggregator) error {
				_, err := a.Summary(context.Background(), f, aggregation.Aggregate{Func: aggregation.AggAvg, Alias: "avg_value"})
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agg, executor := newTestAggregator(t, speedMetric)
			executor.EXPECT().
				ExecuteQuery(mock.Anything, mock.Anything, "2026-01-10", "2026-01-12").
				Return(tc.rows, tc.err).
				Once()

			err := tc.run(agg)
			require.ErrorIs(t, err, ErrAggregationFailed)
			require.NotContains(t, err.Error(), "pq:")
			require.NotContains(t, err.Error(), "SELECT")
		})
	}
}

func TestAggregator_InvalidFilterSkipsExecutor(t *testing.T) {
	agg, _ := newTestAggregator(t, speedMetric)
	f := mustFilter(t, "2026-01-10", "2026-01-12", "all", 0, "raw")
	f.StartDate, f.EndDate = f.EndDate, f.StartDate

	_, err := agg.Timeseries(context.Background(), f)
	require.ErrorIs(t, err, aggregation.ErrInvalidFilter)
}
