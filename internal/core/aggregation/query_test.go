package aggregation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testSource = SampleSource{
	Table:           "production_samples",
	TimestampColumn: "ts",
	MachineColumn:   "machine_id",
}

func normalizeSQL(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func mustFilter(t *testing.T, start, end, team string, machineID int64, mode string) FilterSpec {
	t.Helper()
	f, err := NewFilterSpec(start, end, team, machineID, mode)
	require.NoError(t, err)
	return f
}

func TestQueryBuilder_ParamOrder(t *testing.T) {
	b := NewQueryBuilder(testSource)

	tests := []struct {
		name       string
		team       string
		machineID  int64
		wantParams []any
		wantConds  []string
	}{
		{
			name:       "range only",
			team:       "all",
			wantParams: []any{"2026-01-01", "2026-01-08"},
			wantConds:  []string{"t.shift_workday BETWEEN $1 AND $2"},
		},
		{
			name:       "team",
			team:       "2",
			wantParams: []any{"2026-01-01", "2026-01-08", 2},
			wantConds:  []string{"t.shift_workday BETWEEN $1 AND $2", "t.shift_id = $3"},
		},
		{
			name:       "machine",
			team:       "all",
			machineID:  7,
			wantParams: []any{"2026-01-01", "2026-01-08", int64(7)},
			wantConds:  []string{"t.shift_workday BETWEEN $1 AND $2", "t.machine_id = $3"},
		},
		{
			name:       "team and machine",
			team:       "3",
			machineID:  4,
			wantParams: []any{"2026-01-01", "2026-01-08", 3, int64(4)},
			wantConds:  []string{"t.shift_workday BETWEEN $1 AND $2", "t.shift_id = $3", "t.machine_id = $4"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := mustFilter(t, "2026-01-01", "2026-01-08", tc.team, tc.machineID, "raw")
			q, err := b.Summary(f, "metrage_inc_m", Aggregate{Func: AggSum, Alias: "total"})
			require.NoError(t, err)
			require.Equal(t, tc.wantParams, q.Params)

			sql := normalizeSQL(q.SQL)
			outer := sql[strings.LastIndex(sql, ") t WHERE ")+len(") t WHERE "):]
			require.Equal(t, strings.Join(tc.wantConds, " AND "), outer)
		})
	}
}

func TestQueryBuilder_NeverInterpolatesFilterValues(t *testing.T) {
	b := NewQueryBuilder(testSource)
	f := mustFilter(t, "2026-01-01", "2026-01-08", "1", 42, "raw")

	q, err := b.Summary(f, "metrage_inc_m", Aggregate{Func: AggSum, Alias: "total"})
	require.NoError(t, err)
	require.NotContains(t, q.SQL, "2026-01-01")
	require.NotContains(t, q.SQL, "2026-01-08")
	require.NotContains(t, q.SQL, "42")
}

func TestQueryBuilder_ModeAppliesBeforeAggregation(t *testing.T) {
	b := NewQueryBuilder(testSource)

	raw, err := b.Summary(mustFilter(t, "2026-01-01", "2026-01-08", "all", 0, "raw"), "speed_mpm",
		Aggregate{Func: AggAvg, Alias: "avg_value"}, Aggregate{Func: AggMax, Alias: "max_value"})
	require.NoError(t, err)
	require.Contains(t, normalizeSQL(raw.SQL), `AND s."speed_mpm" IS NOT NULL ) t`)

	running, err := b.Summary(mustFilter(t, "2026-01-01", "2026-01-08", "all", 0, "running"), "speed_mpm",
		Aggregate{Func: AggAvg, Alias: "avg_value"}, Aggregate{Func: AggMax, Alias: "max_value"})
	require.NoError(t, err)

	sql := normalizeSQL(running.SQL)
	require.Contains(t, sql, `AND s."speed_mpm" IS NOT NULL AND s."speed_mpm" > 0 ) t`)
	require.True(t, strings.HasPrefix(sql, "SELECT AVG(t.value) AS avg_value, MAX(t.value) AS max_value FROM ("))

	outer := sql[strings.LastIndex(sql, ") t WHERE "):]
	require.NotContains(t, outer, "> 0")
	require.Equal(t, raw.Params, running.Params)
}

func TestQueryBuilder_BoundsRawTimestamps(t *testing.T) {
	b := NewQueryBuilder(testSource)

	tests := []struct {
		name       string
		team       string
		machineID  int64
		wantParams []any
	}{
		{name: "range only", team: "all", wantParams: []any{"2026-01-01", "2026-01-08"}},
		{name: "team and machine", team: "3", machineID: 4, wantParams: []any{"2026-01-01", "2026-01-08", 3, int64(4)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := mustFilter(t, "2026-01-01", "2026-01-08", tc.team, tc.machineID, "running")
			q, err := b.Timeseries(f, "metrage_inc_m", Aggregate{Func: AggSum})
			require.NoError(t, err)
			require.Equal(t, tc.wantParams, q.Params)

			sql := normalizeSQL(q.SQL)
			inner := sql[:strings.LastIndex(sql, ") t WHERE ")]
			require.Contains(t, inner, `WHERE s."ts" >= $1::date + INTERVAL '360 minutes' AND s."ts" < $2::date + INTERVAL '1800 minutes' AND`)
			require.Contains(t, sql, ") t WHERE t.shift_workday BETWEEN $1 AND $2")
		})
	}
}

func TestQueryBuilder_Timeseries(t *testing.T) {
	b := NewQueryBuilder(testSource)
	f := mustFilter(t, "2026-01-10", "2026-01-12", "all", 0, "raw")

	q, err := b.Timeseries(f, "metrage_inc_m", Aggregate{Func: AggSum})
	require.NoError(t, err)

	sql := normalizeSQL(q.SQL)
	require.True(t, strings.HasPrefix(sql, "SELECT t.shift_workday AS date, COALESCE(SUM(t.value), 0) AS value FROM ("))
	require.True(t, strings.HasSuffix(sql, "GROUP BY t.shift_workday ORDER BY t.shift_workday ASC"))
	require.Contains(t, sql, `FROM "production_samples" s`)
	require.Contains(t, sql, `s."machine_id" AS machine_id`)
	require.Contains(t, sql, `(s."ts" - INTERVAL '360 minutes')::date AS shift_workday`)
	require.Contains(t, sql, ShiftCaseSQL(`s."ts"`)+" AS shift_id")
	require.Equal(t, []any{"2026-01-10", "2026-01-12"}, q.Params)
}

func TestQueryBuilder_SummaryIsNotGrouped(t *testing.T) {
	b := NewQueryBuilder(testSource)
	q, err := b.Summary(mustFilter(t, "2026-01-10", "2026-01-12", "all", 0, "raw"), "metrage_inc_m",
		Aggregate{Func: AggSum, Alias: "total"})
	require.NoError(t, err)
	require.NotContains(t, q.SQL, "GROUP BY")
	require.Contains(t, q.SQL, "COALESCE(SUM(t.value), 0) AS total")
}

func TestQueryBuilder_QuotesSchemaQualifiedTable(t *testing.T) {
	b := NewQueryBuilder(SampleSource{Table: "plant.production_samples", TimestampColumn: "ts", MachineColumn: "machine_id"})
	q, err := b.Summary(mustFilter(t, "2026-01-10", "2026-01-12", "all", 0, "raw"), "metrage_inc_m",
		Aggregate{Func: AggSum, Alias: "total"})
	require.NoError(t, err)
	require.Contains(t, q.SQL, `FROM "plant"."production_samples" s`)
}

func TestQueryBuilder_Errors(t *testing.T) {
	b := NewQueryBuilder(testSource)
	f := mustFilter(t, "2026-01-10", "2026-01-12", "all", 0, "raw")

	_, err := b.Summary(f, "metrage_inc_m")
	require.Error(t, err)

	_, err = b.Summary(f, "metrage_inc_m", Aggregate{Func: "median", Alias: "m"})
	require.Error(t, err)

	_, err = b.Summary(f, "metrage_inc_m", Aggregate{Func: AggSum, Alias: "total; DROP TABLE x"})
	require.Error(t, err)

	_, err = b.Timeseries(f, "", Aggregate{Func: AggSum})
	require.Error(t, err)

	inverted := f
	inverted.StartDate, inverted.EndDate = f.EndDate, f.StartDate
	_, err = b.Timeseries(inverted, "metrage_inc_m", Aggregate{Func: AggSum})
	require.ErrorIs(t, err, ErrInvalidFilter)
}
