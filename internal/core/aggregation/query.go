package aggregation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lib/pq"
)

// Result column aliases of a timeseries query.
const (
	ColumnDate  = "date"
	ColumnValue = "value"
)

// AggFunc is an SQL aggregate function supported by QueryBuilder.
type AggFunc string

const (
	AggSum AggFunc = "sum"
	AggAvg AggFunc = "avg"
	AggMax AggFunc = "max"
)

// Aggregate is one aggregate column of a query: a function and its result alias.
type Aggregate struct {
	Func  AggFunc
	Alias string
}

var aliasPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// SampleSource names the sample table and its fixed columns.
// Values come from configuration, never from a request.
type SampleSource struct {
	Table           string
	TimestampColumn string
	MachineColumn   string
}

// Query is a parameterized SQL statement with its positional arguments in order.
type Query struct {
	SQL    string
	Params []any
}

// QueryBuilder turns a FilterSpec into a shift-aware aggregate query.
//
// Rows are reinterpreted in a subquery with their shift_id and shift_workday,
// computed by the same rule as ShiftID/ShiftWorkday. The mode predicate is
// applied there, before aggregation. Caller filters are applied on the outer
// query in a fixed order: workday range, team, machine.
type QueryBuilder struct {
	source SampleSource
}

// NewQueryBuilder creates a builder over the given sample source.
func NewQueryBuilder(source SampleSource) *QueryBuilder {
	return &QueryBuilder{source: source}
}

// Summary builds a single-row query computing aggs over every filtered row.
func (b *QueryBuilder) Summary(f FilterSpec, column string, aggs ...Aggregate) (Query, error) {
	if len(aggs) == 0 {
		return Query{}, fmt.Errorf("summary query needs at least one aggregate")
	}

	cols := make([]string, 0, len(aggs))
	for _, agg := range aggs {
		expr, err := renderAggregate(agg)
		if err != nil {
			return Query{}, err
		}
		cols = append(cols, expr)
	}

	return b.build(f, column, strings.Join(cols, ", "), false)
}

// Timeseries builds a query returning one (date, value) row per shift workday, ascending.
func (b *QueryBuilder) Timeseries(f FilterSpec, column string, agg Aggregate) (Query, error) {
	expr, err := renderAggregate(Aggregate{Func: agg.Func, Alias: ColumnValue})
	if err != nil {
		return Query{}, err
	}
	selectList := "t.shift_workday AS " + ColumnDate + ", " + expr
	return b.build(f, column, selectList, true)
}

func (b *QueryBuilder) build(f FilterSpec, column, selectList string, grouped bool) (Query, error) {
	if err := f.Validate(); err != nil {
		return Query{}, err
	}
	if strings.TrimSpace(column) == "" {
		return Query{}, fmt.Errorf("metric column is required")
	}

	ts := "s." + pq.QuoteIdentifier(b.source.TimestampColumn)
	value := "s." + pq.QuoteIdentifier(column)

	var params []any
	next := func(v any) string {
		params = append(params, v)
		return fmt.Sprintf("$%d", len(params))
	}
	start, end := next(f.StartString()), next(f.EndString())

	// raw timestamp bounds of workdays [start, end]
	offset := int(WorkdayOffset.Minutes())
	rowConds := []string{
		fmt.Sprintf("%s >= %s::date + INTERVAL '%d minutes'", ts, start, offset),
		fmt.Sprintf("%s < %s::date + INTERVAL '%d minutes'", ts, end, 24*60+offset),
		value + " IS NOT NULL",
	}
	if f.Mode == ModeRunning {
		rowConds = append(rowConds, value+" > 0")
	}

	conds := []string{
		fmt.Sprintf("t.shift_workday BETWEEN %s AND %s", start, end),
	}
	if shiftID, ok := f.Team.ShiftID(); ok {
		conds = append(conds, "t.shift_id = "+next(shiftID))
	}
	if f.MachineID > 0 {
		conds = append(conds, "t.machine_id = "+next(f.MachineID))
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + selectList + "\n")
	sb.WriteString("FROM (\n")
	sb.WriteString("\tSELECT\n")
	sb.WriteString("\t\t" + value + " AS value,\n")
	sb.WriteString("\t\ts." + pq.QuoteIdentifier(b.source.MachineColumn) + " AS machine_id,\n")
	sb.WriteString("\t\t" + ShiftCaseSQL(ts) + " AS shift_id,\n")
	sb.WriteString("\t\t" + WorkdaySQL(ts) + " AS shift_workday\n")
	sb.WriteString("\tFROM " + quoteQualified(b.source.Table) + " s\n")
	sb.WriteString("\tWHERE " + strings.Join(rowConds, " AND ") + "\n")
	sb.WriteString(") t\n")
	sb.WriteString("WHERE " + strings.Join(conds, " AND "))
	if grouped {
		sb.WriteString("\nGROUP BY t.shift_workday\nORDER BY t.shift_workday ASC")
	}

	return Query{SQL: sb.String(), Params: params}, nil
}

// ShiftCaseSQL renders ShiftTable as a CASE expression over a timestamp expression.
// Comparing the time of day against HH:MM:00 literals classifies sub-minute
// instants the same way ShiftID truncates them.
func ShiftCaseSQL(tsExpr string) string {
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, w := range ShiftTable {
		fmt.Fprintf(&sb, " WHEN %s::time >= '%s:00' AND %s::time < '%s:00' THEN %d",
			tsExpr, clock(w.StartMinute), tsExpr, clock(w.EndMinute), w.ID)
	}
	fmt.Fprintf(&sb, " ELSE %d END", NightShiftID)
	return sb.String()
}

// WorkdaySQL renders the shift-workday rule: date(ts - WorkdayOffset).
func WorkdaySQL(tsExpr string) string {
	return fmt.Sprintf("(%s - INTERVAL '%d minutes')::date", tsExpr, int(WorkdayOffset.Minutes()))
}

func renderAggregate(agg Aggregate) (string, error) {
	if !aliasPattern.MatchString(agg.Alias) {
		return "", fmt.Errorf("invalid aggregate alias %q", agg.Alias)
	}
	switch agg.Func {
	case AggSum:
		return "COALESCE(SUM(t.value), 0) AS " + agg.Alias, nil
	case AggAvg:
		return "AVG(t.value) AS " + agg.Alias, nil
	case AggMax:
		return "MAX(t.value) AS " + agg.Alias, nil
	default:
		return "", fmt.Errorf("unsupported aggregate function %q", agg.Func)
	}
}

// quoteQualified quotes each part of a possibly schema-qualified name.
func quoteQualified(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
