package production

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/delta-line/line-metrics/internal/core/aggregation"
	"github.com/delta-line/line-metrics/internal/core/storage"
	"github.com/shopspring/decimal"
)

// ErrAggregationFailed is returned when a metric query cannot be executed or its
// result cannot be read. The cause is logged, never returned.
var ErrAggregationFailed = errors.New("aggregation failed")

// Metric describes one metric family.
type Metric struct {
	Name   string              // used in logs and error messages
	Column string              // sample column holding the reading
	Unit   string              // unit reported with every series
	Series aggregation.AggFunc // per-day aggregate of the series
	Round  bool                // round series values to whole units
}

// Aggregator runs one aggregate query per call and shapes its rows.
// It keeps no state between calls and is safe for concurrent use.
type Aggregator struct {
	metric   Metric
	builder  *aggregation.QueryBuilder
	executor storage.QueryExecutor
}

// NewAggregator creates an Aggregator for metric.
func NewAggregator(metric Metric, builder *aggregation.QueryBuilder, executor storage.QueryExecutor) *Aggregator {
	return &Aggregator{
		metric:   metric,
		builder:  builder,
		executor: executor,
	}
}

// Summary computes aggs over the whole filtered range and returns them by alias.
// A NULL aggregate (no qualifying rows) reads as zero.
func (a *Aggregator) Summary(ctx context.Context, f aggregation.FilterSpec, aggs ...aggregation.Aggregate) (map[string]decimal.Decimal, error) {
	q, err := a.builder.Summary(f, a.metric.Column, aggs...)
	if err != nil {
		return nil, err
	}

	rows, err := a.executor.ExecuteQuery(ctx, q.SQL, q.Params...)
	if err != nil {
		return nil, a.fail(ctx, "summary", f, err)
	}
	if len(rows) > 1 {
		return nil, a.fail(ctx, "summary", f, fmt.Errorf("%w: %d summary rows", aggregation.ErrMalformedResult, len(rows)))
	}

	values := make(map[string]decimal.Decimal, len(aggs))
	for _, agg := range aggs {
		var raw any
		if len(rows) == 1 {
			raw = rows[0][agg.Alias]
		}
		v, err := aggregation.ParseNumeric(raw)
		if err != nil {
			return nil, a.fail(ctx, "summary", f, fmt.Errorf("column %s: %w", agg.Alias, err))
		}
		values[agg.Alias] = v
	}
	return values, nil
}

// Timeseries returns one point per calendar day of the filter range, zero-filled.
func (a *Aggregator) Timeseries(ctx context.Context, f aggregation.FilterSpec) (*TimeseriesResponse, error) {
	q, err := a.builder.Timeseries(f, a.metric.Column, aggregation.Aggregate{Func: a.metric.Series})
	if err != nil {
		return nil, err
	}

	rows, err := a.executor.ExecuteQuery(ctx, q.SQL, q.Params...)
	if err != nil {
		return nil, a.fail(ctx, "timeseries", f, err)
	}

	byDay, err := a.rowsByDay(rows)
	if err != nil {
		return nil, a.fail(ctx, "timeseries", f, err)
	}

	points, err := aggregation.FillMissingDays(byDay, f.StartDate, f.EndDate)
	if err != nil {
		return nil, err
	}

	return &TimeseriesResponse{
		Unit:   a.metric.Unit,
		Points: points,
	}, nil
}

// rowsByDay keys grouped rows by shift workday. The query groups by workday,
// so a repeated key means the result does not have the expected shape.
func (a *Aggregator) rowsByDay(rows []storage.Row) (map[string]float64, error) {
	byDay := make(map[string]float64, len(rows))
	for _, row := range rows {
		key, err := aggregation.NormalizeDay(row[aggregation.ColumnDate])
		if err != nil {
			return nil, err
		}
		if _, dup := byDay[key]; dup {
			return nil, fmt.Errorf("%w: duplicate day %s", aggregation.ErrMalformedResult, key)
		}

		v, err := aggregation.ParseNumeric(row[aggregation.ColumnValue])
		if err != nil {
			return nil, fmt.Errorf("day %s: %w", key, err)
		}
		if a.metric.Round {
			v = v.Round(0)
		}
		byDay[key] = v.InexactFloat64()
	}
	return byDay, nil
}

func (a *Aggregator) fail(ctx context.Context, op string, f aggregation.FilterSpec, cause error) error {
	slog.ErrorContext(ctx, "Metric aggregation failed",
		"metric", a.metric.Name,
		"operation", op,
		"start_date", f.StartString(),
		"end_date", f.EndString(),
		"team", f.Team,
		"machine_id", f.MachineID,
		"mode", f.Mode,
		"error", cause)
	return fmt.Errorf("%w: %s %s", ErrAggregationFailed, a.metric.Name, op)
}
