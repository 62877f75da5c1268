package production

import (
	"context"

	"github.com/delta-line/line-metrics/internal/core/aggregation"
	"github.com/delta-line/line-metrics/internal/core/storage"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const footageTotalAlias = "total_m"

// FootageService answers the footage (métrage) page: meters produced per shift workday.
type FootageService struct {
	agg *Aggregator
}

// NewFootageService creates a FootageService summing column.
func NewFootageService(builder *aggregation.QueryBuilder, executor storage.QueryExecutor, column string) *FootageService {
	return &FootageService{
		agg: NewAggregator(Metric{
			Name:   "footage",
			Column: column,
			Unit:   "m",
			Series: aggregation.AggSum,
			Round:  true,
		}, builder, executor),
	}
}

// GetSummary returns the rounded total and the rounded daily average over the range.
// The average divides the unrounded total by the number of calendar days.
func (s *FootageService) GetSummary(ctx context.Context, f aggregation.FilterSpec) (*FootageSummary, error) {
	values, err := s.agg.Summary(ctx, f, aggregation.Aggregate{Func: aggregation.AggSum, Alias: footageTotalAlias})
	if err != nil {
		return nil, err
	}

	total := values[footageTotalAlias]
	days := f.DaysCount()

	return &FootageSummary{
		filterEcho: echo(f),
		TotalM:     total.Round(0).IntPart(),
		DaysCount:  days,
		DailyAvgM:  total.Div(decimal.NewFromInt(int64(days))).Round(0).IntPart(),
	}, nil
}

// GetTimeseries returns meters per day, rounded, with missing days as 0.
func (s *FootageService) GetTimeseries(ctx context.Context, f aggregation.FilterSpec) (*TimeseriesResponse, error) {
	return s.agg.Timeseries(ctx, f)
}

// GetOverview computes the summary and the series concurrently.
func (s *FootageService) GetOverview(ctx context.Context, f aggregation.FilterSpec) (*FootageOverview, error) {
	var out FootageOverview
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.GetSummary(gctx, f)
		out.Summary = summary
		return err
	})
	g.Go(func() error {
		series, err := s.GetTimeseries(gctx, f)
		out.Timeseries = series
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}
