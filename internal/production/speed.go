package production

import (
	"context"

	"github.com/delta-line/line-metrics/internal/core/aggregation"
	"github.com/delta-line/line-metrics/internal/core/storage"
	"golang.org/x/sync/errgroup"
)

const (
	speedAvgAlias = "avg_value"
	speedMaxAlias = "max_value"
)

// SpeedService answers the speed (vitesse) page, in m/min.
// Mode running drops stopped-line readings (speed 0) before AVG and MAX.
type SpeedService struct {
	agg *Aggregator
}

func NewSpeedService(builder *aggregation.QueryBuilder, executor storage.QueryExecutor, column string) *SpeedService {
	return &SpeedService{
		agg: NewAggregator(Metric{
			Name:   "speed",
			Column: column,
			Unit:   "m/min",
			Series: aggregation.AggAvg,
		}, builder, executor),
	}
}

// GetSummary returns average and max speed over the same row set. No qualifying rows reads as 0.
func (s *SpeedService) GetSummary(ctx context.Context, f aggregation.FilterSpec) (*SpeedSummary, error) {
	values, err := s.agg.Summary(ctx, f,
		aggregation.Aggregate{Func: aggregation.AggAvg, Alias: speedAvgAlias},
		aggregation.Aggregate{Func: aggregation.AggMax, Alias: speedMaxAlias},
	)
	if err != nil {
		return nil, err
	}

	return &SpeedSummary{
		filterEcho:  echo(f),
		AvgSpeedMpm: values[speedAvgAlias].InexactFloat64(),
		MaxSpeedMpm: values[speedMaxAlias].InexactFloat64(),
	}, nil
}

// GetTimeseries returns the average speed per day, with missing days as 0.
func (s *SpeedService) GetTimeseries(ctx context.Context, f aggregation.FilterSpec) (*TimeseriesResponse, error) {
	return s.agg.Timeseries(ctx, f)
}

func (s *SpeedService) GetOverview(ctx context.Context, f aggregation.FilterSpec) (*SpeedOverview, error) {
	var out SpeedOverview
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
