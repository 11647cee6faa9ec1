package charts

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/simaogato/healthflow-backend/internal/domain"
	"github.com/simaogato/healthflow-backend/internal/usecase/aggregation"
)

// Series is a chart-ready set of points for one metric and window
type Series struct {
	Metric domain.MetricType
	Unit   string
	Window domain.Window
	Kind   domain.BucketKind
	From   time.Time
	To     time.Time // zero for the current window
	Points []domain.AggregatedPoint
}

// ChartService handles chart series operations
type ChartService struct {
	SampleRepo domain.SampleRepository
	Location   *time.Location
	Now        func() time.Time
}

// NewChartService creates a new ChartService instance
// Week and month buckets are computed in loc (UTC when nil)
func NewChartService(sampleRepo domain.SampleRepository, loc *time.Location) *ChartService {
	if loc == nil {
		loc = time.UTC
	}
	return &ChartService{
		SampleRepo: sampleRepo,
		Location:   loc,
		Now:        time.Now,
	}
}

// Series fetches the samples behind a window and aggregates them for charting
func (s *ChartService) Series(ctx context.Context, userID uuid.UUID, metric domain.MetricType, window domain.Window) (*Series, error) {
	return s.series(ctx, userID, metric, window, s.Now())
}

// Dashboard builds the current-window series of several metrics in parallel
// All fetches must complete; the first failure cancels the rest and is returned.
func (s *ChartService) Dashboard(ctx context.Context, userID uuid.UUID, metrics []domain.MetricType, tf domain.Timeframe) ([]*Series, error) {
	if len(metrics) == 0 {
		metrics = domain.AllMetrics()
	}

	now := s.Now()
	window := domain.CurrentWindow(tf)
	out := make([]*Series, len(metrics))

	g, gctx := errgroup.WithContext(ctx)
	for i, metric := range metrics {
		g.Go(func() error {
			series, err := s.series(gctx, userID, metric, window, now)
			if err != nil {
				return err
			}
			out[i] = series
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *ChartService) series(ctx context.Context, userID uuid.UUID, metric domain.MetricType, window domain.Window, now time.Time) (*Series, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}
	if !metric.IsValid() {
		return nil, fmt.Errorf("%w: unknown metric %q", domain.ErrInvalidArgument, metric)
	}
	if window.Offset > 0 {
		return nil, fmt.Errorf("%w: window offset cannot point to the future", domain.ErrInvalidArgument)
	}
	if window.Offset < domain.MinWindowOffset {
		return nil, fmt.Errorf("%w: window offset cannot be below %d", domain.ErrInvalidArgument, domain.MinWindowOffset)
	}

	from, to := window.Bounds(now)

	samples, err := s.SampleRepo.ListByMetric(ctx, userID, metric, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s samples: %w", metric, err)
	}

	return &Series{
		Metric: metric,
		Unit:   metric.Unit(),
		Window: window,
		Kind:   window.Timeframe.BucketKind(),
		From:   from,
		To:     to,
		Points: aggregation.AggregateWindow(samples, window, now, s.Location),
	}, nil
}
