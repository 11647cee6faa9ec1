package aggregation

import (
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
	"github.com/simaogato/healthflow-backend/internal/domain"
)

// meanPlaces is the number of decimals kept for weekly and monthly means
const meanPlaces = 2

// AggregateWindow turns raw samples into chart points for a window
// Logic:
//  1. Sort samples ascending by date (stable, input is not mutated)
//  2. Keep samples with from <= date (and date < to for historical windows)
//  3. Group them by the timeframe's bucket kind and average each bucket
//
// A nil loc means UTC. Week and month boundaries are computed in loc.
func AggregateWindow(samples []domain.Sample, w domain.Window, now time.Time, loc *time.Location) []domain.AggregatedPoint {
	from, to := w.Bounds(now)

	filtered := make([]domain.Sample, 0, len(samples))
	for _, s := range sortedByDate(samples) {
		if s.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !s.Date.Before(to) {
			continue
		}
		filtered = append(filtered, s)
	}

	return Aggregate(filtered, w.Timeframe.BucketKind(), loc)
}

// Aggregate groups samples into buckets of the given kind and reduces each bucket to one point
//   - daily: one point per sample, raw value preserved
//   - weekly: buckets keyed by the Sunday that starts the week
//   - monthly: buckets keyed by calendar year-month
//
// Each point is dated with the bucket's middle-indexed sample and valued with the bucket mean
// rounded to 2 decimals. Samples with a zero date or a NaN/Inf value are dropped.
// Empty input yields an empty slice.
func Aggregate(samples []domain.Sample, kind domain.BucketKind, loc *time.Location) []domain.AggregatedPoint {
	if loc == nil {
		loc = time.UTC
	}

	sorted := sortedByDate(samples)
	points := make([]domain.AggregatedPoint, 0, len(sorted))
	if len(sorted) == 0 {
		return points
	}

	if kind != domain.BucketWeekly && kind != domain.BucketMonthly {
		for _, s := range sorted {
			points = append(points, domain.AggregatedPoint{
				Date:  s.Date,
				Value: s.Value,
				Meta: domain.PointMeta{
					Kind:        domain.BucketDaily,
					SampleCount: 1,
					Min:         s.Value,
					Max:         s.Value,
				},
			})
		}
		return points
	}

	// Samples are sorted, so buckets are discovered in key order
	var keys []int64
	buckets := make(map[int64][]domain.Sample)
	for _, s := range sorted {
		key := bucketKey(s.Date, kind, loc).Unix()
		if _, ok := buckets[key]; !ok {
			keys = append(keys, key)
		}
		buckets[key] = append(buckets[key], s)
	}

	for _, key := range keys {
		points = append(points, reduceBucket(buckets[key], kind))
	}

	return points
}

// bucketKey returns the start of the week or month containing t
func bucketKey(t time.Time, kind domain.BucketKind, loc *time.Location) time.Time {
	local := t.In(loc)
	y, m, d := local.Date()

	if kind == domain.BucketMonthly {
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}

	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// reduceBucket averages a non-empty, date-sorted bucket into one point
func reduceBucket(bucket []domain.Sample, kind domain.BucketKind) domain.AggregatedPoint {
	values := make([]float64, len(bucket))
	sum := decimal.Zero
	for i, s := range bucket {
		values[i] = s.Value
		sum = sum.Add(decimal.NewFromFloat(s.Value))
	}

	mean := sum.Div(decimal.NewFromInt(int64(len(bucket)))).Round(meanPlaces)

	// Errors are only returned for empty input, which cannot happen here
	lo, _ := stats.Min(values)
	hi, _ := stats.Max(values)

	return domain.AggregatedPoint{
		Date:  bucket[len(bucket)/2].Date,
		Value: mean.InexactFloat64(),
		Meta: domain.PointMeta{
			Kind:        kind,
			SampleCount: len(bucket),
			Min:         lo,
			Max:         hi,
		},
	}
}

// sortedByDate returns a date-ascending copy of the samples that can be charted:
// zero dates and non-finite values are left out
func sortedByDate(samples []domain.Sample) []domain.Sample {
	out := make([]domain.Sample, 0, len(samples))
	for _, s := range samples {
		if s.Date.IsZero() || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			continue
		}
		out = append(out, s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})

	return out
}
