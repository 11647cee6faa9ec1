package domain

import "time"

// AggregatedPoint is one chart point derived from a bucket of samples.
// It is recomputed on every request and never persisted.
type AggregatedPoint struct {
	Date  time.Time // date of the bucket's middle-indexed sample
	Value float64   // mean of the bucket
	Meta  PointMeta
}

// PointMeta describes the bucket behind a point
type PointMeta struct {
	Kind        BucketKind
	SampleCount int
	Min         float64
	Max         float64
}
