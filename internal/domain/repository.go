package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SampleRepository defines the interface for health sample persistence operations
type SampleRepository interface {
	// AddBatch stores the samples in a single unit of work
	AddBatch(ctx context.Context, samples []Sample) error

	// ListByMetric retrieves a user's samples of one metric with from <= date < to,
	// ordered by date ascending. A zero to means no upper bound.
	ListByMetric(ctx context.Context, userID uuid.UUID, metric MetricType, from, to time.Time) ([]Sample, error)

	// Count returns the number of stored samples of one metric for a user
	Count(ctx context.Context, userID uuid.UUID, metric MetricType) (int, error)
}

// BloodReadingRepository defines the interface for blood marker reading persistence operations
type BloodReadingRepository interface {
	// AddBatch stores the readings in a single unit of work
	AddBatch(ctx context.Context, readings []BloodMarkerReading) error

	// ListByUser retrieves all readings of a user ordered by date ascending
	ListByUser(ctx context.Context, userID uuid.UUID) ([]BloodMarkerReading, error)

	// ListByMarker retrieves the readings of a user for one normalized marker key,
	// ordered by date ascending
	ListByMarker(ctx context.Context, userID uuid.UUID, markerKey string) ([]BloodMarkerReading, error)
}
