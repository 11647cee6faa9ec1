//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/healthflow-backend/internal/domain"
)

// openTestDB connects to the database named by DB_CONN_STR and applies the schema.
// Tests are skipped when the variable is unset.
func openTestDB(t *testing.T) *DB {
	t.Helper()

	connStr := os.Getenv("DB_CONN_STR")
	if connStr == "" {
		t.Skip("DB_CONN_STR not set")
	}

	ctx := context.Background()
	db, err := NewDB(ctx, connStr, 4)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, EnsureSchema(ctx, db))
	// Applying twice must be harmless
	require.NoError(t, EnsureSchema(ctx, db))

	return db
}

func TestSampleRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewSampleRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	day := func(d int) time.Time { return time.Date(2024, 6, d, 8, 0, 0, 0, time.UTC) }
	samples := []domain.Sample{
		{ID: uuid.New(), UserID: userID, Metric: domain.MetricWeight, Date: day(3), Value: 80.4, Source: "scale"},
		{ID: uuid.New(), UserID: userID, Metric: domain.MetricWeight, Date: day(1), Value: 80.9, Source: "scale"},
		{ID: uuid.New(), UserID: userID, Metric: domain.MetricWeight, Date: day(5), Value: 79.95, Source: "scale"},
		{ID: uuid.New(), UserID: userID, Metric: domain.MetricSteps, Date: day(1), Value: 9000, Source: "watch"},
	}
	require.NoError(t, repo.AddBatch(ctx, samples))

	count, err := repo.Count(ctx, userID, domain.MetricWeight)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	t.Run("Open upper bound", func(t *testing.T) {
		got, err := repo.ListByMetric(ctx, userID, domain.MetricWeight, day(1), time.Time{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, 80.9, got[0].Value)
		assert.Equal(t, 80.4, got[1].Value)
		assert.Equal(t, 79.95, got[2].Value)
		assert.True(t, got[0].Date.Equal(day(1)))
	})

	t.Run("Upper bound is exclusive", func(t *testing.T) {
		got, err := repo.ListByMetric(ctx, userID, domain.MetricWeight, day(1), day(5))
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("Other users are invisible", func(t *testing.T) {
		got, err := repo.ListByMetric(ctx, uuid.New(), domain.MetricWeight, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestBloodReadingRepository(t *testing.T) {
	db := openTestDB(t)
	repo := NewBloodReadingRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	readings := []domain.BloodMarkerReading{
		{
			ID: uuid.New(), UserID: userID, Marker: "LDL-C", MarkerKey: "ldlcholesterol",
			Date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), Value: 90, Unit: "mg/dL",
		},
		{
			ID: uuid.New(), UserID: userID, Marker: "LDL Cholesterol", MarkerKey: "ldlcholesterol",
			Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), Value: 130, Unit: "mg/dL",
		},
		{
			ID: uuid.New(), UserID: userID, Marker: "Vitamin X", MarkerKey: "vitaminx",
			Date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), Value: 50.5, Unit: "ng/mL",
			ReferenceRange: &domain.ReferenceRange{Min: 40, Max: 60.25},
		},
	}
	require.NoError(t, repo.AddBatch(ctx, readings))

	all, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 130.0, all[0].Value)

	ldl, err := repo.ListByMarker(ctx, userID, "ldlcholesterol")
	require.NoError(t, err)
	require.Len(t, ldl, 2)
	assert.Nil(t, ldl[0].ReferenceRange)
	assert.Equal(t, "LDL-C", ldl[1].Marker)

	vit, err := repo.ListByMarker(ctx, userID, "vitaminx")
	require.NoError(t, err)
	require.Len(t, vit, 1)
	require.NotNil(t, vit[0].ReferenceRange)
	assert.Equal(t, domain.ReferenceRange{Min: 40, Max: 60.25}, *vit[0].ReferenceRange)
}
