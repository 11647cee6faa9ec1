package markers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/healthflow-backend/internal/domain"
)

// MockBloodReadingRepository is a mock implementation of BloodReadingRepository for testing
type MockBloodReadingRepository struct {
	mock.Mock
}

func (m *MockBloodReadingRepository) AddBatch(ctx context.Context, readings []domain.BloodMarkerReading) error {
	args := m.Called(ctx, readings)
	return args.Error(0)
}

func (m *MockBloodReadingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.BloodMarkerReading, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BloodMarkerReading), args.Error(1)
}

func (m *MockBloodReadingRepository) ListByMarker(ctx context.Context, userID uuid.UUID, markerKey string) ([]domain.BloodMarkerReading, error) {
	args := m.Called(ctx, userID, markerKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BloodMarkerReading), args.Error(1)
}

const testCatalogYAML = `
markers:
  - label: LDL Cholesterol
    aliases: [LDL]
    unit: mg/dL
    min: 0
    max: 100
    decrease_is_good: true
  - label: HDL Cholesterol
    aliases: [HDL]
    unit: mg/dL
    min: 40
    max: 90
    decrease_is_good: false
`

func newTestService(t *testing.T) (*MarkerService, *MockBloodReadingRepository) {
	t.Helper()
	catalog, err := LoadCatalog([]byte(testCatalogYAML))
	require.NoError(t, err)
	repo := new(MockBloodReadingRepository)
	return NewMarkerService(repo, catalog), repo
}

func reading(userID uuid.UUID, marker string, date time.Time, value float64) domain.BloodMarkerReading {
	return domain.BloodMarkerReading{
		ID:     uuid.New(),
		UserID: userID,
		Marker: marker,
		Date:   date,
		Value:  value,
		Unit:   "mg/dL",
	}
}

func TestSummaries_GroupsAndTrends(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)
	userID := uuid.New()

	jan := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	apr := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	jul := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

	readings := []domain.BloodMarkerReading{
		reading(userID, "LDL", jul, 60),             // optimal [25,75]
		reading(userID, "LDL Cholesterol", jan, 130), // abnormal
		reading(userID, "ldl-cholesterol", apr, 90),  // normal
		reading(userID, "HDL", apr, 55),
		reading(userID, "Zinc", jan, 80),
	}
	repo.On("ListByUser", ctx, userID).Return(readings, nil)

	summaries, err := service.Summaries(ctx, userID)
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// Ordered by label
	assert.Equal(t, "HDL Cholesterol", summaries[0].Label)
	assert.Equal(t, "LDL Cholesterol", summaries[1].Label)
	assert.Equal(t, "Zinc", summaries[2].Label)

	ldl := summaries[1]
	assert.Equal(t, 3, ldl.ReadingCount)
	assert.Equal(t, jul, ldl.Latest.Reading.Date)
	assert.Equal(t, domain.MarkerStatusOptimal, ldl.Latest.Status)
	require.NotNil(t, ldl.Previous)
	assert.Equal(t, domain.MarkerStatusNormal, ldl.Previous.Status)
	require.NotNil(t, ldl.Trend)
	assert.Equal(t, domain.TrendDown, ldl.Trend.Direction)
	assert.Equal(t, domain.ToneFavorable, ldl.Trend.Tone)

	hdl := summaries[0]
	assert.Equal(t, 1, hdl.ReadingCount)
	assert.Nil(t, hdl.Trend, "a single reading suppresses the trend")
	assert.Nil(t, hdl.Previous)

	zinc := summaries[2]
	assert.Equal(t, RangeSourceDefault, zinc.Latest.Resolution.Source)
	assert.Equal(t, domain.MarkerStatusNormal, zinc.Latest.Status)

	repo.AssertExpectations(t)
}

func TestSummaries_DefaultRangeTrend(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)
	userID := uuid.New()

	readings := []domain.BloodMarkerReading{
		reading(userID, "Selenium", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 40),
		reading(userID, "Selenium", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 60),
	}
	repo.On("ListByUser", ctx, userID).Return(readings, nil)

	summaries, err := service.Summaries(ctx, userID)
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, domain.DefaultReferenceRange, s.Latest.Resolution.Range)
	assert.Equal(t, domain.ReferenceRange{Min: 25, Max: 75}, s.Latest.Optimal)
	assert.Equal(t, domain.MarkerStatusOptimal, s.Latest.Status)
	require.NotNil(t, s.Trend)
	assert.Equal(t, domain.TrendUp, s.Trend.Direction)
	assert.Equal(t, domain.ToneNeutral, s.Trend.Tone)
}

func TestSummaries_Errors(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)

	_, err := service.Summaries(ctx, uuid.Nil)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	userID := uuid.New()
	repo.On("ListByUser", ctx, userID).Return(nil, errors.New("connection refused"))
	_, err = service.Summaries(ctx, userID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list blood readings")
}

func TestHistory(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)
	userID := uuid.New()

	readings := []domain.BloodMarkerReading{
		reading(userID, "LDL", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 110),
		reading(userID, "LDL", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 50),
	}
	repo.On("ListByMarker", ctx, userID, "ldlcholesterol").Return(readings, nil)

	history, err := service.History(ctx, userID, "ldl")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 50.0, history[0].Reading.Value)
	assert.Equal(t, domain.MarkerStatusOptimal, history[0].Status)
	assert.Equal(t, domain.MarkerStatusAbnormal, history[1].Status)

	repo.AssertExpectations(t)
}

func TestHistory_NotFound(t *testing.T) {
	ctx := context.Background()
	service, repo := newTestService(t)
	userID := uuid.New()

	repo.On("ListByMarker", ctx, userID, "zinc").Return([]domain.BloodMarkerReading{}, nil)

	_, err := service.History(ctx, userID, "Zinc")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = service.History(ctx, userID, "()")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}
