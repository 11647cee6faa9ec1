package markers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/simaogato/healthflow-backend/internal/domain"
)

// Evaluation is a reading classified against its resolved reference range
type Evaluation struct {
	Reading    domain.BloodMarkerReading
	Resolution Resolution
	Optimal    domain.ReferenceRange
	Status     domain.MarkerStatus
}

// MarkerSummary is the latest state of one marker for a user
type MarkerSummary struct {
	Key          string
	Label        string
	Unit         string
	Latest       Evaluation
	Previous     *Evaluation
	Trend        *domain.Trend // nil when only one reading exists
	ReadingCount int
}

// MarkerService handles blood marker classification
type MarkerService struct {
	ReadingRepo domain.BloodReadingRepository
	Catalog     *Catalog
}

// NewMarkerService creates a new MarkerService instance
func NewMarkerService(readingRepo domain.BloodReadingRepository, catalog *Catalog) *MarkerService {
	return &MarkerService{
		ReadingRepo: readingRepo,
		Catalog:     catalog,
	}
}

// Evaluate classifies a single reading
func (s *MarkerService) Evaluate(reading domain.BloodMarkerReading) Evaluation {
	res := s.Catalog.Resolve(reading)
	return Evaluation{
		Reading:    reading,
		Resolution: res,
		Optimal:    res.Range.OptimalBand(),
		Status:     Classify(reading.Value, res.Range),
	}
}

// Summaries returns one summary per marker the user has readings for, ordered by label
// Logic:
//  1. Group readings by normalized marker key
//  2. Classify the most recent reading of each group
//  3. Compute a trend against the previous reading, using the latest reading's range
func (s *MarkerService) Summaries(ctx context.Context, userID uuid.UUID) ([]MarkerSummary, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	readings, err := s.ReadingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list blood readings: %w", err)
	}

	groups := make(map[string][]domain.BloodMarkerReading)
	for _, r := range readings {
		key := s.Catalog.Resolve(r).Key
		groups[key] = append(groups[key], r)
	}

	summaries := make([]MarkerSummary, 0, len(groups))
	for key, group := range groups {
		sortReadings(group)

		latest := s.Evaluate(group[len(group)-1])
		summary := MarkerSummary{
			Key:          key,
			Label:        latest.Resolution.Label,
			Unit:         latest.Resolution.Unit,
			Latest:       latest,
			ReadingCount: len(group),
		}

		if len(group) > 1 {
			previous := s.Evaluate(group[len(group)-2])
			trend := ComputeTrend(previous.Reading.Value, latest.Reading.Value, latest.Resolution.Range, latest.Resolution.Preference)
			summary.Previous = &previous
			summary.Trend = &trend
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		li, lj := strings.ToLower(summaries[i].Label), strings.ToLower(summaries[j].Label)
		if li != lj {
			return li < lj
		}
		return summaries[i].Key < summaries[j].Key
	})

	return summaries, nil
}

// History returns every reading of one marker, oldest first, classified
func (s *MarkerService) History(ctx context.Context, userID uuid.UUID, marker string) ([]Evaluation, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	key := s.Catalog.CanonicalKey(marker)
	if key == "" {
		return nil, fmt.Errorf("%w: marker name cannot be empty", domain.ErrInvalidArgument)
	}

	readings, err := s.ReadingRepo.ListByMarker(ctx, userID, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list readings for marker %q: %w", marker, err)
	}
	if len(readings) == 0 {
		return nil, fmt.Errorf("%w: no readings for marker %q", domain.ErrNotFound, marker)
	}

	sortReadings(readings)

	out := make([]Evaluation, 0, len(readings))
	for _, r := range readings {
		out = append(out, s.Evaluate(r))
	}
	return out, nil
}

func sortReadings(readings []domain.BloodMarkerReading) {
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].Date.Before(readings[j].Date)
	})
}
