package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/simaogato/healthflow-backend/internal/domain"
	"github.com/simaogato/healthflow-backend/internal/usecase/markers"
)

// maxReportedErrors caps the per-record messages kept in an ImportResult
const maxReportedErrors = 20

// RawSample is an untyped health sample as received at the boundary
type RawSample struct {
	Metric string
	Date   string
	Value  string
	Source string
}

// RawBloodReading is an untyped lab result as received at the boundary
type RawBloodReading struct {
	Marker string
	Date   string
	Value  string
	Unit   string
	RefMin string
	RefMax string
}

// ImportResult reports how many records were stored and why the others were skipped
type ImportResult struct {
	Accepted int
	Skipped  int
	Errors   []string
}

func (r *ImportResult) skip(index int, err error) {
	r.Skipped++
	if len(r.Errors) < maxReportedErrors {
		r.Errors = append(r.Errors, fmt.Sprintf("record %d: %v", index+1, err))
	}
}

// IngestService parses raw records into domain values and stores the valid ones
type IngestService struct {
	SampleRepo  domain.SampleRepository
	ReadingRepo domain.BloodReadingRepository
	Catalog     *markers.Catalog
}

// NewIngestService creates a new IngestService instance
func NewIngestService(sampleRepo domain.SampleRepository, readingRepo domain.BloodReadingRepository, catalog *markers.Catalog) *IngestService {
	return &IngestService{
		SampleRepo:  sampleRepo,
		ReadingRepo: readingRepo,
		Catalog:     catalog,
	}
}

// ImportSamples parses and stores health samples for a user
// Logic:
//  1. Parse metric, date and value of every record; malformed records are skipped and reported
//  2. Validate the typed sample against domain rules
//  3. Store all accepted samples in one batch
func (s *IngestService) ImportSamples(ctx context.Context, userID uuid.UUID, raws []RawSample) (*ImportResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	result := &ImportResult{}
	samples := make([]domain.Sample, 0, len(raws))

	for i, raw := range raws {
		sample, err := parseSample(userID, raw)
		if err != nil {
			result.skip(i, err)
			continue
		}
		samples = append(samples, sample)
	}

	if len(samples) > 0 {
		if err := s.SampleRepo.AddBatch(ctx, samples); err != nil {
			return nil, fmt.Errorf("failed to store samples: %w", err)
		}
	}
	result.Accepted = len(samples)

	return result, nil
}

// ImportBloodReadings parses and stores lab results for a user
// Each reading is keyed by its canonical marker key so aliases group together.
func (s *IngestService) ImportBloodReadings(ctx context.Context, userID uuid.UUID, raws []RawBloodReading) (*ImportResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidArgument)
	}

	result := &ImportResult{}
	readings := make([]domain.BloodMarkerReading, 0, len(raws))

	for i, raw := range raws {
		reading, err := s.parseReading(userID, raw)
		if err != nil {
			result.skip(i, err)
			continue
		}
		readings = append(readings, reading)
	}

	if len(readings) > 0 {
		if err := s.ReadingRepo.AddBatch(ctx, readings); err != nil {
			return nil, fmt.Errorf("failed to store blood readings: %w", err)
		}
	}
	result.Accepted = len(readings)

	return result, nil
}

func parseSample(userID uuid.UUID, raw RawSample) (domain.Sample, error) {
	metric, err := domain.ParseMetric(strings.TrimSpace(raw.Metric))
	if err != nil {
		return domain.Sample{}, err
	}

	date, err := ParseDate(raw.Date)
	if err != nil {
		return domain.Sample{}, err
	}

	value, err := ParseValue(raw.Value)
	if err != nil {
		return domain.Sample{}, err
	}

	sample := domain.Sample{
		ID:     uuid.New(),
		UserID: userID,
		Metric: metric,
		Date:   date,
		Value:  value,
		Source: strings.TrimSpace(raw.Source),
	}
	if err := sample.Validate(); err != nil {
		return domain.Sample{}, err
	}

	return sample, nil
}

func (s *IngestService) parseReading(userID uuid.UUID, raw RawBloodReading) (domain.BloodMarkerReading, error) {
	date, err := ParseDate(raw.Date)
	if err != nil {
		return domain.BloodMarkerReading{}, err
	}

	value, err := ParseValue(raw.Value)
	if err != nil {
		return domain.BloodMarkerReading{}, err
	}

	ref, err := parseOptionalRange(raw.RefMin, raw.RefMax)
	if err != nil {
		return domain.BloodMarkerReading{}, err
	}

	label := strings.TrimSpace(raw.Marker)
	reading := domain.BloodMarkerReading{
		ID:             uuid.New(),
		UserID:         userID,
		Marker:         label,
		MarkerKey:      s.Catalog.CanonicalKey(label),
		Date:           date,
		Value:          value,
		Unit:           strings.TrimSpace(raw.Unit),
		ReferenceRange: ref,
	}
	if err := reading.Validate(); err != nil {
		return domain.BloodMarkerReading{}, err
	}
	if reading.MarkerKey == "" {
		return domain.BloodMarkerReading{}, fmt.Errorf("%w: marker %q has no letters or digits", domain.ErrInvalidArgument, label)
	}

	return reading, nil
}
