package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MarkerStatus is the classification of a blood marker value against its reference range
type MarkerStatus string

const (
	MarkerStatusAbnormal MarkerStatus = "ABNORMAL"
	MarkerStatusNormal   MarkerStatus = "NORMAL"
	MarkerStatusOptimal  MarkerStatus = "OPTIMAL"
)

// ReferenceRange is the clinically normal [Min, Max] band of a blood marker
type ReferenceRange struct {
	Min float64
	Max float64
}

// DefaultReferenceRange is used when neither the catalog nor the reading provides a range
var DefaultReferenceRange = ReferenceRange{Min: 0, Max: 100}

// OptimalBand returns the middle 50% of the range
func (r ReferenceRange) OptimalBand() ReferenceRange {
	quarter := (r.Max - r.Min) * 0.25
	return ReferenceRange{Min: r.Min + quarter, Max: r.Max - quarter}
}

// Contains reports whether v lies inside the inclusive range
func (r ReferenceRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Distance returns how far v lies outside the range, or 0 when inside
func (r ReferenceRange) Distance(v float64) float64 {
	switch {
	case v < r.Min:
		return r.Min - v
	case v > r.Max:
		return v - r.Max
	default:
		return 0
	}
}

// Validate ensures the range is well formed
func (r ReferenceRange) Validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return fmt.Errorf("%w: reference range bounds must be finite", ErrInvalidArgument)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: reference range min %v exceeds max %v", ErrInvalidArgument, r.Min, r.Max)
	}
	return nil
}

// BloodMarkerReading represents one lab result for a named marker
type BloodMarkerReading struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Marker         string // label as printed on the lab report, e.g. "LDL Cholesterol"
	MarkerKey      string // normalized label used for catalog lookups and grouping
	Date           time.Time
	Value          float64
	Unit           string
	ReferenceRange *ReferenceRange // range printed on the report, if any
}

// Validate ensures the reading adheres to domain rules
func (r *BloodMarkerReading) Validate() error {
	if r.UserID == uuid.Nil {
		return fmt.Errorf("%w: reading must reference a user", ErrInvalidArgument)
	}

	if strings.TrimSpace(r.Marker) == "" {
		return fmt.Errorf("%w: marker name cannot be empty", ErrInvalidArgument)
	}

	if r.Date.IsZero() {
		return fmt.Errorf("%w: reading date is required", ErrInvalidArgument)
	}

	if math.IsNaN(r.Value) || math.IsInf(r.Value, 0) {
		return fmt.Errorf("%w: reading value must be finite", ErrInvalidArgument)
	}

	if r.ReferenceRange != nil {
		return r.ReferenceRange.Validate()
	}

	return nil
}

// TrendDirection is the sign of the change between two readings
type TrendDirection string

const (
	TrendUp   TrendDirection = "UP"
	TrendDown TrendDirection = "DOWN"
	TrendFlat TrendDirection = "FLAT"
)

// TrendTone says whether a change is good or bad news for the user
type TrendTone string

const (
	ToneFavorable   TrendTone = "FAVORABLE"
	ToneUnfavorable TrendTone = "UNFAVORABLE"
	ToneNeutral     TrendTone = "NEUTRAL"
)

// Trend compares the two most recent readings of a marker
type Trend struct {
	Direction TrendDirection
	Tone      TrendTone
	Delta     float64 // current - previous
}
