package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// MetricType identifies the kind of health measurement a sample carries
type MetricType string

const (
	MetricHeartRate        MetricType = "heart_rate"
	MetricRestingHeartRate MetricType = "resting_heart_rate"
	MetricWeight           MetricType = "weight"
	MetricBodyFat          MetricType = "body_fat"
	MetricHRV              MetricType = "hrv"
	MetricVO2Max           MetricType = "vo2max"
	MetricSteps            MetricType = "steps"
)

// metricUnits maps each supported metric to its display unit
var metricUnits = map[MetricType]string{
	MetricHeartRate:        "bpm",
	MetricRestingHeartRate: "bpm",
	MetricWeight:           "kg",
	MetricBodyFat:          "%",
	MetricHRV:              "ms",
	MetricVO2Max:           "mL/kg/min",
	MetricSteps:            "steps",
}

// AllMetrics returns every supported metric in a stable order
func AllMetrics() []MetricType {
	return []MetricType{
		MetricHeartRate,
		MetricRestingHeartRate,
		MetricWeight,
		MetricBodyFat,
		MetricHRV,
		MetricVO2Max,
		MetricSteps,
	}
}

// IsValid reports whether the metric is one the service knows about
func (m MetricType) IsValid() bool {
	_, ok := metricUnits[m]
	return ok
}

// Unit returns the display unit of the metric, or "" when unknown
func (m MetricType) Unit() string {
	return metricUnits[m]
}

// ParseMetric converts a wire value into a MetricType
func ParseMetric(s string) (MetricType, error) {
	m := MetricType(s)
	if !m.IsValid() {
		return "", fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, s)
	}
	return m, nil
}

// Sample represents a single raw health measurement
type Sample struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Metric MetricType
	Date   time.Time
	Value  float64
	Source string // e.g. "apple_health", "kafka:<device>"
}

// Validate ensures the sample adheres to domain rules
// Returns an error wrapping ErrInvalidArgument if validation fails
func (s *Sample) Validate() error {
	if s.UserID == uuid.Nil {
		return fmt.Errorf("%w: sample must reference a user", ErrInvalidArgument)
	}

	if !s.Metric.IsValid() {
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, s.Metric)
	}

	if s.Date.IsZero() {
		return fmt.Errorf("%w: sample date is required", ErrInvalidArgument)
	}

	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return fmt.Errorf("%w: sample value must be finite", ErrInvalidArgument)
	}

	return nil
}
