package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/simaogato/healthflow-backend/internal/domain"
)

// dateLayouts are tried in order when parsing a raw date
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05 -0700", // Apple Health export
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a raw date in any supported layout.
// Layouts without a zone are read as UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: date is empty", domain.ErrInvalidArgument)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", domain.ErrInvalidArgument, raw)
}

// ParseValue parses a raw numeric value and rejects NaN and infinities
func ParseValue(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid value %q", domain.ErrInvalidArgument, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: value %q must be finite", domain.ErrInvalidArgument, raw)
	}
	return v, nil
}

// parseOptionalRange parses a reference range where both bounds are blank or both are present
func parseOptionalRange(rawMin, rawMax string) (*domain.ReferenceRange, error) {
	minBlank, maxBlank := strings.TrimSpace(rawMin) == "", strings.TrimSpace(rawMax) == ""
	if minBlank && maxBlank {
		return nil, nil
	}
	if minBlank || maxBlank {
		return nil, fmt.Errorf("%w: reference range needs both min and max", domain.ErrInvalidArgument)
	}

	lo, err := ParseValue(rawMin)
	if err != nil {
		return nil, err
	}
	hi, err := ParseValue(rawMax)
	if err != nil {
		return nil, err
	}

	r := &domain.ReferenceRange{Min: lo, Max: hi}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
