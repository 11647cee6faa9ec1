package markers

import (
	"github.com/simaogato/healthflow-backend/internal/domain"
)

// Preference says which direction of change is good news when the band gives no answer
type Preference int

const (
	PreferNone Preference = iota
	PreferLower
	PreferHigher
)

// RangeSource records where a resolved reference range came from
type RangeSource string

const (
	RangeSourceCatalog RangeSource = "CATALOG"
	RangeSourceReading RangeSource = "READING"
	RangeSourceDefault RangeSource = "DEFAULT"
)

// Resolution is the reference data that applies to one reading
type Resolution struct {
	Key        string
	Label      string
	Unit       string
	Range      domain.ReferenceRange
	Source     RangeSource
	Preference Preference
}

// Resolve picks the reference range for a reading
// Order: catalog entry for the normalized label, then the range printed on the reading, then [0,100]
func (c *Catalog) Resolve(reading domain.BloodMarkerReading) Resolution {
	key := reading.MarkerKey
	if key == "" {
		key = Normalize(reading.Marker)
	}

	if cfg, ok := c.LookupKey(key); ok {
		unit := cfg.Unit
		if unit == "" {
			unit = reading.Unit
		}
		return Resolution{
			Key:        cfg.Key,
			Label:      cfg.Label,
			Unit:       unit,
			Range:      cfg.Range(),
			Source:     RangeSourceCatalog,
			Preference: cfg.Preference(),
		}
	}

	res := Resolution{
		Key:    key,
		Label:  reading.Marker,
		Unit:   reading.Unit,
		Range:  domain.DefaultReferenceRange,
		Source: RangeSourceDefault,
	}
	if reading.ReferenceRange != nil {
		res.Range = *reading.ReferenceRange
		res.Source = RangeSourceReading
	}
	return res
}

// Classify labels a value against its reference range
//   - outside [min, max]: ABNORMAL
//   - inside the optimal band (middle 50%, inclusive): OPTIMAL
//   - otherwise: NORMAL
func Classify(value float64, r domain.ReferenceRange) domain.MarkerStatus {
	if !r.Contains(value) {
		return domain.MarkerStatusAbnormal
	}
	if r.OptimalBand().Contains(value) {
		return domain.MarkerStatusOptimal
	}
	return domain.MarkerStatusNormal
}

// ComputeTrend compares two consecutive readings of one marker
// Logic:
//  1. Direction is the sign of current - previous
//  2. Entering the optimal band, or getting closer to it from outside, is favorable
//  3. Leaving the optimal band, or moving further from it, is unfavorable
//  4. Otherwise (both inside the band, or equally far) the marker preference decides
func ComputeTrend(previous, current float64, r domain.ReferenceRange, pref Preference) domain.Trend {
	delta := current - previous
	trend := domain.Trend{Direction: domain.TrendFlat, Tone: domain.ToneNeutral, Delta: delta}

	switch {
	case delta > 0:
		trend.Direction = domain.TrendUp
	case delta < 0:
		trend.Direction = domain.TrendDown
	default:
		return trend
	}

	band := r.OptimalBand()
	wasOptimal, isOptimal := band.Contains(previous), band.Contains(current)

	switch {
	case !wasOptimal && isOptimal:
		trend.Tone = domain.ToneFavorable
		return trend
	case wasOptimal && !isOptimal:
		trend.Tone = domain.ToneUnfavorable
		return trend
	case !wasOptimal && !isOptimal:
		before, after := band.Distance(previous), band.Distance(current)
		if after < before {
			trend.Tone = domain.ToneFavorable
			return trend
		}
		if after > before {
			trend.Tone = domain.ToneUnfavorable
			return trend
		}
	}

	trend.Tone = toneByPreference(trend.Direction, pref)
	return trend
}

func toneByPreference(dir domain.TrendDirection, pref Preference) domain.TrendTone {
	switch {
	case pref == PreferNone:
		return domain.ToneNeutral
	case (dir == domain.TrendDown) == (pref == PreferLower):
		return domain.ToneFavorable
	default:
		return domain.ToneUnfavorable
	}
}
