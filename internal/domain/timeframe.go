package domain

import (
	"fmt"
	"time"
)

// Timeframe is the user-selected range that drives filtering and bucket granularity
type Timeframe string

const (
	TimeframeLast30Days  Timeframe = "last30days"
	TimeframeLast3Months Timeframe = "last3months"
	TimeframeLast6Months Timeframe = "last6months"
	TimeframeLast1Year   Timeframe = "last1year"
	TimeframeLast3Years  Timeframe = "last3years"
)

// DefaultTimeframe is used when a request does not name one
const DefaultTimeframe = TimeframeLast30Days

// BucketKind describes how samples are grouped into chart points
type BucketKind string

const (
	BucketDaily   BucketKind = "daily" // no aggregation, one point per sample
	BucketWeekly  BucketKind = "weekly"
	BucketMonthly BucketKind = "monthly"
)

// ParseTimeframe converts a wire value into a Timeframe
// An empty string selects DefaultTimeframe
func ParseTimeframe(s string) (Timeframe, error) {
	if s == "" {
		return DefaultTimeframe, nil
	}
	tf := Timeframe(s)
	switch tf {
	case TimeframeLast30Days, TimeframeLast3Months, TimeframeLast6Months, TimeframeLast1Year, TimeframeLast3Years:
		return tf, nil
	default:
		return "", fmt.Errorf("%w: unknown timeframe %q", ErrInvalidArgument, s)
	}
}

// Start returns the inclusive lower bound of the timeframe ending at now
func (tf Timeframe) Start(now time.Time) time.Time {
	return tf.shift(now, 1)
}

// span returns the calendar length of the timeframe
func (tf Timeframe) span() (months, days int) {
	switch tf {
	case TimeframeLast3Months:
		return 3, 0
	case TimeframeLast6Months:
		return 6, 0
	case TimeframeLast1Year:
		return 12, 0
	case TimeframeLast3Years:
		return 36, 0
	default:
		return 0, 30
	}
}

// shift moves t back by n whole timeframe lengths in a single calendar step
func (tf Timeframe) shift(t time.Time, n int) time.Time {
	months, days := tf.span()
	return t.AddDate(0, -months*n, -days*n)
}

// BucketKind returns the grouping used when charting this timeframe
//   - 30 days: no aggregation
//   - 3/6 months: Sunday-aligned weeks
//   - 1/3 years: calendar months
func (tf Timeframe) BucketKind() BucketKind {
	switch tf {
	case TimeframeLast3Months, TimeframeLast6Months:
		return BucketWeekly
	case TimeframeLast1Year, TimeframeLast3Years:
		return BucketMonthly
	default:
		return BucketDaily
	}
}

// MinWindowOffset is the furthest back a window may be requested
const MinWindowOffset = -1000

// Window is a timeframe positioned in history.
// Offset 0 is the current window; -1 is the one immediately before it, and so on.
type Window struct {
	Timeframe Timeframe
	Offset    int
}

// CurrentWindow returns the window ending now for tf
func CurrentWindow(tf Timeframe) Window {
	return Window{Timeframe: tf}
}

// Prev returns the window immediately preceding w
func (w Window) Prev() Window {
	return Window{Timeframe: w.Timeframe, Offset: w.Offset - 1}
}

// Next returns the window immediately following w. It never moves past the current window.
func (w Window) Next() Window {
	if w.Offset >= 0 {
		return Window{Timeframe: w.Timeframe}
	}
	return Window{Timeframe: w.Timeframe, Offset: w.Offset + 1}
}

// IsCurrent reports whether w is the window ending now
func (w Window) IsCurrent() bool {
	return w.Offset >= 0
}

// Bounds returns the half-open interval [from, to) covered by w.
// For the current window to is the zero time, meaning no upper bound.
func (w Window) Bounds(now time.Time) (from, to time.Time) {
	if w.IsCurrent() {
		return w.Timeframe.Start(now), time.Time{}
	}

	anchor := w.Timeframe.shift(now, -w.Offset)
	return w.Timeframe.Start(anchor), anchor
}

// Contains reports whether t falls inside the window bounds
func (w Window) Contains(t, now time.Time) bool {
	from, to := w.Bounds(now)
	if t.Before(from) {
		return false
	}
	return to.IsZero() || t.Before(to)
}
