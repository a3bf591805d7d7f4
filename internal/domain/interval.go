package domain

import "time"

// Interval is a half-open time range [Start, End) on the UTC clock.
// Back-to-back intervals (a.End == b.Start) do not overlap.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval validates and normalizes a range to UTC.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{Start: start.UTC(), End: end.UTC()}
	if !iv.Start.Before(iv.End) {
		return Interval{}, ErrInvalidInterval
	}
	return iv, nil
}

// Overlaps reports whether the two half-open ranges share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}
