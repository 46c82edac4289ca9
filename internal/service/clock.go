package service

import "time"

// Clock returns the current time. Tests replace it to control timestamps.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}

// stamp returns the current instant at storage precision, moved past prev
// when the clock has not advanced. updatedAt therefore always grows.
func (c Clock) stamp(prev time.Time) time.Time {
	now := c().UTC().Truncate(time.Microsecond)
	if !prev.IsZero() && !now.After(prev) {
		now = prev.UTC().Add(time.Microsecond)
	}
	return now
}

func (c Clock) now() time.Time {
	return c.stamp(time.Time{})
}
