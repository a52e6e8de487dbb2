package timeutil

import "time"

// SecondsPerDay is the length of a UTC day as used for day-boundary checks.
const SecondsPerDay int64 = 24 * 60 * 60

// DayIndex returns the number of whole UTC days since the epoch for a unix timestamp.
func DayIndex(unix int64) int64 {
	return unix / SecondsPerDay
}

// FromUnix converts unix seconds to a UTC time. Zero stays the zero time.
func FromUnix(unix int64) time.Time {
	if unix == 0 {
		return time.Time{}
	}
	return time.Unix(unix, 0).UTC()
}
