package tracker

import "sort"

// Timestamps is an ascending set of unix-second timestamps with no duplicates.
type Timestamps []int64

// NewTimestamps sorts and deduplicates values. Non-positive values are dropped.
func NewTimestamps(values ...int64) Timestamps {
	out := make(Timestamps, 0, len(values))
	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	deduped := out[:0]
	for i, v := range out {
		if i > 0 && v == out[i-1] {
			continue
		}
		deduped = append(deduped, v)
	}
	return deduped
}

// Values returns the timestamps as a plain slice, never nil.
func (t Timestamps) Values() []int64 {
	if t == nil {
		return []int64{}
	}
	return []int64(t)
}

// Clone returns a copy.
func (t Timestamps) Clone() Timestamps {
	out := make(Timestamps, len(t))
	copy(out, t)
	return out
}

// RetainFrom returns the timestamps that are >= now.
func (t Timestamps) RetainFrom(now int64) Timestamps {
	out := make(Timestamps, 0, len(t))
	for _, ts := range t {
		if ts >= now {
			out = append(out, ts)
		}
	}
	return out
}

// AnyReached reports whether any timestamp is <= now.
func (t Timestamps) AnyReached(now int64) bool {
	for _, ts := range t {
		if now >= ts {
			return true
		}
	}
	return false
}

// Contains reports whether ts is in the set.
func (t Timestamps) Contains(ts int64) bool {
	i := sort.Search(len(t), func(i int) bool { return t[i] >= ts })
	return i < len(t) && t[i] == ts
}
