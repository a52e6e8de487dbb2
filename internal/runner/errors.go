package runner

import (
	"errors"
	"fmt"
	"time"
)

// ErrClockUnavailable is returned when the system clock yields no usable time.
var ErrClockUnavailable = errors.New("system clock unavailable")

// TimeError carries the bad reading that made the clock unusable.
type TimeError struct {
	Reading time.Time
}

func (e *TimeError) Error() string {
	return fmt.Sprintf("%v: got %s", ErrClockUnavailable, e.Reading.Format(time.RFC3339))
}

func (e *TimeError) Unwrap() error { return ErrClockUnavailable }
