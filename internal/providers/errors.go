package providers

import (
	"errors"
	"fmt"
	"time"
)

// NetworkError reports a transport-level failure talking to the upstream:
// connection errors, timeouts and unexpected HTTP statuses.
type NetworkError struct {
	Provider   string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	prefix := e.Provider
	if prefix == "" {
		prefix = "provider"
	}
	switch {
	case e.StatusCode > 0 && e.Err != nil:
		return fmt.Sprintf("%s: unexpected status %d: %v", prefix, e.StatusCode, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: unexpected status %d", prefix, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: request failed: %v", prefix, e.Err)
	default:
		return prefix + ": request failed"
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError reports that a required envelope field was missing or
// had the wrong type. Per-game defects never produce this error.
type MalformedResponseError struct {
	Provider string
	Field    string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	prefix := e.Provider
	if prefix == "" {
		prefix = "provider"
	}
	if e.Field == "" {
		return fmt.Sprintf("%s: malformed response: %s", prefix, e.Reason)
	}
	return fmt.Sprintf("%s: malformed response: %s %s", prefix, e.Field, e.Reason)
}

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// AsNetworkError attempts to unwrap an error into a NetworkError.
func AsNetworkError(err error) (*NetworkError, bool) {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return netErr, true
	}
	return nil, false
}

// AsMalformedResponseError attempts to unwrap an error into a MalformedResponseError.
func AsMalformedResponseError(err error) (*MalformedResponseError, bool) {
	var mErr *MalformedResponseError
	if errors.As(err, &mErr) {
		return mErr, true
	}
	return nil, false
}
