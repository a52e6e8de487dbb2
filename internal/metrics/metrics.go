package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type runStats struct {
	runs        map[string]int
	failures    int
	transitions int
	lastMode    string
	lastPending int
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// tracker runs, mirroring them to OpenTelemetry instruments when configured.
// A nil Recorder is valid and records nothing.
type Recorder struct {
	mu    sync.Mutex
	stats map[string]*providerStats
	run   runStats
	otel  *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		run:   runStats{runs: make(map[string]int)},
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStats(provider)
	stats.rateLimitHits++
	if retryAfter > 0 {
		stats.lastRetryAfter = retryAfter
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// RecordRun tracks one tracker invocation by the action the cadence engine took.
func (r *Recorder) RecordRun(action string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	r.run.runs[action]++
	if err != nil {
		r.run.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRun(action, duration, err)
	}
}

// RecordState stores the mode and pending count persisted by the latest run,
// counting a transition when the mode differs from the previous one.
func (r *Recorder) RecordState(previousMode, mode string, pending int) {
	if r == nil {
		return
	}

	r.mu.Lock()
	changed := previousMode != "" && previousMode != mode
	if changed {
		r.run.transitions++
	}
	r.run.lastMode = mode
	r.run.lastPending = pending
	r.mu.Unlock()

	if r.otel != nil && changed {
		r.otel.recordTransition(previousMode, mode)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RunSnapshot is a copy of the tracker run stats.
type RunSnapshot struct {
	Runs        map[string]int
	Failures    int
	Transitions int
	LastMode    string
	LastPending int
}

// Runs returns a copy of the run stats.
func (r *Recorder) Runs() RunSnapshot {
	if r == nil {
		return RunSnapshot{Runs: map[string]int{}}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	runs := make(map[string]int, len(r.run.runs))
	for k, v := range r.run.runs {
		runs[k] = v
	}
	return RunSnapshot{
		Runs:        runs,
		Failures:    r.run.failures,
		Transitions: r.run.transitions,
		LastMode:    r.run.lastMode,
		LastPending: r.run.lastPending,
	}
}

// ensureStats must be called with r.mu held.
func (r *Recorder) ensureStats(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
