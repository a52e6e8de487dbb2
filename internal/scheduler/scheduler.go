// Package scheduler triggers tracker runs on a fixed interval for the watch command.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/runner"
)

const (
	DefaultInterval = 10 * time.Second
	jobName         = "tracker-run"
)

// Runnable performs one tracker invocation.
type Runnable interface {
	Run(ctx context.Context) (runner.Result, error)
}

// Status describes the recent health of the watch loop.
type Status struct {
	Runs                int
	ConsecutiveFailures int
	LastError           string
	LastAction          string
	LastMode            string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Watcher runs the tracker on a gocron duration job. Runs never overlap: a
// tick that fires while a run is in progress is rescheduled.
type Watcher struct {
	runner   Runnable
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	sched   gocron.Scheduler
	started bool

	statusMu sync.RWMutex
	status   Status
}

// New constructs a Watcher. A non-positive interval falls back to DefaultInterval.
func New(r Runnable, interval time.Duration, logger *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{
		runner:   r,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Interval returns the configured run interval.
func (w *Watcher) Interval() time.Duration { return w.interval }

// Start schedules the job, with the first run fired immediately.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = s.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() { w.runOnce(ctx) }),
		gocron.WithName(jobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return fmt.Errorf("schedule tracker run: %w", err)
	}

	s.Start()
	w.sched = s
	w.started = true
	logging.Info(w.logger, "watch started", "interval", w.interval.String())
	return nil
}

// Stop shuts the scheduler down, waiting for an in-flight run to finish.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return nil
	}
	w.started = false
	err := w.sched.Shutdown()
	logging.Info(w.logger, "watch stopped")
	return err
}

// Run starts the watcher and blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return w.Stop()
}

// Status returns a snapshot of the loop's recent health.
func (w *Watcher) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}

func (w *Watcher) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	at := w.now()
	res, err := w.runner.Run(ctx)
	if err != nil {
		// Already logged by the runner; the next tick retries.
		if !errors.Is(err, context.Canceled) {
			w.recordFailure(err, at)
		}
		return
	}
	w.recordSuccess(res, at)
}

func (w *Watcher) recordSuccess(res runner.Result, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Runs++
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastAction = string(res.Action)
	w.status.LastMode = string(res.State.CurrentMode)
	w.status.LastAttempt = at
	w.status.LastSuccess = at
}

func (w *Watcher) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.Runs++
	w.status.ConsecutiveFailures++
	w.status.LastError = err.Error()
	w.status.LastAttempt = at
}
