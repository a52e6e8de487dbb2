// Package runner drives a single tracker invocation: load, decide, report, save.
package runner

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/nhl-game-tracker/internal/cadence"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/metrics"
	"github.com/preston-bernstein/nhl-game-tracker/internal/report"
)

// Stepper advances the tracker state for one invocation.
type Stepper interface {
	Step(ctx context.Context, now int64, prev tracker.State) (cadence.Outcome, error)
}

// StateStore loads and persists the tracker state.
type StateStore interface {
	Load(ctx context.Context) (tracker.State, error)
	Save(ctx context.Context, state tracker.State) error
	Backend() string
}

// Result summarizes a successful run.
type Result struct {
	RunID      string
	Action     cadence.Action
	State      tracker.State
	Previous   tracker.State
	Favourites []games.Game
}

// Runner executes one idle-check-or-poll decision per Run call.
type Runner struct {
	engine  Stepper
	store   StateStore
	printer *report.Printer
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
	newID   func() string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// WithPrinter overrides where favourite games are reported.
func WithPrinter(p *report.Printer) Option {
	return func(r *Runner) {
		if p != nil {
			r.printer = p
		}
	}
}

// WithMetrics records run outcomes in recorder.
func WithMetrics(recorder *metrics.Recorder) Option {
	return func(r *Runner) { r.metrics = recorder }
}

// New constructs a Runner. logger may be nil.
func New(engine Stepper, store StateStore, logger *slog.Logger, opts ...Option) *Runner {
	r := &Runner{
		engine:  engine,
		store:   store,
		printer: report.New(nil),
		logger:  logger,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one invocation. On any error nothing is persisted, so the
// stored state stays exactly as the last successful run left it.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	runID := r.newID()
	logger := logging.ForRun(r.logger, runID)
	started := time.Now()

	clock := r.now()
	if clock.IsZero() || clock.Unix() <= 0 {
		err := &TimeError{Reading: clock}
		logging.Error(logger, "cannot read system clock", err)
		return Result{RunID: runID}, err
	}
	now := clock.Unix()

	prev, err := r.store.Load(ctx)
	if err != nil {
		logging.Error(logger, "failed to load tracker state", err, logging.FieldBackend, r.store.Backend())
		r.metrics.RecordRun(string(expectedAction(prev, now)), time.Since(started), err)
		return Result{RunID: runID}, err
	}

	out, err := r.engine.Step(ctx, now, prev)
	if err != nil {
		action := expectedAction(prev, now)
		logging.Error(logger, "run failed, state left untouched", err,
			logging.FieldAction, string(action),
			logging.FieldMode, string(prev.CurrentMode),
		)
		r.metrics.RecordRun(string(action), time.Since(started), err)
		return Result{RunID: runID, Action: action, Previous: prev}, err
	}

	if err := r.printer.Outcome(out); err != nil {
		logging.Warn(logger, "failed to print games", err)
	}

	if err := r.store.Save(ctx, out.State); err != nil {
		logging.Error(logger, "failed to save tracker state", err, logging.FieldBackend, r.store.Backend())
		r.metrics.RecordRun(string(out.Action), time.Since(started), err)
		return Result{RunID: runID, Action: out.Action, Previous: prev}, err
	}

	elapsed := time.Since(started)
	r.metrics.RecordRun(string(out.Action), elapsed, nil)
	r.metrics.RecordState(string(prev.CurrentMode), string(out.State.CurrentMode), len(out.State.PendingStartTimestamps))

	args := []any{
		logging.FieldAction, string(out.Action),
		logging.FieldMode, string(out.State.CurrentMode),
		logging.FieldPending, len(out.State.PendingStartTimestamps),
		logging.FieldCount, len(out.Favourites),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	}
	if out.ModeChanged() {
		args = append(args, logging.FieldPrevMode, string(prev.CurrentMode))
	}
	logging.Info(logger, "run complete", args...)

	return Result{
		RunID:      runID,
		Action:     out.Action,
		State:      out.State,
		Previous:   out.Previous,
		Favourites: out.Favourites,
	}, nil
}

// Status returns the persisted state without touching it.
func (r *Runner) Status(ctx context.Context) (tracker.State, error) {
	return r.store.Load(ctx)
}

// Reset overwrites the persisted state with the default, forcing a full
// refresh on the next run.
func (r *Runner) Reset(ctx context.Context) error {
	if err := r.store.Save(ctx, tracker.Default()); err != nil {
		return err
	}
	logging.Info(r.logger, "tracker state reset", logging.FieldBackend, r.store.Backend())
	return nil
}

// expectedAction names the fetching branch a failed run was on. Idle skips never fail.
func expectedAction(prev tracker.State, now int64) cadence.Action {
	if tracker.IsNewDay(prev.LastRunTimestamp, now) {
		return cadence.ActionFullRefresh
	}
	return cadence.ActionPoll
}
