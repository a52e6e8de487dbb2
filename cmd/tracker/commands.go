package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/app"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/timeutil"
)

// RunCmd performs a single invocation.
type RunCmd struct{}

func (c *RunCmd) Run(g *globals) error {
	return withApp(g, func(a *app.App) error {
		_, err := a.Run(g.ctx)
		return err
	})
}

// WatchCmd loops until interrupted.
type WatchCmd struct {
	Interval time.Duration `help:"Time between runs (overrides WATCH_INTERVAL)"`
}

func (c *WatchCmd) Run(g *globals) error {
	if c.Interval > 0 {
		g.cfg.WatchInterval = c.Interval
	}
	return withApp(g, func(a *app.App) error {
		return a.Watch(g.ctx)
	})
}

// StatusCmd prints the persisted state.
type StatusCmd struct{}

func (c *StatusCmd) Run(g *globals) error {
	return withApp(g, func(a *app.App) error {
		state, err := a.Status(g.ctx)
		if err != nil {
			return err
		}
		_, err = fmt.Fprint(g.out, formatState(state, a.StoreBackend()))
		return err
	})
}

// ResetCmd writes the default state.
type ResetCmd struct{}

func (c *ResetCmd) Run(g *globals) error {
	return withApp(g, func(a *app.App) error {
		return a.Reset(g.ctx)
	})
}

func withApp(g *globals, fn func(*app.App) error) error {
	opts := append([]app.Option{app.WithOutput(g.out)}, appOptions...)
	a, err := app.New(g.ctx, g.cfg, g.logger, opts...)
	if err != nil {
		return err
	}
	defer func() {
		// Pushes metrics even when ctx was cancelled by a signal.
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if cErr := a.Close(closeCtx); cErr != nil {
			logging.Warn(g.logger, "shutdown incomplete", cErr)
		}
	}()
	return fn(a)
}

func formatState(s tracker.State, backend string) string {
	var b strings.Builder
	lastRun := "never"
	if s.HasRun() {
		lastRun = timeutil.FromUnix(s.LastRunTimestamp).Format(time.RFC3339)
	}
	fmt.Fprintf(&b, "Backend:  %s\n", backend)
	fmt.Fprintf(&b, "Last run: %s\n", lastRun)
	fmt.Fprintf(&b, "Mode:     %s\n", s.CurrentMode)
	if len(s.PendingStartTimestamps) == 0 {
		b.WriteString("Pending:  none\n")
		return b.String()
	}
	pending := make([]string, 0, len(s.PendingStartTimestamps))
	for _, ts := range s.PendingStartTimestamps {
		pending = append(pending, timeutil.FromUnix(ts).Format(time.RFC3339))
	}
	fmt.Fprintf(&b, "Pending:  %s\n", strings.Join(pending, ", "))
	return b.String()
}
