// Package cadence decides, once per invocation, whether the tracker has to hit
// the scoreboard and what state to persist afterwards.
package cadence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
)

// Action names the branch a step took.
type Action string

const (
	ActionFullRefresh Action = "full_refresh"
	ActionIdleSkip    Action = "idle_skip"
	ActionPoll        Action = "poll"
)

// Outcome is the result of a successful step. State is what must be persisted.
type Outcome struct {
	Action          Action
	State           tracker.State
	Previous        tracker.State
	Favourites      []games.Game
	ActiveGameFound bool
	Fetched         bool
}

// ModeChanged reports whether the step moved the tracker into a different mode.
func (o Outcome) ModeChanged() bool {
	return o.Previous.CurrentMode != o.State.CurrentMode
}

// Engine runs the timestamp-gated cadence state machine.
type Engine struct {
	provider   providers.GameProvider
	favourites games.Favourites
	logger     *slog.Logger
}

// NewEngine wires the engine to a provider and a favourite set. logger may be nil.
func NewEngine(provider providers.GameProvider, favourites games.Favourites, logger *slog.Logger) *Engine {
	return &Engine{provider: provider, favourites: favourites, logger: logger}
}

// Step advances prev to the state for an invocation at now (Unix seconds).
// On a fetch failure it returns the error and no state; the caller must not
// persist anything for this attempt.
func (e *Engine) Step(ctx context.Context, now int64, prev tracker.State) (Outcome, error) {
	out := Outcome{Previous: prev.Clone()}

	var (
		pending tracker.Timestamps
		fetched []games.Game
	)

	if tracker.IsNewDay(prev.LastRunTimestamp, now) {
		all, err := e.fetch(ctx)
		if err != nil {
			return Outcome{}, err
		}
		fetched = games.FilterFavourites(all, e.favourites)
		pending = tracker.NewTimestamps(games.FutureStartTimestamps(fetched)...)
		out.Action = ActionFullRefresh
		out.Fetched = true
		logging.Debug(e.logger, "full refresh", logging.FieldPending, len(pending))
	} else {
		pending = prev.PendingStartTimestamps.RetainFrom(now)
		if len(pending) > 0 && !pending.AnyReached(now) {
			out.Action = ActionIdleSkip
			out.State = tracker.State{
				LastRunTimestamp:       now,
				CurrentMode:            prev.CurrentMode,
				PendingStartTimestamps: pending,
			}
			logging.Debug(e.logger, "no followed game has started yet", "next_start", pending[0])
			return out, nil
		}

		all, err := e.fetch(ctx)
		if err != nil {
			return Outcome{}, err
		}
		fetched = games.FilterFavourites(all, e.favourites)
		out.Action = ActionPoll
		out.Fetched = true
	}

	out.Favourites = fetched
	out.ActiveGameFound = games.AnyActive(fetched)

	mode := tracker.ModeNoGamesLive
	if out.ActiveGameFound {
		mode = tracker.ModeWatchingLive
	}
	out.State = tracker.State{
		LastRunTimestamp:       now,
		CurrentMode:            mode,
		PendingStartTimestamps: reconcile(pending, fetched),
	}
	return out, nil
}

func (e *Engine) fetch(ctx context.Context) ([]games.Game, error) {
	all, err := e.provider.FetchGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch games: %w", err)
	}
	return all, nil
}

// reconcile keeps a pending timestamp only while some favourite game starting
// at it is not yet finished.
func reconcile(pending tracker.Timestamps, favourites []games.Game) tracker.Timestamps {
	kept := make([]int64, 0, len(pending))
	for _, ts := range pending {
		matching := games.StartingAt(favourites, ts)
		if len(matching) == 0 {
			continue
		}
		for _, g := range matching {
			if g.State != games.StateOff {
				kept = append(kept, ts)
				break
			}
		}
	}
	return tracker.NewTimestamps(kept...)
}
