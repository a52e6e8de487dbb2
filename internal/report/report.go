// Package report prints the favourite games a run looked at.
package report

import (
	"fmt"
	"io"
	"os"

	"github.com/preston-bernstein/nhl-game-tracker/internal/cadence"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
)

// Printer writes human-readable game lines. The zero value writes to stdout.
type Printer struct {
	Out io.Writer
}

// New returns a printer writing to w, or stdout when w is nil.
func New(w io.Writer) *Printer {
	return &Printer{Out: w}
}

func (p *Printer) writer() io.Writer {
	if p == nil || p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

// Outcome prints the schedule on a full refresh and the scores on every
// fetch. Idle skips print nothing.
func (p *Printer) Outcome(out cadence.Outcome) error {
	if !out.Fetched {
		return nil
	}
	if out.Action == cadence.ActionFullRefresh {
		if err := p.Schedule(out.Favourites); err != nil {
			return err
		}
	}
	return p.Scores(out.Favourites)
}

// Schedule prints "HOME vs AWAY - 7:00 PM" per game.
func (p *Printer) Schedule(list []games.Game) error {
	w := p.writer()
	for _, g := range list {
		if _, err := fmt.Fprintf(w, "%s vs %s - %s\n", g.Home.Abbrev, g.Away.Abbrev, g.ReadableStartTime); err != nil {
			return err
		}
	}
	return nil
}

// Scores prints "HOME: 2 - AWAY: 1 (State: LIVE)" per game using the feed's own state text.
func (p *Printer) Scores(list []games.Game) error {
	w := p.writer()
	for _, g := range list {
		if _, err := fmt.Fprintf(w, "%s: %d - %s: %d (State: %s)\n",
			g.Home.Abbrev, g.Home.Score, g.Away.Abbrev, g.Away.Score, stateText(g)); err != nil {
			return err
		}
	}
	return nil
}

func stateText(g games.Game) string {
	if g.RawState != "" {
		return g.RawState
	}
	return string(g.State)
}
