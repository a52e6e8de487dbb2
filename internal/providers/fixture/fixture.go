package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
)

const providerName = "fixture"

// Provider returns a deterministic slate of games relative to the current
// hour, useful for local dry runs without touching the upstream API.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (p *Provider) Name() string { return providerName }

// FetchGames returns one finished, one live and two upcoming games.
func (p *Provider) FetchGames(ctx context.Context) ([]games.Game, error) {
	_ = ctx

	hour := p.now().UTC().Truncate(time.Hour)
	return []games.Game{
		build("EDM", 4, "CGY", 2, "OFF", hour.Add(-3*time.Hour)),
		build("TOR", 2, "MTL", 1, "LIVE", hour.Add(-time.Hour)),
		build("BOS", 0, "NYR", 0, "FUT", hour.Add(2*time.Hour)),
		build("OTT", 0, "TOR", 0, "FUT", hour.Add(26*time.Hour)),
	}, nil
}

func build(home string, homeScore int, away string, awayScore int, rawState string, start time.Time) games.Game {
	eastern := time.FixedZone("-05:00", -5*60*60)
	return games.Game{
		Home:              games.Team{Abbrev: home, Score: homeScore},
		Away:              games.Team{Abbrev: away, Score: awayScore},
		State:             games.ParseGameState(rawState),
		RawState:          rawState,
		StartTime:         start.Format(time.RFC3339),
		StartTimeUTC:      start.Unix(),
		ReadableStartTime: start.In(eastern).Format("3:04 PM"),
	}
}
