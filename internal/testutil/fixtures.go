package testutil

import (
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
)

// SampleGame builds a game between home and away starting at the given Unix seconds.
func SampleGame(home, away string, state games.GameState, start int64) games.Game {
	g := games.Game{
		Home:         games.Team{Abbrev: home},
		Away:         games.Team{Abbrev: away},
		State:        state,
		StartTimeUTC: start,
	}
	if start > 0 {
		g.StartTime = time.Unix(start, 0).UTC().Format(time.RFC3339)
		g.ReadableStartTime = time.Unix(start, 0).UTC().Format("3:04 PM")
	}
	return g
}

// Scored returns g with the given home and away scores.
func Scored(g games.Game, home, away int) games.Game {
	g.Home.Score = home
	g.Away.Score = away
	return g
}
