package nhle

import (
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
)

func mapGame(g gameResponse, loc *time.Location) games.Game {
	raw := string(g.GameState)
	start := strings.TrimSpace(string(g.StartTimeUTC))
	out := games.Game{
		Home:      games.Team{Abbrev: string(g.HomeTeam.Abbrev), Score: int(g.HomeTeam.Score)},
		Away:      games.Team{Abbrev: string(g.AwayTeam.Abbrev), Score: int(g.AwayTeam.Score)},
		State:     games.ParseGameState(raw),
		RawState:  raw,
		StartTime: start,
	}

	parsed, err := time.Parse(time.RFC3339, start)
	if err != nil || parsed.Unix() <= 0 {
		return out
	}
	out.StartTimeUTC = parsed.Unix()
	out.ReadableStartTime = readableStart(parsed, string(g.EasternUTCOffset), loc)
	return out
}

// readableStart formats the start time for display, preferring an explicit
// location and falling back to the feed's eastern offset.
func readableStart(start time.Time, offset string, loc *time.Location) string {
	if loc == nil {
		loc = fixedZone(offset)
	}
	return start.In(loc).Format(readableTimeLayout)
}

// fixedZone parses offsets such as "-05:00" or "-0500". Invalid input uses the
// eastern standard offset.
func fixedZone(offset string) *time.Location {
	offset = strings.TrimSpace(offset)
	if offset == "" {
		offset = defaultEasternOffset
	}
	for _, layout := range []string{"-07:00", "-0700"} {
		if t, err := time.Parse(layout, offset); err == nil {
			_, secs := t.Zone()
			return time.FixedZone(offset, secs)
		}
	}
	if offset != defaultEasternOffset {
		return fixedZone(defaultEasternOffset)
	}
	return time.FixedZone(defaultEasternOffset, -5*60*60)
}
