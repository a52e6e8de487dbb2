package games

import (
	"sort"
	"strings"
)

// Favourites is the set of team abbreviations the user follows.
type Favourites map[string]struct{}

// NewFavourites builds a favourites set. Codes are trimmed and upper-cased;
// blanks are ignored. No validation against a team list is done.
func NewFavourites(abbrevs ...string) Favourites {
	set := make(Favourites, len(abbrevs))
	for _, a := range abbrevs {
		a = strings.ToUpper(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		set[a] = struct{}{}
	}
	return set
}

// Contains reports whether abbrev is followed.
func (f Favourites) Contains(abbrev string) bool {
	if abbrev == "" {
		return false
	}
	_, ok := f[abbrev]
	return ok
}

// List returns the followed abbreviations in sorted order.
func (f Favourites) List() []string {
	out := make([]string, 0, len(f))
	for a := range f {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// FilterFavourites keeps the games where the home or away team is followed,
// preserving input order.
func FilterFavourites(games []Game, favourites Favourites) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if favourites.Contains(g.Home.Abbrev) || favourites.Contains(g.Away.Abbrev) {
			out = append(out, g)
		}
	}
	return out
}

// AnyActive reports whether any game is currently in play.
func AnyActive(games []Game) bool {
	for _, g := range games {
		if g.Active() {
			return true
		}
	}
	return false
}

// FutureStartTimestamps collects the start times of FUTURE games, deduplicated
// and ascending. Games without a usable start time are skipped.
func FutureStartTimestamps(games []Game) []int64 {
	seen := make(map[int64]struct{}, len(games))
	out := make([]int64, 0, len(games))
	for _, g := range games {
		if g.State != StateFuture || !g.HasStartTime() {
			continue
		}
		if _, ok := seen[g.StartTimeUTC]; ok {
			continue
		}
		seen[g.StartTimeUTC] = struct{}{}
		out = append(out, g.StartTimeUTC)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StartingAt returns the games whose start time equals ts.
func StartingAt(games []Game, ts int64) []Game {
	var out []Game
	for _, g := range games {
		if g.HasStartTime() && g.StartTimeUTC == ts {
			out = append(out, g)
		}
	}
	return out
}
