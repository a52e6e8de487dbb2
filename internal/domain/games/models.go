package games

// GameState is the normalized lifecycle state of a game.
type GameState string

const (
	StateFuture GameState = "FUTURE"
	StateLive   GameState = "LIVE"
	StateOff    GameState = "OFF"
)

// Raw gameState values published by the scoreboard feed that map to a non-live state.
const (
	rawFuture = "FUT"
	rawOff    = "OFF"
)

// ParseGameState maps the feed's raw gameState string to a GameState.
// Anything that is not explicitly future or finished is treated as LIVE so the
// game keeps being watched. This leniency may deserve stricter validation once
// the full set of upstream values is pinned down.
func ParseGameState(raw string) GameState {
	switch raw {
	case rawFuture:
		return StateFuture
	case rawOff:
		return StateOff
	default:
		return StateLive
	}
}

// Team captures one side of a game.
type Team struct {
	Abbrev string `json:"abbrev"`
	Score  int    `json:"score"`
}

// Game is one scheduled, live or finished game pulled from the scoreboard.
type Game struct {
	Home     Team      `json:"homeTeam"`
	Away     Team      `json:"awayTeam"`
	State    GameState `json:"state"`
	RawState string    `json:"rawState,omitempty"`
	// StartTime is the feed's RFC3339 start time as published.
	StartTime string `json:"startTime"`
	// StartTimeUTC is StartTime in seconds since epoch; 0 when missing or unparseable.
	StartTimeUTC      int64  `json:"startTimeUtc"`
	ReadableStartTime string `json:"readableStartTime,omitempty"`
}

// HasStartTime reports whether the game carries a usable start timestamp.
func (g Game) HasStartTime() bool {
	return g.StartTimeUTC > 0
}

// Active reports whether the game is neither finished nor still in the future.
func (g Game) Active() bool {
	return g.State != StateOff && g.State != StateFuture
}
