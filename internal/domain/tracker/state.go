package tracker

import (
	"encoding/json"

	"github.com/preston-bernstein/nhl-game-tracker/internal/timeutil"
)

// Mode is the tracker's current polling mode.
type Mode string

const (
	ModeWatchingLive Mode = "WATCHING_LIVE"
	ModeNoGamesLive  Mode = "NO_GAMES_LIVE"
)

// ParseMode maps persisted text to a Mode. Unknown text falls back to NO_GAMES_LIVE.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeWatchingLive {
		return ModeWatchingLive
	}
	return ModeNoGamesLive
}

// State is the only persisted entity: when the tracker last ran, which mode it
// is in, and the start times of followed games not yet confirmed finished.
type State struct {
	LastRunTimestamp       int64
	CurrentMode            Mode
	PendingStartTimestamps Timestamps
}

// Default is the state used when nothing has been persisted yet.
func Default() State {
	return State{
		LastRunTimestamp:       0,
		CurrentMode:            ModeNoGamesLive,
		PendingStartTimestamps: Timestamps{},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	s.PendingStartTimestamps = s.PendingStartTimestamps.Clone()
	return s
}

// HasRun reports whether a run has ever been recorded.
func (s State) HasRun() bool {
	return s.LastRunTimestamp > 0
}

// IsNewDay reports whether now falls on a later UTC day than the last run, or
// whether the tracker has never run. Either case calls for a full refresh.
func IsNewDay(lastRun, now int64) bool {
	if lastRun <= 0 {
		return true
	}
	return timeutil.DayIndex(now) > timeutil.DayIndex(lastRun)
}

type stateJSON struct {
	LastRunTimestamp    int64   `json:"lastRunTimestamp"`
	CurrentStatus       string  `json:"currentStatus"`
	GameStartTimestamps []int64 `json:"gameStartTimestamps"`
}

// MarshalJSON writes the persisted representation.
func (s State) MarshalJSON() ([]byte, error) {
	last := s.LastRunTimestamp
	if last < 0 {
		last = 0
	}
	mode := s.CurrentMode
	if mode == "" {
		mode = ModeNoGamesLive
	}
	return json.Marshal(stateJSON{
		LastRunTimestamp:    last,
		CurrentStatus:       string(mode),
		GameStartTimestamps: NewTimestamps(s.PendingStartTimestamps...).Values(),
	})
}

// UnmarshalJSON reads the persisted representation, clamping negative values.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw stateJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.LastRunTimestamp < 0 {
		raw.LastRunTimestamp = 0
	}
	*s = State{
		LastRunTimestamp:       raw.LastRunTimestamp,
		CurrentMode:            ParseMode(raw.CurrentStatus),
		PendingStartTimestamps: NewTimestamps(raw.GameStartTimestamps...),
	}
	return nil
}
