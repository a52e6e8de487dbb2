package nhle

import (
	"encoding/json"
	"math"
)

// gameResponse is one entry of a day's games array. Every field decodes
// permissively: a wrong type yields the zero value instead of an error.
type gameResponse struct {
	GameState        flexString   `json:"gameState"`
	StartTimeUTC     flexString   `json:"startTimeUTC"`
	EasternUTCOffset flexString   `json:"easternUTCOffset"`
	HomeTeam         teamResponse `json:"homeTeam"`
	AwayTeam         teamResponse `json:"awayTeam"`
}

type teamResponse struct {
	Abbrev flexString `json:"abbrev"`
	Score  flexInt    `json:"score"`
}

// UnmarshalJSON ignores anything that is not an object.
func (t *teamResponse) UnmarshalJSON(data []byte) error {
	type plain teamResponse
	var v plain
	if err := json.Unmarshal(data, &v); err != nil {
		*t = teamResponse{}
		return nil
	}
	*t = teamResponse(v)
	return nil
}

// flexString decodes JSON strings; any other JSON value becomes "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		*s = ""
		return nil
	}
	*s = flexString(v)
	return nil
}

// flexInt decodes non-negative integral JSON numbers; anything else becomes 0.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var v float64
	if err := json.Unmarshal(data, &v); err != nil || v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

// decodeGame never fails; a game that is not an object yields an empty record.
func decodeGame(raw json.RawMessage) gameResponse {
	var g gameResponse
	if err := json.Unmarshal(raw, &g); err != nil {
		return gameResponse{}
	}
	return g
}
