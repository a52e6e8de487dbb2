package nhle

import (
	"bytes"
	"encoding/json"

	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
)

func malformed(field, reason string) error {
	return &providers.MalformedResponseError{Provider: providerName, Field: field, Reason: reason}
}

func isMissing(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// parseScoreboard extracts the games of the focused date from a scoreboard
// payload. The envelope is strict, the games themselves are not.
func parseScoreboard(body []byte) ([]gameResponse, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, malformed("", "body is not a JSON object")
	}

	rawFocused, ok := envelope["focusedDate"]
	if !ok || isMissing(rawFocused) {
		return nil, malformed("focusedDate", "missing")
	}
	var focusedDate string
	if err := json.Unmarshal(rawFocused, &focusedDate); err != nil {
		return nil, malformed("focusedDate", "is not a string")
	}

	rawDays, ok := envelope["gamesByDate"]
	if !ok || isMissing(rawDays) {
		return nil, malformed("gamesByDate", "missing")
	}
	var days []json.RawMessage
	if err := json.Unmarshal(rawDays, &days); err != nil {
		return nil, malformed("gamesByDate", "is not an array")
	}

	for _, rawDay := range days {
		var day map[string]json.RawMessage
		if err := json.Unmarshal(rawDay, &day); err != nil {
			continue
		}
		var date string
		if err := json.Unmarshal(day["date"], &date); err != nil || date != focusedDate {
			continue
		}

		rawGames, ok := day["games"]
		if !ok || isMissing(rawGames) {
			break
		}
		var list []json.RawMessage
		if err := json.Unmarshal(rawGames, &list); err != nil {
			break
		}
		out := make([]gameResponse, 0, len(list))
		for _, g := range list {
			out = append(out, decodeGame(g))
		}
		return out, nil
	}

	return nil, malformed("gamesByDate", "has no games array for "+focusedDate)
}
