package nhle

import "time"

const (
	providerName = "nhle"

	// DefaultScoreboardURL returns the scoreboard for the league's current day.
	DefaultScoreboardURL = "https://api-web.nhle.com/v1/scoreboard/now"

	defaultHTTPTimeout   = 10 * time.Second
	defaultUserAgent     = "nhl-game-tracker"
	defaultEasternOffset = "-05:00"
	readableTimeLayout   = "3:04 PM"
	maxErrorBodyBytes    = 512
)
