package nhle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
)

// Config controls how the client reaches the scoreboard.
type Config struct {
	URL        string
	HTTPClient *http.Client
	Timeout    time.Duration
	UserAgent  string
	// Timezone, when set, is used for readable start times instead of the feed's eastern offset.
	Timezone string
}

// Client fetches the current day's scoreboard from the NHL web API.
type Client struct {
	url        string
	userAgent  string
	httpClient httpDoer
	loc        *time.Location
	now        func() time.Time
}

// NewClient constructs a scoreboard client with the provided configuration.
func NewClient(cfg Config) *Client {
	ua := cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	return &Client{
		url:        normalizeURL(cfg.URL),
		userAgent:  ua,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		loc:        providers.ResolveTimezone(cfg.Timezone),
		now:        time.Now,
	}
}

// Name identifies the provider in logs and metrics.
func (c *Client) Name() string { return providerName }

// FetchGames retrieves and normalizes the focused day's games.
func (c *Client) FetchGames(ctx context.Context) ([]games.Game, error) {
	body, err := c.get(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := parseScoreboard(body)
	if err != nil {
		return nil, err
	}

	out := make([]games.Game, 0, len(raw))
	for _, g := range raw {
		out = append(out, mapGame(g, c.loc))
	}
	return out, nil
}

func (c *Client) get(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &providers.NetworkError{Provider: providerName, URL: c.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &providers.NetworkError{Provider: providerName, URL: c.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Message:    "nhle: rate limited",
		}
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		var cause error
		if msg := strings.TrimSpace(string(snippet)); msg != "" {
			cause = errors.New(msg)
		}
		return nil, &providers.NetworkError{Provider: providerName, URL: c.url, StatusCode: resp.StatusCode, Err: cause}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &providers.NetworkError{Provider: providerName, URL: c.url, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
