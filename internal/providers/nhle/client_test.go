package nhle

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
)

const scoreboardBody = `{
	"focusedDate": "2024-01-15",
	"gamesByDate": [
		{"date": "2024-01-14", "games": [
			{"gameState": "OFF", "startTimeUTC": "2024-01-15T00:00:00Z",
			 "homeTeam": {"abbrev": "EDM", "score": 4}, "awayTeam": {"abbrev": "CGY", "score": 1}}
		]},
		{"date": "2024-01-15", "games": [
			{"gameState": "LIVE", "startTimeUTC": "2024-01-15T19:00:00Z", "easternUTCOffset": "-05:00",
			 "homeTeam": {"abbrev": "TOR", "score": 2}, "awayTeam": {"abbrev": "MTL", "score": 1}},
			{"gameState": "FUT", "startTimeUTC": "2024-01-16T00:30:00Z", "easternUTCOffset": "-05:00",
			 "homeTeam": {"abbrev": "BOS"}, "awayTeam": {"abbrev": "NYR"}}
		]}
	]
}`

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int, body string, header http.Header) roundTripperFunc {
	return func(req *http.Request) (*http.Response, error) {
		if header == nil {
			header = make(http.Header)
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(strings.NewReader(body)),
			Header:     header,
		}, nil
	}
}

func TestFetchGamesHitsScoreboardAndMapsFocusedDay(t *testing.T) {
	var gotPath, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, scoreboardBody)
	}))
	defer srv.Close()

	client := NewClient(Config{URL: srv.URL + "/v1/scoreboard/now", UserAgent: "tracker-test"})
	list, err := client.FetchGames(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if gotPath != "/v1/scoreboard/now" {
		t.Fatalf("unexpected path %s", gotPath)
	}
	if gotUA != "tracker-test" {
		t.Fatalf("expected user agent header, got %q", gotUA)
	}
	if len(list) != 2 {
		t.Fatalf("expected only the focused day's 2 games, got %d", len(list))
	}

	live := list[0]
	if live.Home.Abbrev != "TOR" || live.Home.Score != 2 || live.Away.Abbrev != "MTL" || live.Away.Score != 1 {
		t.Fatalf("unexpected teams %+v", live)
	}
	if live.State != games.StateLive || live.RawState != "LIVE" {
		t.Fatalf("unexpected state %s/%s", live.State, live.RawState)
	}
	want := time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC).Unix()
	if live.StartTimeUTC != want {
		t.Fatalf("expected start %d, got %d", want, live.StartTimeUTC)
	}
	if live.ReadableStartTime != "2:00 PM" {
		t.Fatalf("expected eastern readable time, got %q", live.ReadableStartTime)
	}

	future := list[1]
	if future.State != games.StateFuture || future.Home.Score != 0 {
		t.Fatalf("unexpected future game %+v", future)
	}
	if future.ReadableStartTime != "7:30 PM" {
		t.Fatalf("expected 7:30 PM, got %q", future.ReadableStartTime)
	}
}

func TestFetchGamesUsesConfiguredTimezone(t *testing.T) {
	client := NewClient(Config{
		URL:        "http://example.com/scoreboard",
		HTTPClient: &http.Client{Transport: respond(http.StatusOK, scoreboardBody, nil)},
		Timezone:   "UTC",
	})
	list, err := client.FetchGames(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if list[0].ReadableStartTime != "7:00 PM" {
		t.Fatalf("expected UTC readable time, got %q", list[0].ReadableStartTime)
	}
}

func TestFetchGamesTransportFailureIsNetworkError(t *testing.T) {
	client := NewClient(Config{
		HTTPClient: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})},
	})
	_, err := client.FetchGames(context.Background())
	netErr, ok := providers.AsNetworkError(err)
	if !ok {
		t.Fatalf("expected network error, got %v", err)
	}
	if netErr.URL != DefaultScoreboardURL {
		t.Fatalf("expected default url, got %s", netErr.URL)
	}
}

func TestFetchGamesNon200IsNetworkError(t *testing.T) {
	client := NewClient(Config{
		HTTPClient: &http.Client{Transport: respond(http.StatusBadGateway, "upstream down", nil)},
	})
	_, err := client.FetchGames(context.Background())
	netErr, ok := providers.AsNetworkError(err)
	if !ok || netErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502 network error, got %v", err)
	}
	if !strings.Contains(err.Error(), "upstream down") {
		t.Fatalf("expected body snippet in error, got %q", err.Error())
	}
}

func TestFetchGamesRateLimited(t *testing.T) {
	header := make(http.Header)
	header.Set("Retry-After", "30")
	client := NewClient(Config{
		HTTPClient: &http.Client{Transport: respond(http.StatusTooManyRequests, "", header)},
	})
	_, err := client.FetchGames(context.Background())
	rl, ok := providers.AsRateLimitError(err)
	if !ok {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	if rl.RetryAfter != 30*time.Second {
		t.Fatalf("expected 30s retry-after, got %s", rl.RetryAfter)
	}
}

func TestFetchGamesMalformedEnvelope(t *testing.T) {
	client := NewClient(Config{
		HTTPClient: &http.Client{Transport: respond(http.StatusOK, `{"gamesByDate": []}`, nil)},
	})
	_, err := client.FetchGames(context.Background())
	if _, ok := providers.AsMalformedResponseError(err); !ok {
		t.Fatalf("expected malformed response error, got %v", err)
	}
}

func TestFetchGamesRespectsCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, scoreboardBody)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := NewClient(Config{URL: srv.URL})
	if _, err := client.FetchGames(ctx); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestClientName(t *testing.T) {
	if NewClient(Config{}).Name() != "nhle" {
		t.Fatalf("unexpected provider name")
	}
}

func TestParseRetryAfter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := parseRetryAfter("5", now); got != 5*time.Second {
		t.Fatalf("expected 5s, got %s", got)
	}
	date := now.Add(time.Minute).Format(http.TimeFormat)
	if got := parseRetryAfter(date, now); got != time.Minute {
		t.Fatalf("expected 1m, got %s", got)
	}
	if got := parseRetryAfter("soon", now); got != 0 {
		t.Fatalf("expected 0 for garbage, got %s", got)
	}
}
