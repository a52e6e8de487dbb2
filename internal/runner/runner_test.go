package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nhl-game-tracker/internal/cadence"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	"github.com/preston-bernstein/nhl-game-tracker/internal/metrics"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
	"github.com/preston-bernstein/nhl-game-tracker/internal/report"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
	"github.com/preston-bernstein/nhl-game-tracker/internal/teststubs"
	"github.com/preston-bernstein/nhl-game-tracker/internal/testutil"
)

const T int64 = 1699956000

type fixture struct {
	provider *teststubs.StubProvider
	blob     *teststubs.StubBlob
	out      *bytes.Buffer
	logs     *bytes.Buffer
	recorder *metrics.Recorder
	runner   *Runner
}

func newFixture(t *testing.T, now int64, prev *tracker.State) *fixture {
	t.Helper()
	f := &fixture{
		provider: &teststubs.StubProvider{},
		blob:     &teststubs.StubBlob{},
		out:      &bytes.Buffer{},
		recorder: metrics.NewRecorder(),
	}
	if prev != nil {
		data, err := json.Marshal(*prev)
		require.NoError(t, err)
		f.blob.Data = data
	}
	logger, logs := testutil.NewBufferLogger()
	f.logs = logs
	engine := cadence.NewEngine(f.provider, games.NewFavourites("TOR"), logger)
	f.runner = New(engine, statestore.New(f.blob, logger), logger,
		WithClock(testutil.UnixClock(now)),
		WithPrinter(report.New(f.out)),
		WithMetrics(f.recorder),
	)
	return f
}

func (f *fixture) stored(t *testing.T) tracker.State {
	t.Helper()
	var s tracker.State
	require.NoError(t, json.Unmarshal(f.blob.Stored(), &s))
	return s
}

func TestRunFirstInvocationPersistsRefresh(t *testing.T) {
	f := newFixture(t, T, nil)
	live := testutil.Scored(testutil.SampleGame("TOR", "MTL", games.StateLive, T-900), 1, 0)
	live.RawState = "LIVE"
	f.provider.Games = []games.Game{
		live,
		testutil.SampleGame("OTT", "TOR", games.StateFuture, T+7200),
	}

	res, err := f.runner.Run(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, cadence.ActionFullRefresh, res.Action)
	require.Len(t, res.Favourites, 2)

	saved := f.stored(t)
	require.Equal(t, T, saved.LastRunTimestamp)
	require.Equal(t, tracker.ModeWatchingLive, saved.CurrentMode)
	require.Equal(t, tracker.Timestamps{T + 7200}, saved.PendingStartTimestamps)

	require.Contains(t, f.out.String(), "OTT vs TOR - ")
	require.Contains(t, f.out.String(), "TOR: 1 - MTL: 0 (State: LIVE)")
	require.Contains(t, f.logs.String(), "run_id="+res.RunID)

	runs := f.recorder.Runs()
	require.Equal(t, 1, runs.Runs[string(cadence.ActionFullRefresh)])
	require.Equal(t, string(tracker.ModeWatchingLive), runs.LastMode)
	require.Equal(t, 1, runs.Transitions)
}

func TestRunIdleSkipWritesOnlyTimestamp(t *testing.T) {
	prev := tracker.State{LastRunTimestamp: T, CurrentMode: tracker.ModeNoGamesLive, PendingStartTimestamps: tracker.Timestamps{T + 3600}}
	f := newFixture(t, T+10, &prev)

	res, err := f.runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, cadence.ActionIdleSkip, res.Action)
	require.Zero(t, f.provider.Calls.Load())
	require.Zero(t, f.out.Len())

	saved := f.stored(t)
	require.Equal(t, T+10, saved.LastRunTimestamp)
	require.Equal(t, prev.PendingStartTimestamps, saved.PendingStartTimestamps)
	require.Equal(t, prev.CurrentMode, saved.CurrentMode)
}

func TestRunFetchFailureLeavesStateUntouched(t *testing.T) {
	prev := tracker.State{LastRunTimestamp: T, CurrentMode: tracker.ModeWatchingLive, PendingStartTimestamps: tracker.Timestamps{T + 3600}}
	f := newFixture(t, T+3600, &prev)
	before := append([]byte(nil), f.blob.Data...)
	f.provider.Err = &providers.NetworkError{Provider: "nhle", Err: errors.New("timeout")}

	res, err := f.runner.Run(context.Background())
	require.Error(t, err)
	_, ok := providers.AsNetworkError(err)
	require.True(t, ok)
	require.Equal(t, cadence.ActionPoll, res.Action)
	require.Zero(t, f.blob.Sets)
	require.Equal(t, before, f.blob.Stored())
	require.Equal(t, 1, f.recorder.Runs().Failures)
	require.Contains(t, f.logs.String(), "state left untouched")
}

func TestRunLoadFailureIsStoreError(t *testing.T) {
	f := newFixture(t, T, nil)
	f.blob.GetErr = errors.New("permission denied")

	_, err := f.runner.Run(context.Background())
	require.Error(t, err)
	sErr, ok := statestore.AsStoreError(err)
	require.True(t, ok)
	require.Equal(t, "load", sErr.Op)
	require.Zero(t, f.provider.Calls.Load())
}

func TestRunSaveFailureIsReported(t *testing.T) {
	f := newFixture(t, T, nil)
	f.blob.SetErr = errors.New("read-only file system")

	_, err := f.runner.Run(context.Background())
	require.Error(t, err)
	sErr, ok := statestore.AsStoreError(err)
	require.True(t, ok)
	require.Equal(t, "save", sErr.Op)
}

func TestRunCorruptStateStartsOver(t *testing.T) {
	f := newFixture(t, T+60, nil)
	f.blob.Data = []byte("{not json")

	res, err := f.runner.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, cadence.ActionFullRefresh, res.Action)
	require.Contains(t, f.logs.String(), "discarding unreadable tracker state")
}

func TestRunRejectsUnusableClock(t *testing.T) {
	f := newFixture(t, T, nil)
	f.runner.now = func() time.Time { return time.Time{} }

	_, err := f.runner.Run(context.Background())
	require.ErrorIs(t, err, ErrClockUnavailable)
	var tErr *TimeError
	require.ErrorAs(t, err, &tErr)
	require.Zero(t, f.blob.Sets)
}

func TestStatusAndReset(t *testing.T) {
	prev := tracker.State{LastRunTimestamp: T, CurrentMode: tracker.ModeWatchingLive, PendingStartTimestamps: tracker.Timestamps{T + 60}}
	f := newFixture(t, T, &prev)

	got, err := f.runner.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, prev.LastRunTimestamp, got.LastRunTimestamp)

	require.NoError(t, f.runner.Reset(context.Background()))
	saved := f.stored(t)
	require.False(t, saved.HasRun())
	require.Equal(t, tracker.ModeNoGamesLive, saved.CurrentMode)
	require.True(t, strings.Contains(f.logs.String(), "tracker state reset"))
}

func TestNewDefaultsWithoutOptions(t *testing.T) {
	r := New(nil, nil, nil, WithClock(nil), WithPrinter(nil))
	require.NotNil(t, r.now)
	require.NotNil(t, r.printer)
	require.NotEmpty(t, r.newID())
}
