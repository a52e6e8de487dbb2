package sqlblob

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
)

func TestSQLiteBlobMissingIsNotFound(t *testing.T) {
	blob, err := Open(context.Background(), DriverSQLite, ":memory:", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer blob.Close()

	if _, err := blob.Get(context.Background()); !errors.Is(err, statestore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if blob.Backend() != "sqlite" {
		t.Fatalf("expected sqlite backend, got %s", blob.Backend())
	}
}

func TestSQLiteBlobUpsertsSingleRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	blob, err := Open(context.Background(), DriverSQLite, path, "tracker")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer blob.Close()

	ctx := context.Background()
	for _, v := range []string{"one", "two"} {
		if err := blob.Set(ctx, []byte(v)); err != nil {
			t.Fatalf("set %s: %v", v, err)
		}
	}

	got, err := blob.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "two" {
		t.Fatalf("expected latest value, got %q", got)
	}

	var rows int
	if err := blob.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tracker_state").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected one row, got %d", rows)
	}
}

func TestSQLiteBlobWorksBehindStore(t *testing.T) {
	blob, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "s.db"), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer blob.Close()

	store := statestore.New(blob, nil)
	want := tracker.State{LastRunTimestamp: 42, CurrentMode: tracker.ModeWatchingLive, PendingStartTimestamps: tracker.Timestamps{100}}
	if err := store.Save(context.Background(), want); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LastRunTimestamp != 42 || got.CurrentMode != tracker.ModeWatchingLive {
		t.Fatalf("unexpected state %+v", got)
	}
	if len(got.PendingStartTimestamps) != 1 || got.PendingStartTimestamps[0] != 100 {
		t.Fatalf("unexpected pending %v", got.PendingStartTimestamps)
	}
}

func TestOpenRejectsBadInput(t *testing.T) {
	if _, err := Open(context.Background(), "mysql", "dsn", ""); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
	if _, err := Open(context.Background(), DriverSQLite, "", ""); err == nil {
		t.Fatalf("expected empty dsn error")
	}
}
