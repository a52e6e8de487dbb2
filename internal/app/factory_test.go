package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/nhl-game-tracker/internal/config"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers/fixture"
	"github.com/preston-bernstein/nhl-game-tracker/internal/providers/nhle"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore/sqlblob"
)

func TestSelectProvider(t *testing.T) {
	cfg := config.Defaults()
	require.IsType(t, &nhle.Client{}, selectProvider(cfg))

	cfg.Provider = config.ProviderFixture
	require.IsType(t, &fixture.Provider{}, selectProvider(cfg))
}

func TestProviderFactoryWrapsWithName(t *testing.T) {
	cfg := config.Defaults()
	cfg.Provider = config.ProviderFixture
	p := newProviderFactory(nil, nil).build(cfg)
	require.Equal(t, "fixture", providers.NameOf(p, ""))

	games, err := p.FetchGames(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, games)
}

func TestNormalizeProviderName(t *testing.T) {
	require.Equal(t, "nhle", normalizeProviderName("NHLE", nil))
	require.Equal(t, "fixture", normalizeProviderName("", fixture.New()))
	require.Equal(t, "provider", normalizeProviderName("", nil))
}

func TestOpenBlob(t *testing.T) {
	ctx := context.Background()

	blob, closeFn, err := openBlob(ctx, config.StateConfig{Backend: config.BackendFile, Path: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, err)
	require.IsType(t, &statestore.FileBlob{}, blob)
	_ = closeFn()

	blob, _, err = openBlob(ctx, config.StateConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	require.IsType(t, &statestore.MemoryBlob{}, blob)

	blob, closeFn, err = openBlob(ctx, config.StateConfig{Backend: config.BackendSQLite, DSN: filepath.Join(t.TempDir(), "s.db")})
	require.NoError(t, err)
	require.IsType(t, &sqlblob.Blob{}, blob)
	require.NoError(t, closeFn())

	_, closeFn, err = openBlob(ctx, config.StateConfig{Backend: "etcd"})
	require.Error(t, err)
	require.NotNil(t, closeFn, "expected non-nil close func on error")
}
