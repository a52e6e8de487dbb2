package app

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/nhl-game-tracker/internal/config"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore/natsblob"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore/redisblob"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore/sqlblob"
)

// openBlob connects the configured backend. The returned close function is never nil.
func openBlob(ctx context.Context, cfg config.StateConfig) (statestore.BlobStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.BackendFile, "":
		return statestore.NewFileBlob(cfg.Path), noop, nil
	case config.BackendMemory:
		return statestore.NewMemoryBlob(), noop, nil
	case config.BackendSQLite:
		b, err := sqlblob.Open(ctx, sqlblob.DriverSQLite, cfg.DSN, "")
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	case config.BackendPostgres:
		b, err := sqlblob.Open(ctx, sqlblob.DriverPostgres, cfg.DSN, "")
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	case config.BackendRedis:
		b, err := redisblob.Open(ctx, cfg.RedisURL, cfg.RedisKey)
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	case config.BackendNATS:
		b, err := natsblob.Open(ctx, cfg.NATSURL, cfg.NATSBucket, cfg.NATSKey)
		if err != nil {
			return nil, noop, err
		}
		return b, b.Close, nil
	default:
		return nil, noop, fmt.Errorf("unknown state backend %q", cfg.Backend)
	}
}
