// Package redisblob stores the tracker state under a single Redis key.
package redisblob

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
)

// DefaultKey is used when no key is configured.
const DefaultKey = "nhl-game-tracker:state"

// Blob is a statestore.BlobStore backed by Redis GET/SET.
type Blob struct {
	client *redis.Client
	key    string
}

// Open parses a redis:// URL, connects and verifies the connection.
func Open(ctx context.Context, url, key string) (*Blob, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return New(client, key), nil
}

// New wraps an existing client.
func New(client *redis.Client, key string) *Blob {
	if key == "" {
		key = DefaultKey
	}
	return &Blob{client: client, key: key}
}

// Backend names the store for logs.
func (b *Blob) Backend() string { return "redis" }

func (b *Blob) Get(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, statestore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", b.key, err)
	}
	return data, nil
}

// Set stores the state without expiry.
func (b *Blob) Set(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", b.key, err)
	}
	return nil
}

// Close releases the client.
func (b *Blob) Close() error {
	return b.client.Close()
}
