// Package natsblob stores the tracker state in a NATS JetStream key-value bucket.
package natsblob

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
)

const (
	DefaultBucket = "nhl_game_tracker"
	DefaultKey    = "state"
)

// Blob is a statestore.BlobStore backed by a JetStream KV entry.
type Blob struct {
	conn *nats.Conn
	kv   jetstream.KeyValue
	key  string
}

// Open connects to NATS and gets or creates the bucket. Only the latest
// value is kept.
func Open(ctx context.Context, url, bucket, key string) (*Blob, error) {
	if bucket == "" {
		bucket = DefaultBucket
	}
	if key == "" {
		key = DefaultKey
	}

	conn, err := nats.Connect(url, nats.Name("nhl-game-tracker"))
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	kv, err := js.KeyValue(ctx, bucket)
	if errors.Is(err, jetstream.ErrBucketNotFound) {
		kv, err = js.CreateKeyValue(ctx, jetstream.KeyValueConfig{
			Bucket:      bucket,
			Description: "NHL game tracker state",
			History:     1,
		})
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open kv bucket %s: %w", bucket, err)
	}

	return &Blob{conn: conn, kv: kv, key: key}, nil
}

// Backend names the store for logs.
func (b *Blob) Backend() string { return "nats" }

func (b *Blob) Get(ctx context.Context) ([]byte, error) {
	entry, err := b.kv.Get(ctx, b.key)
	if errors.Is(err, jetstream.ErrKeyNotFound) {
		return nil, statestore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", b.key, err)
	}
	return entry.Value(), nil
}

func (b *Blob) Set(ctx context.Context, data []byte) error {
	if _, err := b.kv.Put(ctx, b.key, data); err != nil {
		return fmt.Errorf("put %s: %w", b.key, err)
	}
	return nil
}

// Close drains the connection.
func (b *Blob) Close() error {
	if b.conn == nil {
		return nil
	}
	return b.conn.Drain()
}
