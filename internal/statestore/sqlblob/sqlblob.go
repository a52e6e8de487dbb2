// Package sqlblob stores the tracker state as a single row in SQLite or Postgres.
package sqlblob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultKey = "tracker"
)

type dialect struct {
	schema string
	get    string
	upsert string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		schema: `CREATE TABLE IF NOT EXISTS tracker_state (
			key TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		get: `SELECT data FROM tracker_state WHERE key = ?`,
		upsert: `INSERT INTO tracker_state (key, data, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
	},
	DriverPostgres: {
		schema: `CREATE TABLE IF NOT EXISTS tracker_state (
			key TEXT PRIMARY KEY,
			data BYTEA NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		get: `SELECT data FROM tracker_state WHERE key = $1`,
		upsert: `INSERT INTO tracker_state (key, data, updated_at) VALUES ($1, $2, $3)
			ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
	},
}

// Blob is a statestore.BlobStore backed by one row of a SQL table.
type Blob struct {
	db      *sql.DB
	driver  string
	key     string
	dialect dialect
	now     func() time.Time
}

// Open connects with the given driver ("sqlite" or "postgres") and ensures the table exists.
// For sqlite the DSN is a file path or ":memory:".
func Open(ctx context.Context, driver, dsn, key string) (*Blob, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}
	if dsn == "" {
		return nil, errors.New("sql state store requires a DSN")
	}
	if key == "" {
		key = defaultKey
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// A single connection keeps ":memory:" databases alive and serializes writes.
		db.SetMaxOpenConns(1)
	}

	b := &Blob{db: db, driver: driver, key: key, dialect: d, now: time.Now}
	if _, err := db.ExecContext(ctx, d.schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return b, nil
}

// Backend names the store for logs.
func (b *Blob) Backend() string { return b.driver }

func (b *Blob) Get(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, b.dialect.get, b.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, statestore.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	return data, nil
}

func (b *Blob) Set(ctx context.Context, data []byte) error {
	if _, err := b.db.ExecContext(ctx, b.dialect.upsert, b.key, data, b.now().Unix()); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (b *Blob) Close() error {
	return b.db.Close()
}
