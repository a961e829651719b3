// Package sqlite provides a SQLite-backed KV for single-node deployments,
// the durable stand-in for browser local storage.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS storefront_state (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// KV persists state in a single SQLite table.
type KV struct {
	db     *sql.DB
	logger *log.Logger
}

// Open opens (or creates) the database at path and initializes the schema.
// WAL mode is enabled for concurrent readers.
func Open(path string, logger *log.Logger) (*KV, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_busy_timeout=5000"
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &KV{db: db, logger: logger}, nil
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM storefront_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Printf("sqlite kv: get key=%s error=%v", key, err)
		return nil, err
	}
	return []byte(value), nil
}

func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO storefront_state (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
`, key, string(value))
	if err != nil {
		s.logger.Printf("sqlite kv: set key=%s error=%v", key, err)
	}
	return err
}

func (s *KV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM storefront_state WHERE key = ?`, key)
	if err != nil {
		s.logger.Printf("sqlite kv: delete key=%s error=%v", key, err)
	}
	return err
}

// Ping verifies the database file is reachable.
func (s *KV) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying handle.
func (s *KV) Close() error {
	return s.db.Close()
}
