// Package postgres provides a Postgres-backed KV for server deployments.
// Schema lives in internal/migrate.
package postgres

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KV persists state in the storefront_state table.
type KV struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// New wraps an existing connection pool.
func New(pool *pgxpool.Pool, logger *log.Logger) *KV {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &KV{pool: pool, logger: logger}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM storefront_state WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		s.logger.Printf("postgres kv: get key=%s error=%v", key, err)
		return nil, err
	}
	return value, nil
}

func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.pool.Exec(ctx, `
INSERT INTO storefront_state (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
`, key, value)
	if err != nil {
		s.logger.Printf("postgres kv: set key=%s error=%v", key, err)
	}
	return err
}

func (s *KV) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM storefront_state WHERE key = $1`, key)
	if err != nil {
		s.logger.Printf("postgres kv: delete key=%s error=%v", key, err)
	}
	return err
}
