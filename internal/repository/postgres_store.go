package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/port"
)

const (
	getSnapshotSQL    = `SELECT value FROM snapshots WHERE key = $1`
	upsertSnapshotSQL = `INSERT INTO snapshots (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteSnapshotSQL = `DELETE FROM snapshots WHERE key = $1`
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresStore struct {
	q querier
}

func NewPostgresStore(pool *pgxpool.Pool) port.KeyValueStore {
	return &postgresStore{q: pool}
}

func NewPostgresStoreWithTx(tx pgx.Tx) port.KeyValueStore {
	return &postgresStore{q: tx}
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, fmt.Errorf("key is empty")
	}

	var value []byte
	err := s.q.QueryRow(ctx, getSnapshotSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("key[%s]: %w", key, port.ErrKeyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("q.QueryRow: %w", err)
	}

	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := s.q.Exec(ctx, upsertSnapshotSQL, key, value); err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is empty")
	}

	if _, err := s.q.Exec(ctx, deleteSnapshotSQL, key); err != nil {
		return fmt.Errorf("q.Exec: %w", err)
	}

	return nil
}
