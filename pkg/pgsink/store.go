// Package pgsink loads seeded credentials and follow edges into PostgreSQL.
package pgsink

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store bulk-loads seed data using PostgreSQL COPY.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects, verifies the connection and creates the tables if needed.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// A seed run is a single writer.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// Truncate empties both seed tables.
func (s *Store) Truncate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE TABLE user_follows, user_credentials`); err != nil {
		return fmt.Errorf("failed to truncate seed tables: %w", err)
	}
	return nil
}

// LoadCredentials copies one user_credentials row per user in a single transaction.
func (s *Store) LoadCredentials(ctx context.Context, users []CredentialRecord) (int64, error) {
	return s.copy(ctx, credentialsTable, credentialColumns, CredentialRows(users))
}

// LoadFollows copies one user_follows row per edge in a single transaction.
func (s *Store) LoadFollows(ctx context.Context, edges []FollowRecord) (int64, error) {
	return s.copy(ctx, followsTable, followColumns, FollowRows(edges))
}

// Counts returns the row counts of user_credentials and user_follows.
func (s *Store) Counts(ctx context.Context) (credentials, follows int64, err error) {
	err = s.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM user_credentials), (SELECT COUNT(*) FROM user_follows)
	`).Scan(&credentials, &follows)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count seed rows: %w", err)
	}
	return credentials, follows, nil
}

func (s *Store) copy(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	var copied int64
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
		copied = n
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to copy into %s: %w", table, err)
	}
	return copied, nil
}
