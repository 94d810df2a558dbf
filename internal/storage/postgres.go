package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techpazar/storefront/internal/models"
)

// PostgresRepository implements CartRepository on a carts table holding one
// jsonb snapshot per session.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a pooled PostgreSQL cart repository.
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 25
	}
	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	} else {
		poolConfig.MinConns = 5
	}
	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Load reads the cart snapshot for a session.
func (r *PostgresRepository) Load(ctx context.Context, sessionID string) ([]models.CartEntry, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT entries FROM carts WHERE id = $1`, sessionID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return decodeEntries(sessionID, data), nil
}

// Save upserts the cart snapshot.
func (r *PostgresRepository) Save(ctx context.Context, sessionID string, entries []models.CartEntry) error {
	if len(entries) == 0 {
		return r.Delete(ctx, sessionID)
	}

	data, err := encodeEntries(entries)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO carts (id, entries, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE SET entries = EXCLUDED.entries, updated_at = NOW()
	`, sessionID, data)
	if err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart row, if present.
func (r *PostgresRepository) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, sessionID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// PurgeStale removes carts idle for longer than ttl.
func (r *PostgresRepository) PurgeStale(ctx context.Context, ttl time.Duration) (int, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM carts WHERE updated_at < NOW() - $1::interval`,
		fmt.Sprintf("%d seconds", int(ttl.Seconds())),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge stale carts: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// Ping checks database connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the connection pool.
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// Pool exposes the underlying pool for migrations.
func (r *PostgresRepository) Pool() *pgxpool.Pool {
	return r.pool
}
