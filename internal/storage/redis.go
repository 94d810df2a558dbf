package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/techpazar/storefront/internal/models"
)

// keyPrefix namespaces cart keys in a shared Redis instance.
const keyPrefix = "cart:"

// RedisRepository implements CartRepository on a single Redis key per cart.
// Expiry is native: every save refreshes the key TTL, so PurgeStale has
// nothing to do.
type RedisRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRepository connects to Redis and verifies connectivity.
func NewRedisRepository(address, password string, db int, ttl time.Duration) (*RedisRepository, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRepository{client: client, ttl: ttl}, nil
}

func cartKey(sessionID string) string {
	return keyPrefix + sessionID
}

// Load reads the cart snapshot for a session.
func (r *RedisRepository) Load(ctx context.Context, sessionID string) ([]models.CartEntry, error) {
	data, err := r.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return decodeEntries(sessionID, data), nil
}

// Save overwrites the cart snapshot and refreshes its TTL.
func (r *RedisRepository) Save(ctx context.Context, sessionID string, entries []models.CartEntry) error {
	if len(entries) == 0 {
		return r.Delete(ctx, sessionID)
	}

	data, err := encodeEntries(entries)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := r.client.Set(ctx, cartKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Delete removes the cart key.
func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

// PurgeStale is a no-op: redis expires cart keys on its own.
func (r *RedisRepository) PurgeStale(ctx context.Context, ttl time.Duration) (int, error) {
	return 0, nil
}

// Ping verifies Redis connectivity.
func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisRepository) Close() error {
	return r.client.Close()
}
