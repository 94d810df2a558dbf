// Package storage persists carts as full-snapshot blobs keyed by session
// id. Carts are small, so every mutation overwrites the whole entry list.
package storage

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/techpazar/storefront/internal/models"
)

// CartRepository defines the interface for cart persistence.
type CartRepository interface {
	// Load returns the entries for a session. An absent cart is (nil, nil);
	// a corrupted snapshot is treated the same way, never an error.
	Load(ctx context.Context, sessionID string) ([]models.CartEntry, error)

	// Save overwrites the session's cart with the given entries. Saving an
	// empty list deletes the cart.
	Save(ctx context.Context, sessionID string, entries []models.CartEntry) error

	// Delete removes the session's cart, if present.
	Delete(ctx context.Context, sessionID string) error

	// PurgeStale removes carts that have not been written for longer than
	// ttl. Backends with native expiry may report zero.
	PurgeStale(ctx context.Context, ttl time.Duration) (int, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}

// encodeEntries serializes a cart snapshot.
func encodeEntries(entries []models.CartEntry) ([]byte, error) {
	return json.Marshal(entries)
}

// decodeEntries deserializes a cart snapshot. A corrupted payload is logged
// and treated as an empty cart rather than surfaced as an error.
func decodeEntries(sessionID string, data []byte) []models.CartEntry {
	if len(data) == 0 {
		return nil
	}
	var entries []models.CartEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		slog.Warn("discarding corrupted cart snapshot", "session_id", sessionID, "error", err)
		return nil
	}
	return entries
}
