package storage

import (
	"context"
	"sync"
	"time"

	"github.com/techpazar/storefront/internal/models"
)

// MemoryRepository is an in-process CartRepository for tests and local
// development. Snapshots are copied on the way in and out so callers never
// share slices with the store.
type MemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]memoryCart
}

type memoryCart struct {
	entries   []models.CartEntry
	updatedAt time.Time
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{carts: make(map[string]memoryCart)}
}

// Load returns a copy of the session's entries.
func (r *MemoryRepository) Load(ctx context.Context, sessionID string) ([]models.CartEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.carts[sessionID]
	if !ok {
		return nil, nil
	}
	entries := make([]models.CartEntry, len(c.entries))
	copy(entries, c.entries)
	return entries, nil
}

// Save stores a copy of the entries.
func (r *MemoryRepository) Save(ctx context.Context, sessionID string, entries []models.CartEntry) error {
	if len(entries) == 0 {
		return r.Delete(ctx, sessionID)
	}

	snapshot := make([]models.CartEntry, len(entries))
	copy(snapshot, entries)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts[sessionID] = memoryCart{entries: snapshot, updatedAt: time.Now()}
	return nil
}

// Delete removes the session's cart.
func (r *MemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}

// PurgeStale removes carts idle for longer than ttl.
func (r *MemoryRepository) PurgeStale(ctx context.Context, ttl time.Duration) (int, error) {
	cutoff := time.Now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	purged := 0
	for id, c := range r.carts {
		if c.updatedAt.Before(cutoff) {
			delete(r.carts, id)
			purged++
		}
	}
	return purged, nil
}

// Ping always succeeds.
func (r *MemoryRepository) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close() error {
	return nil
}
