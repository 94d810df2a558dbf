// Package cleanup periodically purges carts that have been abandoned for
// longer than the configured TTL.
package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/techpazar/storefront/internal/storage"
)

// Cleaner runs the stale-cart purge on an interval.
type Cleaner struct {
	repo     storage.CartRepository
	ttl      time.Duration
	interval time.Duration
}

// NewCleaner creates a cleanup worker.
func NewCleaner(repo storage.CartRepository, ttl, interval time.Duration) *Cleaner {
	if interval <= 0 {
		interval = 1 * time.Hour
	}
	return &Cleaner{repo: repo, ttl: ttl, interval: interval}
}

// Start begins the worker in a goroutine; it stops when ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Cleaner) run(ctx context.Context) {
	slog.Info("cart cleanup worker started", "interval", c.interval, "ttl", c.ttl)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.purge(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("cart cleanup worker stopped")
			return
		case <-ticker.C:
			c.purge(ctx)
		}
	}
}

func (c *Cleaner) purge(ctx context.Context) {
	purged, err := c.repo.PurgeStale(ctx, c.ttl)
	if err != nil {
		slog.Error("failed to purge stale carts", "error", err)
		return
	}
	if purged > 0 {
		slog.Info("stale carts purged", "count", purged)
	}
}
