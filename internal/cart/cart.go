// Package cart implements the shopping cart state machine. Entries are
// product snapshots with a quantity; every mutation persists the full cart
// synchronously before returning, so derived state is never stale across
// an event boundary.
package cart

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/techpazar/storefront/internal/catalog"
	"github.com/techpazar/storefront/internal/models"
	"github.com/techpazar/storefront/internal/storage"
)

// Shipping pricing: free above the threshold (strictly above), flat fee
// otherwise.
const (
	FreeShippingThreshold = 500.0
	FlatShippingFee       = 49.90
)

// Store manages session carts over a repository, using the catalog for
// product lookups on add.
type Store struct {
	catalog *catalog.Store
	repo    storage.CartRepository

	mu          sync.Mutex
	subscribers map[string]map[chan models.CartSummary]struct{}
}

// NewStore creates a cart store.
func NewStore(cat *catalog.Store, repo storage.CartRepository) *Store {
	return &Store{
		catalog:     cat,
		repo:        repo,
		subscribers: make(map[string]map[chan models.CartSummary]struct{}),
	}
}

// Get returns the session's entries. Absent or corrupted persistence is an
// empty cart, never an error surfaced to the shopper.
func (s *Store) Get(ctx context.Context, sessionID string) ([]models.CartEntry, error) {
	entries, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return entries, nil
}

// Add puts one unit of the product in the cart. An unknown product id is a
// silent no-op. An existing entry has its quantity incremented; otherwise a
// new entry with quantity 1 is appended.
func (s *Store) Add(ctx context.Context, sessionID, productID string) ([]models.CartEntry, error) {
	product, err := s.catalog.Get(productID)
	if err != nil {
		slog.Debug("add to cart ignored for unknown product", "product_id", productID)
		return s.Get(ctx, sessionID)
	}

	entries, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range entries {
		if entries[i].Product.ID == productID {
			entries[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, models.CartEntry{Product: *product, Quantity: 1})
	}

	return s.persist(ctx, sessionID, entries)
}

// Remove deletes the entry with the given product id. Removing an absent id
// leaves the cart unchanged.
func (s *Store) Remove(ctx context.Context, sessionID, productID string) ([]models.CartEntry, error) {
	entries, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.Product.ID != productID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return entries, nil
	}

	return s.persist(ctx, sessionID, kept)
}

// Adjust changes an entry's quantity by delta. An absent entry is a no-op;
// a resulting quantity of zero or below removes the entry entirely.
func (s *Store) Adjust(ctx context.Context, sessionID, productID string, delta int) ([]models.CartEntry, error) {
	entries, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if entries[i].Product.ID != productID {
			continue
		}
		entries[i].Quantity += delta
		if entries[i].Quantity <= 0 {
			return s.Remove(ctx, sessionID, productID)
		}
		return s.persist(ctx, sessionID, entries)
	}

	return entries, nil
}

// Clear empties the session's cart.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	s.notify(sessionID, Summarize(nil))
	return nil
}

// persist writes the snapshot and notifies watchers.
func (s *Store) persist(ctx context.Context, sessionID string, entries []models.CartEntry) ([]models.CartEntry, error) {
	if err := s.repo.Save(ctx, sessionID, entries); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	s.notify(sessionID, Summarize(entries))
	return entries, nil
}

// ItemCount sums quantities across entries. This is the badge count, not
// the entry count.
func ItemCount(entries []models.CartEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Quantity
	}
	return total
}

// Subtotal sums price times quantity across entries.
func Subtotal(entries []models.CartEntry) float64 {
	total := 0.0
	for _, e := range entries {
		total += float64(e.Product.Price) * float64(e.Quantity)
	}
	return total
}

// ShippingCost is zero when the subtotal is strictly above the free
// shipping threshold, else the flat fee. A subtotal of exactly 500 pays.
func ShippingCost(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}

// Summarize derives the badge and order-summary numbers for a cart.
func Summarize(entries []models.CartEntry) models.CartSummary {
	subtotal := Subtotal(entries)
	shipping := ShippingCost(subtotal)

	remaining := 0.0
	if subtotal <= FreeShippingThreshold {
		remaining = FreeShippingThreshold - subtotal
	}

	return models.CartSummary{
		ItemCount:                ItemCount(entries),
		Subtotal:                 subtotal,
		Shipping:                 shipping,
		Total:                    subtotal + shipping,
		RemainingForFreeShipping: remaining,
	}
}
