package cart

import (
	"context"
	"testing"
	"time"

	"github.com/techpazar/storefront/internal/catalog"
	"github.com/techpazar/storefront/internal/models"
	"github.com/techpazar/storefront/internal/storage"
)

func testStore() (*Store, *storage.MemoryRepository) {
	cat := catalog.NewStore([]*models.Product{
		{ID: "gpu-1", Description: "GeForce RTX 4070", Price: 300, Category: models.CategoryGraphicsCard},
		{ID: "cpu-1", Description: "Ryzen 7 5800X", Price: 250, Category: models.CategoryProcessor},
		{ID: "mou-1", Description: "Wireless mouse", Price: 100, Category: models.CategoryMouse},
	})
	repo := storage.NewMemoryRepository()
	return NewStore(cat, repo), repo
}

func quantityOf(entries []models.CartEntry, productID string) int {
	for _, e := range entries {
		if e.Product.ID == productID {
			return e.Quantity
		}
	}
	return 0
}

func TestAdd(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	entries, err := store.Add(ctx, "s1", "gpu-1")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Quantity != 1 {
		t.Fatalf("after first add: %+v", entries)
	}

	// Adding the same product again increments the quantity instead of
	// appending a second entry.
	entries, err = store.Add(ctx, "s1", "gpu-1")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Quantity != 2 {
		t.Fatalf("after second add: %+v", entries)
	}

	// The entry is a snapshot of the catalog product.
	if entries[0].Product.Price != 300 {
		t.Errorf("entry price = %v, want 300", entries[0].Product.Price)
	}
}

func TestAddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	if _, err := store.Add(ctx, "s1", "gpu-1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	entries, err := store.Add(ctx, "s1", "ghost")
	if err != nil {
		t.Fatalf("Add of unknown product should not error: %v", err)
	}
	if len(entries) != 1 || entries[0].Product.ID != "gpu-1" {
		t.Errorf("unknown product changed the cart: %+v", entries)
	}
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	store.Add(ctx, "s1", "gpu-1")
	store.Add(ctx, "s1", "cpu-1")

	entries, err := store.Remove(ctx, "s1", "gpu-1")
	if err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Product.ID != "cpu-1" {
		t.Fatalf("after remove: %+v", entries)
	}

	// Removing an absent product leaves the cart unchanged.
	entries, err = store.Remove(ctx, "s1", "ghost")
	if err != nil {
		t.Fatalf("Remove of absent product should not error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("absent remove changed the cart: %+v", entries)
	}
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	store.Add(ctx, "s1", "gpu-1")

	entries, err := store.Adjust(ctx, "s1", "gpu-1", 2)
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if quantityOf(entries, "gpu-1") != 3 {
		t.Fatalf("after +2: %+v", entries)
	}

	entries, err = store.Adjust(ctx, "s1", "gpu-1", -1)
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if quantityOf(entries, "gpu-1") != 2 {
		t.Fatalf("after -1: %+v", entries)
	}

	// An adjustment for a product not in the cart is a no-op.
	entries, err = store.Adjust(ctx, "s1", "ghost", 1)
	if err != nil {
		t.Fatalf("Adjust of absent product should not error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("absent adjust changed the cart: %+v", entries)
	}
}

func TestAdjustToZeroRemoves(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	store.Add(ctx, "s1", "gpu-1")
	store.Add(ctx, "s1", "cpu-1")

	entries, err := store.Adjust(ctx, "s1", "gpu-1", -1)
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if quantityOf(entries, "gpu-1") != 0 {
		t.Errorf("entry survived dropping to zero: %+v", entries)
	}
	if quantityOf(entries, "cpu-1") != 1 {
		t.Errorf("unrelated entry affected: %+v", entries)
	}

	// A large negative delta also removes rather than going negative.
	store.Add(ctx, "s1", "gpu-1")
	entries, err = store.Adjust(ctx, "s1", "gpu-1", -5)
	if err != nil {
		t.Fatalf("Adjust failed: %v", err)
	}
	if quantityOf(entries, "gpu-1") != 0 {
		t.Errorf("entry survived a large negative delta: %+v", entries)
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	store.Add(ctx, "s1", "gpu-1")
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	entries, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("cart not empty after clear: %+v", entries)
	}
}

func TestSessionIsolation(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	store.Add(ctx, "s1", "gpu-1")

	entries, err := store.Get(ctx, "s2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("s2 sees s1's cart: %+v", entries)
	}
}

func TestMutationsPersist(t *testing.T) {
	ctx := context.Background()
	store, repo := testStore()

	store.Add(ctx, "s1", "gpu-1")
	store.Add(ctx, "s1", "gpu-1")

	entries, err := repo.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("repo.Load failed: %v", err)
	}
	if len(entries) != 1 || entries[0].Quantity != 2 {
		t.Errorf("persisted snapshot = %+v", entries)
	}
}

func TestCheckoutTotals(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	// Two graphics cards at 300 plus one processor at 250: subtotal 850,
	// strictly above the threshold, so shipping is free.
	store.Add(ctx, "s1", "gpu-1")
	store.Add(ctx, "s1", "gpu-1")
	entries, err := store.Add(ctx, "s1", "cpu-1")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	summary := Summarize(entries)
	if summary.ItemCount != 3 {
		t.Errorf("ItemCount = %d, want 3", summary.ItemCount)
	}
	if summary.Subtotal != 850 {
		t.Errorf("Subtotal = %v, want 850", summary.Subtotal)
	}
	if summary.Shipping != 0 {
		t.Errorf("Shipping = %v, want 0", summary.Shipping)
	}
	if summary.Total != 850 {
		t.Errorf("Total = %v, want 850", summary.Total)
	}
	if summary.RemainingForFreeShipping != 0 {
		t.Errorf("RemainingForFreeShipping = %v, want 0", summary.RemainingForFreeShipping)
	}
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		subtotal float64
		want     float64
	}{
		{0, FlatShippingFee},
		{100, FlatShippingFee},
		// Exactly at the threshold still pays; free shipping needs strictly
		// more.
		{500, FlatShippingFee},
		{500.01, 0},
		{850, 0},
	}
	for _, tt := range tests {
		if got := ShippingCost(tt.subtotal); got != tt.want {
			t.Errorf("ShippingCost(%v) = %v, want %v", tt.subtotal, got, tt.want)
		}
	}
}

func TestSummarizeRemaining(t *testing.T) {
	entries := []models.CartEntry{
		{Product: models.Product{ID: "mou-1", Price: 100}, Quantity: 1},
	}

	summary := Summarize(entries)
	if summary.Subtotal != 100 {
		t.Errorf("Subtotal = %v, want 100", summary.Subtotal)
	}
	if summary.Shipping != FlatShippingFee {
		t.Errorf("Shipping = %v, want %v", summary.Shipping, FlatShippingFee)
	}
	if summary.Total != 100+FlatShippingFee {
		t.Errorf("Total = %v, want %v", summary.Total, 100+FlatShippingFee)
	}
	if summary.RemainingForFreeShipping != 400 {
		t.Errorf("RemainingForFreeShipping = %v, want 400", summary.RemainingForFreeShipping)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.ItemCount != 0 || summary.Subtotal != 0 {
		t.Errorf("empty summary = %+v", summary)
	}
	if summary.Shipping != FlatShippingFee {
		t.Errorf("empty cart shipping = %v, want flat fee", summary.Shipping)
	}
}

func TestWatch(t *testing.T) {
	ctx := context.Background()
	store, _ := testStore()

	updates := store.Subscribe("s1")
	defer store.Unsubscribe("s1", updates)

	if _, err := store.Add(ctx, "s1", "gpu-1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	select {
	case summary := <-updates:
		if summary.ItemCount != 1 {
			t.Errorf("pushed summary ItemCount = %d, want 1", summary.ItemCount)
		}
	case <-time.After(time.Second):
		t.Fatal("no summary pushed after Add")
	}

	// Mutations in other sessions do not reach this subscriber.
	if _, err := store.Add(ctx, "s2", "cpu-1"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	select {
	case summary := <-updates:
		t.Errorf("received another session's update: %+v", summary)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	store, _ := testStore()

	updates := store.Subscribe("s1")
	store.Unsubscribe("s1", updates)

	if _, ok := <-updates; ok {
		t.Error("channel still open after Unsubscribe")
	}
}
