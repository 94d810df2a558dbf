package models

// CartEntry is a product snapshot plus a quantity. Entries are independent
// copies of product data, so catalog changes after the fact do not affect
// items already in a cart. Quantity is always >= 1; a quantity reaching 0
// removes the entry entirely.
type CartEntry struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// CartSummary is the derived view of a cart used for the badge and the
// order summary panel.
type CartSummary struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
	// RemainingForFreeShipping is how much more the subtotal needs before
	// shipping becomes free; 0 once the threshold is passed.
	RemainingForFreeShipping float64 `json:"remaining_for_free_shipping"`
}

// AddItemRequest is the body for adding a product to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// AdjustItemRequest is the body for changing an entry's quantity.
type AdjustItemRequest struct {
	Delta int `json:"delta"`
}
