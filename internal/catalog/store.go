// Package catalog holds the full product list, loaded once at startup, and
// the filter/sort pipeline that derives views from it.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/techpazar/storefront/internal/classifier"
	"github.com/techpazar/storefront/internal/models"
)

// ErrNotFound is returned when a product id is not in the catalog.
var ErrNotFound = errors.New("product not found")

// idMarker separates the slug from the product id in feed source URLs.
const idMarker = "product-"

// Store owns the loaded product list. Products are immutable after load;
// the filtered view is always derived, never stored here.
type Store struct {
	products []*models.Product
	byID     map[string]*models.Product
}

// NewStore builds a store from already-classified products, in feed order.
func NewStore(products []*models.Product) *Store {
	s := &Store{
		products: products,
		byID:     make(map[string]*models.Product, len(products)),
	}
	for _, p := range products {
		s.byID[p.ID] = p
	}
	return s
}

// Load reads the catalog feed, derives ids, classifies every product and
// returns the populated store. A missing or malformed feed is fatal;
// there is no partial catalog.
func Load(path string, c *classifier.Classifier) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog feed: %w", err)
	}

	var feed []models.FeedProduct
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse catalog feed: %w", err)
	}

	s := &Store{
		products: make([]*models.Product, 0, len(feed)),
		byID:     make(map[string]*models.Product, len(feed)),
	}

	for _, fp := range feed {
		p := &models.Product{
			ID:            ProductIDFromSource(fp.SourceURL),
			Description:   fp.Description,
			Price:         fp.Price,
			ThumbnailURL:  fp.ThumbnailURL,
			ImageURL:      fp.ImageURL,
			DetailImages:  fp.DetailImages,
			ShippingLabel: fp.ShippingLabel,
			Category:      c.Classify(fp.Description),
		}
		if _, dup := s.byID[p.ID]; dup {
			slog.Warn("duplicate product id in feed", "id", p.ID, "source_url", fp.SourceURL)
		}
		s.products = append(s.products, p)
		s.byID[p.ID] = p
	}

	slog.Info("catalog loaded", "path", path, "count", len(s.products))
	return s, nil
}

// ProductIDFromSource derives a product id from the feed's source URL:
// the last path segment after the "product-" marker, or the last path
// segment overall when the marker is absent.
func ProductIDFromSource(sourceURL string) string {
	if strings.Contains(sourceURL, idMarker) {
		parts := strings.Split(sourceURL, idMarker)
		return parts[len(parts)-1]
	}
	parts := strings.Split(sourceURL, "/")
	return parts[len(parts)-1]
}

// Products returns the full list in feed order. Callers must not mutate it.
func (s *Store) Products() []*models.Product {
	return s.products
}

// Len returns the catalog size.
func (s *Store) Len() int {
	return len(s.products)
}

// Get returns the product with the given id.
func (s *Store) Get(id string) (*models.Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Featured returns the first n products of a category in feed order, for
// the home page's promotional block.
func (s *Store) Featured(category string, n int) []*models.Product {
	var out []*models.Product
	for _, p := range s.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
			if len(out) == n {
				break
			}
		}
	}
	return out
}
