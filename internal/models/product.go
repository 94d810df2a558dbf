package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Price is a product price in currency units. Feed files are scraped and
// occasionally carry prices as strings ("1499.90") or garbage; anything
// that fails numeric parsing decodes to 0 instead of aborting the load.
type Price float64

// UnmarshalJSON accepts a JSON number or a numeric string.
func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			*p = 0
			return nil
		}
		s = strings.TrimSpace(raw)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*p = 0
		return nil
	}
	*p = Price(v)
	return nil
}

// Product is a catalog item. Immutable after load; Category is computed
// once by the classifier when the feed is read and never recomputed.
type Product struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	Price         Price    `json:"price"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	ImageURL      string   `json:"image_url,omitempty"`
	DetailImages  []string `json:"detail_images,omitempty"`
	ShippingLabel string   `json:"shipping_label,omitempty"`
	Category      string   `json:"category"`
}

// MainImage returns the first detail image, falling back to the large
// product image and then the thumbnail.
func (p *Product) MainImage() string {
	if len(p.DetailImages) > 0 {
		return p.DetailImages[0]
	}
	if p.ImageURL != "" {
		return p.ImageURL
	}
	return p.ThumbnailURL
}

// FeedProduct is the raw record shape of the catalog feed file.
type FeedProduct struct {
	SourceURL     string   `json:"source_url"`
	Description   string   `json:"description"`
	Price         Price    `json:"price"`
	ThumbnailURL  string   `json:"thumbnail_url"`
	ImageURL      string   `json:"image_url"`
	DetailImages  []string `json:"detail_images"`
	ShippingLabel string   `json:"shipping_label"`
}
