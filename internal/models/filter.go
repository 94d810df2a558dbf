package models

import "strings"

// SortMode selects the ordering applied to the filtered view.
type SortMode string

const (
	SortDefault   SortMode = "default"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortNameAsc   SortMode = "name-asc"
	SortNameDesc  SortMode = "name-desc"
)

// ParseSortMode maps a query value onto a SortMode, falling back to default.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return SortMode(s)
	default:
		return SortDefault
	}
}

// FilterState is the tuple driving the filtered view. Term is always stored
// lowercased and trimmed; build states through NewFilterState.
type FilterState struct {
	Category string   `json:"category"`
	Term     string   `json:"term"`
	Sort     SortMode `json:"sort"`
}

// NewFilterState normalizes the inputs into a FilterState.
func NewFilterState(category, term string, sort SortMode) FilterState {
	if category == "" {
		category = CategoryAll
	}
	return FilterState{
		Category: category,
		Term:     NormalizeTerm(term),
		Sort:     sort,
	}
}

// NormalizeTerm lowercases and trims a search term.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// IsBrowsingAll reports whether the state shows the unfiltered storefront,
// which is when the featured sections are visible and the default sort
// shuffles.
func (f FilterState) IsBrowsingAll() bool {
	return strings.EqualFold(f.Category, CategoryAll) && f.Term == ""
}
