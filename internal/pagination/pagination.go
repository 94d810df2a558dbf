// Package pagination slices filtered views into pages and computes the
// page-button layout the storefront renders.
package pagination

import "github.com/techpazar/storefront/internal/models"

// PageSize is the fixed number of products per page.
const PageSize = 12

// maxPlainButtons is the largest page count rendered without ellipses.
const maxPlainButtons = 7

// Slice returns the items of the given 1-based page, clipped to bounds.
// Pages beyond the last yield an empty slice.
func Slice(items []*models.Product, page, size int) []*models.Product {
	if page < 1 || size < 1 {
		return nil
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages returns the page count for n items, 0 when n is 0.
func TotalPages(n, size int) int {
	if n <= 0 || size < 1 {
		return 0
	}
	return (n + size - 1) / size
}

// Item is one slot in the page-button row: either a page number or an
// ellipsis collapsing a gap.
type Item struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Nav is a previous/next control. Disabled at the first/last page rather
// than omitted.
type Nav struct {
	Page     int  `json:"page,omitempty"`
	Disabled bool `json:"disabled"`
}

// Control is the complete pagination row. Empty Items means pagination is
// not rendered at all (zero or one page).
type Control struct {
	Prev  Nav    `json:"prev"`
	Next  Nav    `json:"next"`
	Items []Item `json:"items"`
}

// Layout computes the button row for the given current page. For more than
// seven pages it always shows the first and last page, a window of up to
// three consecutive pages centered on the current one, and single ellipses
// for the gaps, never duplicating numbers or placing adjacent ellipses.
func Layout(current, total int) Control {
	if total <= 1 {
		return Control{Prev: Nav{Disabled: true}, Next: Nav{Disabled: true}}
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	var pages []int
	if total <= maxPlainButtons {
		for i := 1; i <= total; i++ {
			pages = append(pages, i)
		}
	} else {
		pages = append(pages, 1)
		lo := current - 1
		if lo < 2 {
			lo = 2
		}
		hi := current + 1
		if hi > total-1 {
			hi = total - 1
		}
		for i := lo; i <= hi; i++ {
			pages = append(pages, i)
		}
		pages = append(pages, total)
		pages = dedupeSorted(pages)
	}

	ctrl := Control{
		Prev: Nav{Page: current - 1, Disabled: current <= 1},
		Next: Nav{Page: current + 1, Disabled: current >= total},
	}
	if ctrl.Prev.Disabled {
		ctrl.Prev.Page = 0
	}
	if ctrl.Next.Disabled {
		ctrl.Next.Page = 0
	}

	prev := 0
	for _, page := range pages {
		if prev+1 < page {
			ctrl.Items = append(ctrl.Items, Item{Ellipsis: true})
		}
		ctrl.Items = append(ctrl.Items, Item{Page: page, Current: page == current})
		prev = page
	}
	return ctrl
}

// dedupeSorted removes duplicates from an already ascending page list.
// The window construction keeps the list sorted; only the boundaries can
// collide with it.
func dedupeSorted(pages []int) []int {
	out := pages[:0]
	last := 0
	for _, p := range pages {
		if p != last {
			out = append(out, p)
			last = p
		}
	}
	return out
}
