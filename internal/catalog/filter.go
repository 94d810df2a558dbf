package catalog

import (
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/techpazar/storefront/internal/models"
)

// Pipeline derives a filtered, sorted view from the full catalog. It is a
// pure function of (products, state) except for the deliberate shuffle in
// the default sort, whose rand source is injectable so tests can pin the
// permutation.
type Pipeline struct {
	// mu guards collator and rng, neither of which is safe for
	// concurrent use.
	mu       sync.Mutex
	collator *collate.Collator
	rng      *rand.Rand
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRand sets the rand source used by the default-sort shuffle.
func WithRand(rng *rand.Rand) Option {
	return func(p *Pipeline) { p.rng = rng }
}

// WithSeed derives a deterministic rand source from a seed.
func WithSeed(seed int64) Option {
	return func(p *Pipeline) { p.rng = rand.New(rand.NewSource(seed)) }
}

// NewPipeline builds a pipeline. Name sorts use Turkish collation: the
// listings are Turkish-market descriptions and dotted/dotless I must order
// correctly.
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		collator: collate.New(language.Turkish),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply filters by category then search term, then sorts. The returned
// slice is freshly allocated; the input is never reordered. An empty
// result is a valid outcome, not an error.
func (p *Pipeline) Apply(products []*models.Product, state models.FilterState) []*models.Product {
	view := make([]*models.Product, 0, len(products))

	filterByCategory := !strings.EqualFold(state.Category, models.CategoryAll)
	for _, prod := range products {
		if filterByCategory && !strings.EqualFold(prod.Category, state.Category) {
			continue
		}
		if state.Term != "" && !matchesTerm(prod, state.Term) {
			continue
		}
		view = append(view, prod)
	}

	switch state.Sort {
	case models.SortPriceAsc:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price < view[j].Price })
	case models.SortPriceDesc:
		sort.SliceStable(view, func(i, j int) bool { return view[i].Price > view[j].Price })
	case models.SortNameAsc:
		p.mu.Lock()
		sort.SliceStable(view, func(i, j int) bool {
			return p.collator.CompareString(view[i].Description, view[j].Description) < 0
		})
		p.mu.Unlock()
	case models.SortNameDesc:
		p.mu.Lock()
		sort.SliceStable(view, func(i, j int) bool {
			return p.collator.CompareString(view[i].Description, view[j].Description) > 0
		})
		p.mu.Unlock()
	default:
		// The default sort shuffles only on the unfiltered storefront so
		// returning visitors see different products; any filter or search
		// keeps the feed order.
		if state.IsBrowsingAll() {
			p.mu.Lock()
			p.rng.Shuffle(len(view), func(i, j int) {
				view[i], view[j] = view[j], view[i]
			})
			p.mu.Unlock()
		}
	}

	return view
}

// matchesTerm reports whether the normalized term occurs in the product's
// description or category label.
func matchesTerm(p *models.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.Category), term)
}
