// Package router resolves URL fragments into page intents. The fragment
// protocol is the storefront's complete navigable surface:
//
//	#/                      home, all products
//	#category/<name>        home, filtered to a category
//	#product/<id>           product detail
//	#cart                   cart
package router

import (
	"net/url"
	"strings"

	"github.com/techpazar/storefront/internal/models"
)

// Intent is the page a fragment resolves to.
type Intent string

const (
	IntentHome   Intent = "home"
	IntentDetail Intent = "detail"
	IntentCart   Intent = "cart"
)

// Route is the result of resolving a fragment.
type Route struct {
	Intent    Intent `json:"intent"`
	Category  string `json:"category,omitempty"`
	ProductID string `json:"product_id,omitempty"`
	// Normalized is set when the fragment was malformed and the route fell
	// back to the default home state. The caller should rewrite the visible
	// URL to Fragment() without triggering a new navigation event; Resolve
	// itself never re-enters.
	Normalized bool `json:"normalized,omitempty"`
}

// Resolve maps a fragment to a route. Malformed fragments (including
// escape-sequence errors) normalize to home with the All category.
func Resolve(fragment string) Route {
	frag := strings.TrimPrefix(fragment, "#")

	switch {
	case strings.HasPrefix(frag, "product/"):
		id, err := url.PathUnescape(strings.TrimPrefix(frag, "product/"))
		if err != nil || id == "" {
			return homeFallback()
		}
		return Route{Intent: IntentDetail, ProductID: id}

	case frag == "cart":
		return Route{Intent: IntentCart}

	case strings.HasPrefix(frag, "category/"):
		name, err := url.PathUnescape(strings.TrimPrefix(frag, "category/"))
		if err != nil || name == "" {
			return homeFallback()
		}
		return Route{Intent: IntentHome, Category: name}

	case frag == "" || frag == "/":
		return Route{Intent: IntentHome, Category: models.CategoryAll}

	default:
		return homeFallback()
	}
}

func homeFallback() Route {
	return Route{Intent: IntentHome, Category: models.CategoryAll, Normalized: true}
}

// Fragment renders the canonical fragment for the route.
func (r Route) Fragment() string {
	switch r.Intent {
	case IntentDetail:
		return "#product/" + url.PathEscape(r.ProductID)
	case IntentCart:
		return "#cart"
	default:
		if r.Category != "" && !strings.EqualFold(r.Category, models.CategoryAll) {
			return "#category/" + url.PathEscape(r.Category)
		}
		return "#/"
	}
}
