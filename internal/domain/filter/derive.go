// internal/domain/filter/derive.go
package filter

import (
	"cmp"
	"slices"
	"strings"

	"github.com/your-org/storefront/internal/domain/product"
)

// Predicate decides whether a product is kept
type Predicate func(product.Product) bool

// VisibleProducts derives the rendered product list: the optional scope is
// applied first, then opts, then a stable sort by sortBy. The input is not
// modified and an empty result is an empty, non-nil slice.
func VisibleProducts(products []product.Product, scope Predicate, opts Options, sortBy SortOption) []product.Product {
	out := make([]product.Product, 0, len(products))
	for _, p := range products {
		if scope != nil && !scope(p) {
			continue
		}
		if !Matches(p, opts) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, comparator(sortBy))
	return out
}

// Matches reports whether p satisfies every field of opts
func Matches(p product.Product, opts Options) bool {
	if len(opts.Categories) > 0 && !slices.Contains(opts.Categories, p.Category) {
		return false
	}
	if len(opts.Brands) > 0 && !slices.Contains(opts.Brands, p.Brand) {
		return false
	}
	if len(opts.Sizes) > 0 && !intersects(p.Sizes, opts.Sizes) {
		return false
	}
	if len(opts.Colors) > 0 && !intersects(p.ColorNames(), opts.Colors) {
		return false
	}
	return opts.PriceRange.Contains(p.Price)
}

func comparator(sortBy SortOption) func(a, b product.Product) int {
	switch sortBy {
	case SortPriceLowToHigh:
		return func(a, b product.Product) int { return a.Price.Cmp(b.Price) }
	case SortPriceHighToLow:
		return func(a, b product.Product) int { return b.Price.Cmp(a.Price) }
	case SortPopularity:
		return func(a, b product.Product) int { return cmp.Compare(b.ReviewCount(), a.ReviewCount()) }
	case SortRating:
		return func(a, b product.Product) int { return cmp.Compare(b.RatingValue(), a.RatingValue()) }
	default:
		return func(a, b product.Product) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
}

func intersects(have, want []string) bool {
	for _, v := range have {
		if slices.Contains(want, v) {
			return true
		}
	}
	return false
}

// InCategory scopes a listing to one category
func InCategory(category string) Predicate {
	return func(p product.Product) bool {
		return p.Category == category
	}
}

// MatchesSearch keeps products whose name, description, brand or tags contain
// query, ignoring case. An empty query yields a nil Predicate, which scopes
// nothing out.
func MatchesSearch(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	return func(p product.Product) bool {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			strings.Contains(strings.ToLower(p.Brand), q) {
			return true
		}
		return slices.ContainsFunc(p.Tags, func(tag string) bool {
			return strings.Contains(strings.ToLower(tag), q)
		})
	}
}

// All combines predicates with AND. Nil predicates are skipped; with none
// left the result is nil, meaning no scope.
func All(preds ...Predicate) Predicate {
	active := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		return nil
	}

	return func(p product.Product) bool {
		for _, pred := range active {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}
