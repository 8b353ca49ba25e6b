// internal/domain/filter/facets.go
package filter

import (
	"slices"

	"github.com/your-org/storefront/internal/domain/product"
)

// FacetSet lists the distinct values a filter sidebar can offer
type FacetSet struct {
	Categories []string        `json:"categories"`
	Brands     []string        `json:"brands"`
	Sizes      []string        `json:"sizes"`
	Colors     []product.Color `json:"colors"`
}

// Facets collects distinct categories, brands, sizes and colours from
// products in first-seen order. Colours are distinct by name.
func Facets(products []product.Product) FacetSet {
	f := FacetSet{
		Categories: []string{},
		Brands:     []string{},
		Sizes:      []string{},
		Colors:     []product.Color{},
	}

	for _, p := range products {
		f.Categories = appendUnique(f.Categories, p.Category)
		f.Brands = appendUnique(f.Brands, p.Brand)
		for _, size := range p.Sizes {
			f.Sizes = appendUnique(f.Sizes, size)
		}
		for _, c := range p.Colors {
			if !slices.ContainsFunc(f.Colors, func(seen product.Color) bool { return seen.Name == c.Name }) {
				f.Colors = append(f.Colors, c)
			}
		}
	}

	return f
}

func appendUnique(values []string, v string) []string {
	if v == "" || slices.Contains(values, v) {
		return values
	}
	return append(values, v)
}
