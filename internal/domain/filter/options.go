// internal/domain/filter/options.go
package filter

import (
	"errors"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// ErrInvalidSortOption is returned for an unknown sort option
var ErrInvalidSortOption = errors.New("invalid sort option")

// SortOption selects the order of the visible product list
type SortOption string

const (
	SortNewest         SortOption = "newest"
	SortPriceLowToHigh SortOption = "price-low-to-high"
	SortPriceHighToLow SortOption = "price-high-to-low"
	SortPopularity     SortOption = "popularity"
	SortRating         SortOption = "rating"

	DefaultSortOption = SortNewest
)

const defaultMaxPrice = 1000

// SortOptions lists every option in menu order
var SortOptions = []SortOption{SortNewest, SortPriceLowToHigh, SortPriceHighToLow, SortPopularity, SortRating}

var sortLabels = map[SortOption]string{
	SortNewest:         "Newest",
	SortPriceLowToHigh: "Price: Low to High",
	SortPriceHighToLow: "Price: High to Low",
	SortPopularity:     "Popularity",
	SortRating:         "Average Rating",
}

// ParseSortOption validates s as a SortOption
func ParseSortOption(s string) (SortOption, error) {
	opt := SortOption(s)
	if !slices.Contains(SortOptions, opt) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortOption, s)
	}
	return opt, nil
}

// Label returns the menu label of the option
func (o SortOption) Label() string {
	if l, ok := sortLabels[o]; ok {
		return l
	}
	return sortLabels[DefaultSortOption]
}

// PriceRange is a closed interval [Min, Max]
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// Contains reports whether price lies within the range, both ends inclusive
func (r PriceRange) Contains(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(r.Min) && price.LessThanOrEqual(r.Max)
}

// Options are the user-chosen product filters. Each set is OR within the
// field and AND across fields; an empty set places no restriction.
type Options struct {
	Categories []string   `json:"categories"`
	PriceRange PriceRange `json:"price_range"`
	Brands     []string   `json:"brands"`
	Sizes      []string   `json:"sizes"`
	Colors     []string   `json:"colors"`
}

// DefaultOptions returns empty sets and a [0, 1000] price range
func DefaultOptions() Options {
	return Options{
		Categories: []string{},
		PriceRange: PriceRange{Min: decimal.Zero, Max: decimal.NewFromInt(defaultMaxPrice)},
		Brands:     []string{},
		Sizes:      []string{},
		Colors:     []string{},
	}
}

func (o Options) clone() Options {
	o.Categories = cloneSet(o.Categories)
	o.Brands = cloneSet(o.Brands)
	o.Sizes = cloneSet(o.Sizes)
	o.Colors = cloneSet(o.Colors)
	return o
}

// Patch is a partial update of Options. Nil fields are left unchanged.
type Patch struct {
	Categories *[]string   `json:"categories"`
	PriceRange *PriceRange `json:"price_range"`
	Brands     *[]string   `json:"brands"`
	Sizes      *[]string   `json:"sizes"`
	Colors     *[]string   `json:"colors"`
}

// apply shallow-merges the patch over o
func (p Patch) apply(o Options) Options {
	if p.Categories != nil {
		o.Categories = cloneSet(*p.Categories)
	}
	if p.PriceRange != nil {
		o.PriceRange = *p.PriceRange
	}
	if p.Brands != nil {
		o.Brands = cloneSet(*p.Brands)
	}
	if p.Sizes != nil {
		o.Sizes = cloneSet(*p.Sizes)
	}
	if p.Colors != nil {
		o.Colors = cloneSet(*p.Colors)
	}
	return o
}

// cloneSet copies values dropping duplicates, keeping first-seen order
func cloneSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
