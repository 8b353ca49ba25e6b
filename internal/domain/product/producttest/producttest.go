// Package producttest builds catalog products for tests.
package producttest

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/product"
)

// Base is the CreatedAt of products built without WithCreatedAt
var Base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type Option func(*product.Product)

// New returns a valid product with the given id and price
func New(id string, price string, opts ...Option) product.Product {
	p := product.Product{
		ID:          id,
		Name:        "Product " + id,
		Description: "Description of " + id,
		Price:       decimal.RequireFromString(price),
		Images:      []string{"https://img.example/" + id + ".jpg"},
		Category:    "women",
		Brand:       "Acme",
		Sizes:       []string{"S", "M", "L"},
		Colors:      []product.Color{{Name: "Black", Hex: "#000000"}},
		InStock:     true,
		CreatedAt:   Base,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func WithCategory(category string) Option {
	return func(p *product.Product) { p.Category = category }
}

func WithBrand(brand string) Option {
	return func(p *product.Product) { p.Brand = brand }
}

func WithSizes(sizes ...string) Option {
	return func(p *product.Product) { p.Sizes = sizes }
}

func WithColors(names ...string) Option {
	return func(p *product.Product) {
		p.Colors = make([]product.Color, len(names))
		for i, n := range names {
			p.Colors[i] = product.Color{Name: n, Hex: "#cccccc"}
		}
	}
}

func WithRating(r float64) Option {
	return func(p *product.Product) { p.Rating = &r }
}

func WithReviews(n int) Option {
	return func(p *product.Product) { p.Reviews = &n }
}

func WithCreatedAt(t time.Time) Option {
	return func(p *product.Product) { p.CreatedAt = t }
}

func WithTags(tags ...string) Option {
	return func(p *product.Product) { p.Tags = tags }
}

func WithName(name string) Option {
	return func(p *product.Product) { p.Name = name }
}
