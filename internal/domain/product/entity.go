// internal/domain/product/entity.go
package product

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is returned when a catalog record breaks a product invariant
var ErrInvalidProduct = errors.New("invalid product")

// Product represents a catalog entry. Products are immutable once loaded into
// a Catalog; carts and wishlists hold snapshots made with Clone.
type Product struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Price       decimal.Decimal `json:"price" yaml:"-"`
	Images      []string        `json:"images" yaml:"images"`
	Category    string          `json:"category" yaml:"category"`
	Brand       string          `json:"brand" yaml:"brand"`
	Sizes       []string        `json:"sizes" yaml:"sizes"`
	Colors      []Color         `json:"colors" yaml:"colors"`
	InStock     bool            `json:"in_stock" yaml:"in_stock"`
	Rating      *float64        `json:"rating,omitempty" yaml:"rating,omitempty"`
	Reviews     *int            `json:"reviews,omitempty" yaml:"reviews,omitempty"`
	Tags        []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	Material    string          `json:"material,omitempty" yaml:"material,omitempty"`
	Features    []string        `json:"features,omitempty" yaml:"features,omitempty"`
	CreatedAt   time.Time       `json:"created_at" yaml:"-"`
}

// Color is a named swatch offered for a product
type Color struct {
	Name string `json:"name" yaml:"name"`
	Hex  string `json:"hex" yaml:"hex"`
}

// Category represents a product category
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Business methods for Product

// RatingValue returns the rating, treating a missing rating as 0
func (p *Product) RatingValue() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

// ReviewCount returns the review count, treating a missing count as 0
func (p *Product) ReviewCount() int {
	if p.Reviews == nil {
		return 0
	}
	return *p.Reviews
}

// HasSize reports whether size is one of the offered sizes
func (p *Product) HasSize(size string) bool {
	return slices.Contains(p.Sizes, size)
}

// HasColor reports whether a colour with this name is offered
func (p *Product) HasColor(name string) bool {
	return slices.ContainsFunc(p.Colors, func(c Color) bool { return c.Name == name })
}

// ColorNames returns the colour names in catalog order
func (p *Product) ColorNames() []string {
	names := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		names[i] = c.Name
	}
	return names
}

// Clone returns a deep copy that shares no slices or pointers with p
func (p Product) Clone() Product {
	c := p
	c.Images = slices.Clone(p.Images)
	c.Sizes = slices.Clone(p.Sizes)
	c.Colors = slices.Clone(p.Colors)
	c.Tags = slices.Clone(p.Tags)
	c.Features = slices.Clone(p.Features)
	if p.Rating != nil {
		r := *p.Rating
		c.Rating = &r
	}
	if p.Reviews != nil {
		n := *p.Reviews
		c.Reviews = &n
	}
	return c
}

// Validate checks the invariants every catalog product must hold
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidProduct)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: product %s has no name", ErrInvalidProduct, p.ID)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("%w: product %s has a negative price", ErrInvalidProduct, p.ID)
	}
	if len(p.Images) == 0 {
		return fmt.Errorf("%w: product %s has no images", ErrInvalidProduct, p.ID)
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		return fmt.Errorf("%w: product %s rating %.1f outside 0-5", ErrInvalidProduct, p.ID, *p.Rating)
	}
	if p.Reviews != nil && *p.Reviews < 0 {
		return fmt.Errorf("%w: product %s has a negative review count", ErrInvalidProduct, p.ID)
	}

	seen := make(map[string]bool, len(p.Colors))
	for _, c := range p.Colors {
		if seen[c.Name] {
			return fmt.Errorf("%w: product %s lists colour %q twice", ErrInvalidProduct, p.ID, c.Name)
		}
		seen[c.Name] = true
	}

	return nil
}
