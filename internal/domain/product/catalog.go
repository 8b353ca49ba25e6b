// internal/domain/product/catalog.go
package product

import (
	"errors"
	"fmt"
)

// ErrDuplicateProduct is returned when two catalog products share an ID
var ErrDuplicateProduct = errors.New("duplicate product id")

// Catalog is the static, ordered collection of sellable products and their
// categories. Nothing mutates a Catalog after NewCatalog returns.
type Catalog struct {
	products   []Product
	categories []Category
	byID       map[string]int
	bySlug     map[string]int
}

// NewCatalog validates and copies products and categories into a Catalog
func NewCatalog(products []Product, categories []Category) (*Catalog, error) {
	c := &Catalog{
		products:   make([]Product, 0, len(products)),
		categories: make([]Category, len(categories)),
		byID:       make(map[string]int, len(products)),
		bySlug:     make(map[string]int, len(categories)),
	}

	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.ID]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProduct, p.ID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}

	copy(c.categories, categories)
	for i, cat := range c.categories {
		c.bySlug[cat.Slug] = i
	}

	return c, nil
}

// Products returns the products in catalog order. The result is a copy the
// caller may reorder freely.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

// Categories returns the categories in catalog order
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Product looks up a product by ID
func (c *Catalog) Product(id string) (Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i].Clone(), true
}

// Category looks up a category by slug
func (c *Catalog) Category(slug string) (Category, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}
