// Package catalog loads the static product catalog from YAML.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/product"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var seed []byte

type file struct {
	Categories []product.Category `yaml:"categories"`
	Products   []productRecord    `yaml:"products"`
}

// productRecord carries the fields YAML cannot decode into a Product directly
type productRecord struct {
	product.Product `yaml:",inline"`
	Price           string `yaml:"price"`
	CreatedAt       string `yaml:"created_at"`
}

// Seed returns the catalog bundled with the binary
func Seed() (*product.Catalog, error) {
	return Parse(seed)
}

// Load reads a catalog file. An empty path loads the bundled seed.
func Load(path string) (*product.Catalog, error) {
	if path == "" {
		return Seed()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog
func Parse(data []byte) (*product.Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	products := make([]product.Product, 0, len(f.Products))
	for i, rec := range f.Products {
		p, err := rec.toProduct()
		if err != nil {
			return nil, fmt.Errorf("catalog product #%d: %w", i+1, err)
		}
		products = append(products, p)
	}

	c, err := product.NewCatalog(products, f.Categories)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

func (r productRecord) toProduct() (product.Product, error) {
	p := r.Product

	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return product.Product{}, fmt.Errorf("%w: price %q: %v", product.ErrInvalidProduct, r.Price, err)
	}
	p.Price = price

	if r.CreatedAt != "" {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return product.Product{}, fmt.Errorf("%w: created_at %q: %v", product.ErrInvalidProduct, r.CreatedAt, err)
		}
		p.CreatedAt = createdAt
	}

	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []product.Color{}
	}
	return p, nil
}
