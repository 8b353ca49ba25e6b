// internal/infrastructure/database/postgres/repository.go
package postgres

import (
	"context"
	"fmt"

	"github.com/your-org/storefront/internal/domain/product"
	"gorm.io/gorm"
)

// CatalogRepository reads the catalog tables
type CatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository creates a catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// Load reads every category and product in catalog order
func (r *CatalogRepository) Load(ctx context.Context) (*product.Catalog, error) {
	var categoryRows []CategoryModel
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&categoryRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	var productRows []ProductModel
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&productRows).Error; err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	return buildCatalog(categoryRows, productRows)
}

func buildCatalog(categoryRows []CategoryModel, productRows []ProductModel) (*product.Catalog, error) {
	categories := make([]product.Category, len(categoryRows))
	for i, row := range categoryRows {
		categories[i] = row.toDomain()
	}

	products := make([]product.Product, len(productRows))
	for i, row := range productRows {
		products[i] = row.toDomain()
	}

	c, err := product.NewCatalog(products, categories)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog in database: %w", err)
	}
	return c, nil
}
