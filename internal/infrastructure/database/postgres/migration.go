// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
	"gorm.io/gorm"
)

// Migration handles catalog schema migrations and seeding
type Migration struct {
	db     *gorm.DB
	logger logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger logrus.FieldLogger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// RunAutoMigrations runs GORM auto-migrations for the catalog tables
func (m *Migration) RunAutoMigrations() error {
	m.logger.Info("Running database auto-migrations")

	models := []interface{}{
		&CategoryModel{},
		&ProductModel{},
	}

	for _, model := range models {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("Database auto-migrations completed")
	return nil
}

// CreateIndexes creates the indexes listing queries rely on
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_catalog_products_created_at ON catalog_products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_catalog_products_price ON catalog_products(price)",
		"CREATE INDEX IF NOT EXISTS idx_catalog_products_category_brand ON catalog_products(category, brand)",
	}

	failCount := 0
	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warn("Failed to create index")
			failCount++
		}
	}

	m.logger.WithFields(logrus.Fields{
		"created": len(indexes) - failCount,
		"failed":  failCount,
	}).Info("Database indexes created")
	return nil
}

// SeedCatalog inserts c when the catalog tables are empty. An already
// populated catalog is left alone.
func (m *Migration) SeedCatalog(ctx context.Context, c *product.Catalog) error {
	var count int64
	if err := m.db.WithContext(ctx).Model(&ProductModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		m.logger.WithField("products", count).Info("Catalog already seeded")
		return nil
	}

	categories := make([]CategoryModel, 0, len(c.Categories()))
	for i, cat := range c.Categories() {
		categories = append(categories, newCategoryModel(cat, i))
	}
	products := make([]ProductModel, 0, c.Len())
	for i, p := range c.Products() {
		products = append(products, newProductModel(p, i))
	}

	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(categories) > 0 {
			if err := tx.Create(&categories).Error; err != nil {
				return fmt.Errorf("failed to seed categories: %w", err)
			}
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return fmt.Errorf("failed to seed products: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	m.logger.WithFields(logrus.Fields{
		"categories": len(categories),
		"products":   len(products),
	}).Info("Catalog seeded")
	return nil
}
