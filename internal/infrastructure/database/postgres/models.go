// internal/infrastructure/database/postgres/models.go
package postgres

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/product"
)

// CategoryModel is the catalog_categories row
type CategoryModel struct {
	ID          string `gorm:"primaryKey;size:64"`
	Position    int    `gorm:"not null;index"`
	Name        string `gorm:"size:100;not null"`
	Slug        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:500"`
}

// TableName overrides the table name for CategoryModel
func (CategoryModel) TableName() string {
	return "catalog_categories"
}

// ProductModel is the catalog_products row. List-valued fields are stored
// as JSON columns.
type ProductModel struct {
	ID          string          `gorm:"primaryKey;size:64"`
	Position    int             `gorm:"not null;index"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Images      []string        `gorm:"serializer:json;type:jsonb"`
	Category    string          `gorm:"size:100;index"`
	Brand       string          `gorm:"size:100;index"`
	Sizes       []string        `gorm:"serializer:json;type:jsonb"`
	Colors      []product.Color `gorm:"serializer:json;type:jsonb"`
	InStock     bool            `gorm:"default:true"`
	Rating      *float64
	Reviews     *int
	Tags        []string `gorm:"serializer:json;type:jsonb"`
	Material    string   `gorm:"size:255"`
	Features    []string `gorm:"serializer:json;type:jsonb"`
	CreatedAt   time.Time
}

// TableName overrides the table name for ProductModel
func (ProductModel) TableName() string {
	return "catalog_products"
}

func newCategoryModel(c product.Category, position int) CategoryModel {
	return CategoryModel{
		ID:          c.ID,
		Position:    position,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
	}
}

func (m CategoryModel) toDomain() product.Category {
	return product.Category{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Image:       m.Image,
	}
}

func newProductModel(p product.Product, position int) ProductModel {
	p = p.Clone()
	return ProductModel{
		ID:          p.ID,
		Position:    position,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Images:      p.Images,
		Category:    p.Category,
		Brand:       p.Brand,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		InStock:     p.InStock,
		Rating:      p.Rating,
		Reviews:     p.Reviews,
		Tags:        p.Tags,
		Material:    p.Material,
		Features:    p.Features,
		CreatedAt:   p.CreatedAt,
	}
}

func (m ProductModel) toDomain() product.Product {
	p := product.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Images:      m.Images,
		Category:    m.Category,
		Brand:       m.Brand,
		Sizes:       m.Sizes,
		Colors:      m.Colors,
		InStock:     m.InStock,
		Rating:      m.Rating,
		Reviews:     m.Reviews,
		Tags:        m.Tags,
		Material:    m.Material,
		Features:    m.Features,
		CreatedAt:   m.CreatedAt.UTC(),
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []product.Color{}
	}
	return p.Clone()
}
