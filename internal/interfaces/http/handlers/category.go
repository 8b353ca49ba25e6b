// internal/interfaces/http/handlers/category.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/filter"
	"github.com/your-org/storefront/internal/domain/product"
)

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	catalog  *product.Catalog
	products *ProductHandler
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(catalog *product.Catalog) *CategoryHandler {
	return &CategoryHandler{
		catalog:  catalog,
		products: NewProductHandler(catalog),
	}
}

// GetCategories handles GET /categories
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    h.catalog.Categories(),
	})
}

// GetCategoryProducts handles GET /categories/:slug/products. The category
// is a scope applied before the session's filters. Brand, size and colour
// facets list values found in the category; the category facet lists every
// category so shoppers can switch.
func (h *CategoryHandler) GetCategoryProducts(c *gin.Context) {
	slug := c.Param("slug")
	if _, ok := h.catalog.Category(slug); !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
		return
	}

	all := h.catalog.Products()
	scope := filter.InCategory(slug)
	inCategory := filter.VisibleProducts(all, scope, filter.DefaultOptions(), filter.DefaultSortOption)

	facets := filter.Facets(inCategory)
	facets.Categories = filter.Facets(all).Categories
	h.products.listProducts(c, scope, facets)
}
