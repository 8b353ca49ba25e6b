// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/filter"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	catalog *product.Catalog
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalog *product.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// ProductListResponse is one page of the visible product list
type ProductListResponse struct {
	Products   []product.Product `json:"products"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Filters    filter.State      `json:"filters"`
	Facets     filter.FacetSet   `json:"facets"`
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	h.listProducts(c, nil, filter.Facets(h.catalog.Products()))
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, ok := h.catalog.Product(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	s := middleware.GetSession(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data": gin.H{
			"product":     p,
			"in_wishlist": s.Wishlist.IsInWishlist(p.ID),
		},
	})
}

// listProducts derives the visible list for the session: scope and search
// first, then the session's filters and sort option
func (h *ProductHandler) listProducts(c *gin.Context, scope filter.Predicate, facets filter.FacetSet) {
	page, limit := pagination(c)

	snapshot := middleware.GetSession(c).Filters.Snapshot()
	visible := filter.VisibleProducts(
		h.catalog.Products(),
		filter.All(scope, filter.MatchesSearch(snapshot.SearchQuery)),
		snapshot.Filters,
		snapshot.SortOption,
	)

	total := len(visible)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data": ProductListResponse{
			Products:   visible[start:end],
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: (total + limit - 1) / limit,
			Filters:    snapshot,
			Facets:     facets,
		},
	})
}

func pagination(c *gin.Context) (page, limit int) {
	page, limit = 1, defaultPageSize

	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= maxPageSize {
		limit = l
	}
	return page, limit
}
