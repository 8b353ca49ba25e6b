// internal/interfaces/http/handlers/filter.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/filter"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// FilterHandler handles the session's filter, sort and search settings
type FilterHandler struct{}

// NewFilterHandler creates a new filter handler
func NewFilterHandler() *FilterHandler {
	return &FilterHandler{}
}

// SortRequest is the body of PUT /filters/sort
type SortRequest struct {
	SortOption string `json:"sort_option" binding:"required"`
}

// SearchRequest is the body of PUT /filters/search
type SearchRequest struct {
	Query string `json:"query" binding:"max=200"`
}

// GetFilters handles GET /filters
func (h *FilterHandler) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Filters retrieved successfully",
		"data": gin.H{
			"state":        middleware.GetSession(c).Filters.Snapshot(),
			"sort_options": sortOptionLabels(),
		},
	})
}

// UpdateFilters handles PATCH /filters. Fields absent from the body keep
// their current value.
func (h *FilterHandler) UpdateFilters(c *gin.Context) {
	var patch filter.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := validatePriceRange(patch.PriceRange); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid price range",
			"details": err.Error(),
		})
		return
	}

	store := middleware.GetSession(c).Filters
	store.SetFilters(patch)

	c.JSON(http.StatusOK, gin.H{
		"message": "Filters updated successfully",
		"data":    store.Snapshot(),
	})
}

// ResetFilters handles DELETE /filters
func (h *FilterHandler) ResetFilters(c *gin.Context) {
	store := middleware.GetSession(c).Filters
	store.ResetFilters()

	c.JSON(http.StatusOK, gin.H{
		"message": "Filters reset successfully",
		"data":    store.Snapshot(),
	})
}

// SetSortOption handles PUT /filters/sort
func (h *FilterHandler) SetSortOption(c *gin.Context) {
	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	opt, err := filter.ParseSortOption(req.SortOption)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid sort option",
			"details": err.Error(),
		})
		return
	}

	store := middleware.GetSession(c).Filters
	store.SetSortOption(opt)

	c.JSON(http.StatusOK, gin.H{
		"message": "Sort option updated successfully",
		"data":    store.Snapshot(),
	})
}

// SetSearchQuery handles PUT /filters/search
func (h *FilterHandler) SetSearchQuery(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := middleware.GetSession(c).Filters
	store.SetSearchQuery(req.Query)

	c.JSON(http.StatusOK, gin.H{
		"message": "Search query updated successfully",
		"data":    store.Snapshot(),
	})
}

func validatePriceRange(r *filter.PriceRange) error {
	if r == nil {
		return nil
	}
	if r.Min.IsNegative() {
		return errors.New("min cannot be negative")
	}
	if r.Min.GreaterThan(r.Max) {
		return errors.New("min cannot exceed max")
	}
	return nil
}

func sortOptionLabels() []gin.H {
	out := make([]gin.H, len(filter.SortOptions))
	for i, opt := range filter.SortOptions {
		out[i] = gin.H{"value": opt, "label": opt.Label()}
	}
	return out
}
