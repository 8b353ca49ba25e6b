// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	catalog *product.Catalog
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(catalog *product.Catalog) *WishlistHandler {
	return &WishlistHandler{catalog: catalog}
}

// AddToWishlistRequest is the body of POST /wishlist/items
type AddToWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	store := middleware.GetSession(c).Wishlist

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data": gin.H{
			"items": store.Items(),
			"count": store.Count(),
		},
	})
}

// AddToWishlist handles POST /wishlist/items. Adding a product twice is not
// an error.
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	p, ok := h.catalog.Product(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	store := middleware.GetSession(c).Wishlist
	store.AddItem(c.Request.Context(), p)

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added to wishlist",
		"data": gin.H{
			"items": store.Items(),
			"count": store.Count(),
		},
	})
}

// CheckWishlist handles GET /wishlist/items/:productId
func (h *WishlistHandler) CheckWishlist(c *gin.Context) {
	productID := c.Param("productId")

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist status retrieved successfully",
		"data": gin.H{
			"product_id":  productID,
			"in_wishlist": middleware.GetSession(c).Wishlist.IsInWishlist(productID),
		},
	})
}

// RemoveFromWishlist handles DELETE /wishlist/items/:productId
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	store := middleware.GetSession(c).Wishlist
	store.RemoveItem(c.Request.Context(), c.Param("productId"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from wishlist",
		"data": gin.H{
			"items": store.Items(),
			"count": store.Count(),
		},
	})
}

// MoveToCart handles POST /wishlist/items/:productId/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	var sel session.Selection
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&sel); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid request data",
				"details": err.Error(),
			})
			return
		}
	}

	s := middleware.GetSession(c)
	item, err := s.MoveToCart(c.Request.Context(), c.Param("productId"), sel)
	if err != nil {
		status := http.StatusUnprocessableEntity
		if errors.Is(err, session.ErrNotInWishlist) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{
			"error":   "Failed to move product to cart",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product moved to cart",
		"data": gin.H{
			"item": item,
			"cart": cartResponse(s.Cart),
		},
	})
}
