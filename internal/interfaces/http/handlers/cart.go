// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	catalog *product.Catalog
}

// NewCartHandler creates a new cart handler
func NewCartHandler(catalog *product.Catalog) *CartHandler {
	return &CartHandler{catalog: catalog}
}

// AddToCartRequest is the body of POST /cart/items
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// UpdateCartItemRequest is the body of PUT /cart/items/:productId
type UpdateCartItemRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1,max=99"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

// CartResponse is the cart with its totals
type CartResponse struct {
	Items  []cart.Item `json:"items"`
	Totals cart.Totals `json:"totals"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse(middleware.GetSession(c).Cart),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": middleware.GetSession(c).Cart.TotalItems(),
		},
	})
}

// AddToCart handles POST /cart/items. The product is looked up in the
// catalog and snapshotted into the line.
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
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
	if !p.InStock {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Product is out of stock",
		})
		return
	}
	if err := session.CheckSelection(p, req.Size, req.Color); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "Invalid product selection",
			"details": err.Error(),
		})
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	store := middleware.GetSession(c).Cart
	store.AddItem(c.Request.Context(), cart.Item{
		Product:  p,
		Quantity: quantity,
		Size:     req.Size,
		Color:    req.Color,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse(store),
	})
}

// UpdateCartItem handles PUT /cart/items/:productId. Quantities below 1 are
// rejected; lines are removed with DELETE.
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store := middleware.GetSession(c).Cart
	store.UpdateQuantity(c.Request.Context(), c.Param("productId"), req.Quantity, req.Size, req.Color)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse(store),
	})
}

// RemoveFromCart handles DELETE /cart/items/:productId?size=&color=
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	store := middleware.GetSession(c).Cart
	store.RemoveItem(c.Request.Context(), c.Param("productId"), c.Query("size"), c.Query("color"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse(store),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := middleware.GetSession(c).Cart
	store.ClearCart(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    cartResponse(store),
	})
}

func cartResponse(store *cart.Store) CartResponse {
	items, totals := store.Contents()
	return CartResponse{
		Items:  items,
		Totals: totals,
	}
}
