// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront/internal/domain/session"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CheckoutHandler handles the simulated checkout. Nothing is charged and the
// cart is kept; only the checkout status changes over the delay.
type CheckoutHandler struct{}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// StartCheckout handles POST /checkout
func (h *CheckoutHandler) StartCheckout(c *gin.Context) {
	s := middleware.GetSession(c)
	totals := s.Cart.Totals()

	if err := s.StartCheckout(); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, session.ErrEmptyCart):
			status = http.StatusBadRequest
		case errors.Is(err, session.ErrCheckoutInProgress):
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message": "Checkout started",
		"data": gin.H{
			"status": s.Checkout.Status(),
			"totals": totals,
		},
	})
}

// GetCheckoutStatus handles GET /checkout
func (h *CheckoutHandler) GetCheckoutStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout status retrieved successfully",
		"data":    middleware.GetSession(c).Checkout.Status(),
	})
}
