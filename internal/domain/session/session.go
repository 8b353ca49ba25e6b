// internal/domain/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/checkout"
	"github.com/your-org/storefront/internal/domain/filter"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wishlist"
)

var (
	ErrNotInWishlist      = errors.New("product is not in the wishlist")
	ErrSelectionRequired  = errors.New("size and colour selection required")
	ErrInvalidSelection   = errors.New("invalid size or colour selection")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
)

// Selection is the variant chosen when moving a wishlisted product to the cart
type Selection struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity"`
}

// Session is the storefront state of one browser: a store per concern plus
// the checkout simulation.
type Session struct {
	ID       string
	Cart     *cart.Store
	Wishlist *wishlist.Store
	Filters  *filter.Store
	Auth     *user.AuthStore
	Checkout *checkout.Tracker

	mu       sync.Mutex
	lastSeen time.Time
}

// MoveToCart adds a wishlisted product to the cart with an explicit variant
// and removes it from the wishlist. When the product offers sizes the
// selection must name one of them, and likewise for colours.
func (s *Session) MoveToCart(ctx context.Context, productID string, sel Selection) (cart.Item, error) {
	p, ok := s.Wishlist.Item(productID)
	if !ok {
		return cart.Item{}, ErrNotInWishlist
	}

	if err := CheckSelection(p, sel.Size, sel.Color); err != nil {
		return cart.Item{}, err
	}

	quantity := sel.Quantity
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return cart.Item{}, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidSelection)
	}

	item := cart.Item{Product: p, Quantity: quantity, Size: sel.Size, Color: sel.Color}
	s.Cart.AddItem(ctx, item)
	s.Wishlist.RemoveItem(ctx, productID)

	return item, nil
}

// CheckSelection verifies that size and color name variants p offers. A
// product without sizes (or colours) takes an empty value for that field.
func CheckSelection(p product.Product, size, color string) error {
	if err := checkOption(len(p.Sizes), p.HasSize, size, "size"); err != nil {
		return err
	}
	return checkOption(len(p.Colors), p.HasColor, color, "colour")
}

func checkOption(offered int, has func(string) bool, chosen, field string) error {
	if offered == 0 {
		if chosen != "" {
			return fmt.Errorf("%w: product has no %s options", ErrInvalidSelection, field)
		}
		return nil
	}
	if chosen == "" {
		return fmt.Errorf("%w: %s", ErrSelectionRequired, field)
	}
	if !has(chosen) {
		return fmt.Errorf("%w: %s %q is not offered", ErrInvalidSelection, field, chosen)
	}
	return nil
}

// StartCheckout begins the simulated checkout. Only the checkout status
// changes; the cart is left as it is.
func (s *Session) StartCheckout() error {
	if s.Cart.TotalItems() == 0 {
		return ErrEmptyCart
	}

	if !s.Checkout.Start(nil) {
		return ErrCheckoutInProgress
	}
	return nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
