// internal/domain/cart/entity.go
package cart

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/domain/product"
)

// Item is one cart line. Its identity is (Product.ID, Size, Color); an empty
// Size or Color is a value like any other, not a wildcard.
type Item struct {
	Product  product.Product `json:"product"`
	Quantity int             `json:"quantity"`
	Size     string          `json:"size,omitempty"`
	Color    string          `json:"color,omitempty"`
}

// Key identifies a cart line
type Key struct {
	ProductID string
	Size      string
	Color     string
}

// Key returns the line identity of the item
func (i Item) Key() Key {
	return Key{ProductID: i.Product.ID, Size: i.Size, Color: i.Color}
}

// LineTotal returns price × quantity using the snapshotted price
func (i Item) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of distinct lines
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	SubTotal      decimal.Decimal `json:"sub_total"`
}
