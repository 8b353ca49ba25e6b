// internal/domain/cart/store.go
package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/state"
)

// StorageKey is the namespace the cart is persisted under
const StorageKey = "cart"

// Store holds the ordered cart lines of one session. Every mutation persists
// the full line list before returning.
type Store struct {
	mu        sync.Mutex
	items     []Item
	persister *state.Persister[[]Item]
	notifier  state.Notifier[[]Item]
	metrics   *metrics.Metrics
}

// NewStore creates a cart store and rehydrates it from storage
func NewStore(ctx context.Context, storage state.Storage, opts state.Options) *Store {
	s := &Store{
		persister: state.NewPersister[[]Item](storage, StorageKey, opts),
		metrics:   opts.Metrics,
	}

	if items, ok := s.persister.Restore(ctx); ok {
		s.items = sanitize(items)
	}

	return s
}

// AddItem adds item as a new line, or adds its quantity to the line with the
// same key. Items with a quantity below 1 are ignored.
func (s *Store) AddItem(ctx context.Context, item Item) {
	if item.Quantity < 1 {
		return
	}

	s.mutate(ctx, "add_item", func(items []Item) []Item {
		key := item.Key()
		for i := range items {
			if items[i].Key() == key {
				items[i].Quantity = items[i].Quantity + item.Quantity
				return items
			}
		}

		item.Product = item.Product.Clone()
		return append(items, item)
	})
}

// RemoveItem removes the line matching the key exactly
func (s *Store) RemoveItem(ctx context.Context, productID, size, color string) {
	key := Key{ProductID: productID, Size: size, Color: color}

	s.mutate(ctx, "remove_item", func(items []Item) []Item {
		for i := range items {
			if items[i].Key() == key {
				return append(items[:i], items[i+1:]...)
			}
		}
		return items
	})
}

// UpdateQuantity replaces the quantity of the matching line. A quantity
// below 1 is rejected; lines are only ever removed by RemoveItem.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, size, color string) {
	if quantity < 1 {
		return
	}
	key := Key{ProductID: productID, Size: size, Color: color}

	s.mutate(ctx, "update_quantity", func(items []Item) []Item {
		for i := range items {
			if items[i].Key() == key {
				items[i].Quantity = quantity
				break
			}
		}
		return items
	})
}

// ClearCart removes every line
func (s *Store) ClearCart(ctx context.Context) {
	s.mutate(ctx, "clear", func([]Item) []Item {
		return nil
	})
}

// Items returns a copy of the cart lines in insertion order
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// TotalItems returns the sum of quantities across all lines
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns Σ price × quantity using each line's snapshotted price
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Totals returns line count, total quantity and subtotal in one read
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals()
}

// Contents returns the lines and their totals from the same state
func (s *Store) Contents() ([]Item, Totals) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), s.totals()
}

func (s *Store) totals() Totals {
	totals := Totals{
		ItemCount: len(s.items),
		SubTotal:  decimal.Zero,
	}
	for _, item := range s.items {
		totals.TotalQuantity += item.Quantity
		totals.SubTotal = totals.SubTotal.Add(item.LineTotal())
	}
	return totals
}

// Subscribe registers fn to receive the line list after every mutation
func (s *Store) Subscribe(fn func([]Item)) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

// mutate applies fn under the lock, persists, then notifies outside the lock
func (s *Store) mutate(ctx context.Context, op string, fn func([]Item) []Item) {
	s.mu.Lock()
	s.items = fn(s.items)
	snapshot := s.snapshot()
	_ = s.persister.Persist(ctx, snapshot)
	s.mu.Unlock()

	s.metrics.ObserveMutation(StorageKey, op)
	s.notifier.Notify(snapshot)
}

func (s *Store) snapshot() []Item {
	out := make([]Item, len(s.items))
	for i, item := range s.items {
		item.Product = item.Product.Clone()
		out[i] = item
	}
	return out
}

// sanitize drops persisted lines that break the cart invariants and merges
// lines that share a key.
func sanitize(items []Item) []Item {
	out := make([]Item, 0, len(items))
	index := make(map[Key]int, len(items))

	for _, item := range items {
		if item.Quantity < 1 || item.Product.ID == "" {
			continue
		}
		if i, ok := index[item.Key()]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.Key()] = len(out)
		out = append(out, item)
	}
	return out
}
