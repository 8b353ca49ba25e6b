// internal/domain/wishlist/store.go
package wishlist

import (
	"context"
	"sync"

	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/pkg/metrics"
	"github.com/your-org/storefront/internal/pkg/state"
)

// StorageKey is the namespace the wishlist is persisted under
const StorageKey = "wishlist"

// Store holds a session's wishlisted products, unique by product ID, in the
// order they were added.
type Store struct {
	mu        sync.Mutex
	items     []product.Product
	persister *state.Persister[[]product.Product]
	notifier  state.Notifier[[]product.Product]
	metrics   *metrics.Metrics
}

// NewStore creates a wishlist store and rehydrates it from storage
func NewStore(ctx context.Context, storage state.Storage, opts state.Options) *Store {
	s := &Store{
		persister: state.NewPersister[[]product.Product](storage, StorageKey, opts),
		metrics:   opts.Metrics,
	}

	if items, ok := s.persister.Restore(ctx); ok {
		s.items = dedupe(items)
	}

	return s
}

// AddItem appends a snapshot of p unless a product with the same ID is present
func (s *Store) AddItem(ctx context.Context, p product.Product) {
	s.mutate(ctx, "add_item", func(items []product.Product) []product.Product {
		if indexOf(items, p.ID) >= 0 {
			return items
		}
		return append(items, p.Clone())
	})
}

// RemoveItem removes the product with productID if present
func (s *Store) RemoveItem(ctx context.Context, productID string) {
	s.mutate(ctx, "remove_item", func(items []product.Product) []product.Product {
		if i := indexOf(items, productID); i >= 0 {
			return append(items[:i], items[i+1:]...)
		}
		return items
	})
}

// Clear empties the wishlist
func (s *Store) Clear(ctx context.Context) {
	s.mutate(ctx, "clear", func([]product.Product) []product.Product {
		return nil
	})
}

// IsInWishlist reports whether productID is wishlisted
func (s *Store) IsInWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.items, productID) >= 0
}

// Item returns the wishlisted snapshot of productID
func (s *Store) Item(productID string) (product.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.items, productID); i >= 0 {
		return s.items[i].Clone(), true
	}
	return product.Product{}, false
}

// Items returns a copy of the wishlisted products
func (s *Store) Items() []product.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Count returns the number of wishlisted products
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers fn to receive the wishlist after every mutation
func (s *Store) Subscribe(fn func([]product.Product)) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

func (s *Store) mutate(ctx context.Context, op string, fn func([]product.Product) []product.Product) {
	s.mu.Lock()
	s.items = fn(s.items)
	snapshot := s.snapshot()
	_ = s.persister.Persist(ctx, snapshot)
	s.mu.Unlock()

	s.metrics.ObserveMutation(StorageKey, op)
	s.notifier.Notify(snapshot)
}

func (s *Store) snapshot() []product.Product {
	out := make([]product.Product, len(s.items))
	for i, p := range s.items {
		out[i] = p.Clone()
	}
	return out
}

func indexOf(items []product.Product, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}

func dedupe(items []product.Product) []product.Product {
	out := make([]product.Product, 0, len(items))
	for _, p := range items {
		if p.ID == "" || indexOf(out, p.ID) >= 0 {
			continue
		}
		out = append(out, p)
	}
	return out
}
