package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/domain/product/producttest"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/state"
)

func newTestStore(s state.Storage) *Store {
	return NewStore(context.Background(), s, state.Options{Logger: logger.Discard()})
}

func TestMembership(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(storage.NewMemory())
	p := producttest.New("p1", "10")

	assert.False(t, s.IsInWishlist("p1"))

	s.AddItem(ctx, p)
	assert.True(t, s.IsInWishlist("p1"))

	s.RemoveItem(ctx, "p1")
	assert.False(t, s.IsInWishlist("p1"))
}

func TestAddItemIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(storage.NewMemory())

	s.AddItem(ctx, producttest.New("p1", "10"))
	s.AddItem(ctx, producttest.New("p1", "99", producttest.WithName("renamed")))
	s.AddItem(ctx, producttest.New("p2", "10"))

	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Product p1", items[0].Name, "first snapshot wins")
	assert.Equal(t, 2, s.Count())
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(storage.NewMemory())
	s.AddItem(ctx, producttest.New("p1", "10"))

	s.RemoveItem(ctx, "missing")
	assert.Equal(t, 1, s.Count())

	item, ok := s.Item("p1")
	require.True(t, ok)
	assert.Equal(t, "p1", item.ID)
}

func TestPersistAndRehydrate(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()

	s := newTestStore(mem)
	s.AddItem(ctx, producttest.New("p1", "10"))
	s.AddItem(ctx, producttest.New("p2", "20"))
	s.RemoveItem(ctx, "p1")

	reloaded := newTestStore(mem)
	assert.False(t, reloaded.IsInWishlist("p1"))
	assert.True(t, reloaded.IsInWishlist("p2"))

	reloaded.Clear(ctx)
	assert.Equal(t, 0, newTestStore(mem).Count())
}

func TestRehydrateDropsDuplicates(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	payload := `{"version":1,"state":[{"id":"a","price":"1"},{"id":"a","price":"2"},{"id":"b","price":"3"}]}`
	require.NoError(t, mem.Save(ctx, StorageKey, []byte(payload)))

	s := newTestStore(mem)
	items := s.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].Price.String())
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(storage.NewMemory())

	calls := 0
	s.Subscribe(func([]product.Product) { calls++ })
	s.AddItem(ctx, producttest.New("p1", "10"))
	s.RemoveItem(ctx, "p1")

	assert.Equal(t, 2, calls)
}

// failingStorage rejects every write
type failingStorage struct {
	*storage.Memory
}

func (f failingStorage) Save(context.Context, string, []byte) error {
	return errors.New("quota exceeded")
}

func TestMutationsSurviveWriteFailures(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s := newTestStore(failingStorage{mem})

	s.AddItem(ctx, producttest.New("p1", "10"))
	assert.True(t, s.IsInWishlist("p1"))
	assert.Equal(t, 1, s.Count())

	s.RemoveItem(ctx, "p1")
	assert.False(t, s.IsInWishlist("p1"))
	assert.Empty(t, mem.Keys(), "nothing reached storage")
}
