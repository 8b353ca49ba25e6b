package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/state"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	t.Run("missing key", func(t *testing.T) {
		_, err := m.Load(ctx, "cart")
		assert.ErrorIs(t, err, state.ErrNotFound)
	})

	t.Run("save then load returns a copy", func(t *testing.T) {
		data := []byte(`{"version":1}`)
		require.NoError(t, m.Save(ctx, "cart", data))
		data[0] = 'X'

		got, err := m.Load(ctx, "cart")
		require.NoError(t, err)
		assert.Equal(t, `{"version":1}`, string(got))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, m.Delete(ctx, "cart"))
		require.NoError(t, m.Delete(ctx, "cart"))
		_, err := m.Load(ctx, "cart")
		assert.ErrorIs(t, err, state.ErrNotFound)
	})

	t.Run("namespaced keys", func(t *testing.T) {
		ns := state.Namespace(m, "storefront:abc")
		require.NoError(t, ns.Save(ctx, "wishlist", []byte("x")))
		assert.Contains(t, m.Keys(), "storefront:abc:wishlist")
	})
}
