package memory_test

import (
	"fmt"
	"sync"
	"testing"

	"storefront/internal/adapters/out/keyvalue/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	t.Run("should report missing keys", func(t *testing.T) {
		store := memory.NewStore()

		value, ok, err := store.Get(t.Context(), "order_list")

		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, value)
	})

	t.Run("should overwrite values", func(t *testing.T) {
		store := memory.NewStore()
		require.NoError(t, store.Set(t.Context(), "order_S1_total", "1000"))
		require.NoError(t, store.Set(t.Context(), "order_S1_total", "2000"))

		value, ok, err := store.Get(t.Context(), "order_S1_total")

		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "2000", value)
	})

	t.Run("should list keys by prefix in lexical order", func(t *testing.T) {
		store := memory.NewStore()
		for _, key := range []string{"order_b", "cart", "order_a", "order_a_items"} {
			require.NoError(t, store.Set(t.Context(), key, "{}"))
		}

		keys, err := store.Keys(t.Context(), "order_")

		require.NoError(t, err)
		assert.Equal(t, []string{"order_a", "order_a_items", "order_b"}, keys)
	})

	t.Run("should tolerate concurrent writers", func(t *testing.T) {
		store := memory.NewStore()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = store.Set(t.Context(), fmt.Sprintf("order_%02d", i), "{}")
			}()
		}
		wg.Wait()

		keys, err := store.Keys(t.Context(), "order_")

		require.NoError(t, err)
		assert.Len(t, keys, 50)
	})
}
