package counter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("missing key reports not found", func(t *testing.T) {
		store := NewInMemoryStore()

		value, found, err := store.Get(ctx, "rate:client:1")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, value)
	})

	t.Run("put then get round-trips", func(t *testing.T) {
		store := NewInMemoryStore()

		require.NoError(t, store.Put(ctx, "quota:client:2025-01", 4, time.Minute))

		value, found, err := store.Get(ctx, "quota:client:2025-01")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 4, value)
	})

	t.Run("expired entries are not found", func(t *testing.T) {
		store := NewInMemoryStore()
		now := time.Now()
		store.SetClock(func() time.Time { return now })

		require.NoError(t, store.Put(ctx, "circuit:2025-01", 7999, 2*time.Minute))

		now = now.Add(3 * time.Minute)
		_, found, err := store.Get(ctx, "circuit:2025-01")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, store.Len())
	})

	t.Run("overwrite replaces value and expiry", func(t *testing.T) {
		store := NewInMemoryStore()

		require.NoError(t, store.Put(ctx, "rate:client:1", 1, time.Minute))
		require.NoError(t, store.Put(ctx, "rate:client:1", 2, time.Minute))

		value, found, err := store.Get(ctx, "rate:client:1")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 2, value)
	})
}
