package gaslayout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Run("unknown until marked", func(t *testing.T) {
		store := NewMemoryStore()

		known, err := store.IsKnown(t.Context(), 42)
		require.NoError(t, err)
		assert.False(t, known)

		added, err := store.TryMarkKnown(t.Context(), 42)
		require.NoError(t, err)
		assert.True(t, added)

		known, err = store.IsKnown(t.Context(), 42)
		require.NoError(t, err)
		assert.True(t, known)
	})

	t.Run("marking twice yields a single winner", func(t *testing.T) {
		store := NewMemoryStore()

		added, err := store.TryMarkKnown(t.Context(), 7)
		require.NoError(t, err)
		assert.True(t, added)

		added, err = store.TryMarkKnown(t.Context(), 7)
		require.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("keeps everything without a retention limit", func(t *testing.T) {
		store := NewMemoryStore()

		for n := uint64(1); n <= 100; n++ {
			_, err := store.TryMarkKnown(t.Context(), n)
			require.NoError(t, err)
		}

		known, err := store.IsKnown(t.Context(), 1)
		require.NoError(t, err)
		assert.True(t, known)
	})

	t.Run("sliding window forgets the oldest numbers", func(t *testing.T) {
		store := NewMemoryStore(WithRetentionLimit(2))

		for _, n := range []uint64{1, 2, 3} {
			added, err := store.TryMarkKnown(t.Context(), n)
			require.NoError(t, err)
			assert.True(t, added)
		}

		known, err := store.IsKnown(t.Context(), 1)
		require.NoError(t, err)
		assert.False(t, known, "oldest number should have been evicted")

		for _, n := range []uint64{2, 3} {
			known, err := store.IsKnown(t.Context(), n)
			require.NoError(t, err)
			assert.True(t, known)
		}

		// an evicted number may be marked (and rendered) again
		added, err := store.TryMarkKnown(t.Context(), 1)
		require.NoError(t, err)
		assert.True(t, added)
	})
}
