package gaslayout

import (
	"context"
	"errors"
	"testing"

	"github.com/gabapcia/gasviz/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Initialize logger for tests to prevent nil pointer dereference
	_ = logger.Init(logger.WithLevel("error"))
}

// fakeRenderer records every layout it receives and optionally fails.
type fakeRenderer struct {
	layouts []BlockLayout
	err     error
}

func (f *fakeRenderer) RenderBlock(_ context.Context, layout BlockLayout) error {
	if f.err != nil {
		return f.err
	}
	f.layouts = append(f.layouts, layout)
	return nil
}

// failingStore returns the configured errors from both store operations.
type failingStore struct {
	isKnownErr error
	markErr    error
}

func (f failingStore) IsKnown(context.Context, uint64) (bool, error) {
	return false, f.isKnownErr
}

func (f failingStore) TryMarkKnown(context.Context, uint64) (bool, error) {
	return false, f.markErr
}

// racingStore simulates a concurrent duplicate: the pre-check sees the block
// as new, but another writer wins the mark.
type racingStore struct{}

func (racingStore) IsKnown(context.Context, uint64) (bool, error)      { return false, nil }
func (racingStore) TryMarkKnown(context.Context, uint64) (bool, error) { return false, nil }

func validBlock(number uint64) Block {
	return Block{
		Number:   number,
		GasLimit: 100,
		GasUsed:  50,
		Transactions: []Transaction{
			{Index: 0, Gas: 20},
			{Index: 1, Gas: 10},
		},
	}
}

func TestService_Observe(t *testing.T) {
	t.Run("renders a new block exactly once", func(t *testing.T) {
		renderer := &fakeRenderer{}
		svc, err := New(NewMemoryStore(), renderer)
		require.NoError(t, err)

		outcome, err := svc.Observe(t.Context(), validBlock(16))
		require.NoError(t, err)
		assert.Equal(t, OutcomeRendered, outcome)

		require.Len(t, renderer.layouts, 1)
		assert.Equal(t, uint64(16), renderer.layouts[0].Number)
		assert.Len(t, renderer.layouts[0].Markers, 2)
	})

	t.Run("submitting the same number twice emits geometry once", func(t *testing.T) {
		renderer := &fakeRenderer{}
		svc, err := New(NewMemoryStore(), renderer)
		require.NoError(t, err)

		outcome, err := svc.Observe(t.Context(), validBlock(16))
		require.NoError(t, err)
		assert.Equal(t, OutcomeRendered, outcome)

		outcome, err = svc.Observe(t.Context(), validBlock(16))
		require.NoError(t, err)
		assert.Equal(t, OutcomeDuplicate, outcome)

		assert.Len(t, renderer.layouts, 1)
	})

	t.Run("invalid block is skipped and left unknown", func(t *testing.T) {
		renderer := &fakeRenderer{}
		store := NewMemoryStore()
		svc, err := New(store, renderer)
		require.NoError(t, err)

		bad := validBlock(20)
		bad.GasLimit = 0

		outcome, err := svc.Observe(t.Context(), bad)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrZeroGasLimit)
		assert.Equal(t, OutcomeInvalid, outcome)
		assert.Empty(t, renderer.layouts)

		// a corrected refetch of the same number must still render
		outcome, err = svc.Observe(t.Context(), validBlock(20))
		require.NoError(t, err)
		assert.Equal(t, OutcomeRendered, outcome)
		assert.Len(t, renderer.layouts, 1)
	})

	t.Run("losing the mark race is a duplicate, not an error", func(t *testing.T) {
		renderer := &fakeRenderer{}
		svc, err := New(racingStore{}, renderer)
		require.NoError(t, err)

		outcome, err := svc.Observe(t.Context(), validBlock(30))
		require.NoError(t, err)
		assert.Equal(t, OutcomeDuplicate, outcome)
		assert.Empty(t, renderer.layouts)
	})

	t.Run("store lookup failure propagates", func(t *testing.T) {
		wantErr := errors.New("storage down")
		svc, err := New(failingStore{isKnownErr: wantErr}, &fakeRenderer{})
		require.NoError(t, err)

		_, err = svc.Observe(t.Context(), validBlock(40))
		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("mark failure propagates before rendering", func(t *testing.T) {
		wantErr := errors.New("storage down")
		renderer := &fakeRenderer{}
		svc, err := New(failingStore{markErr: wantErr}, renderer)
		require.NoError(t, err)

		_, err = svc.Observe(t.Context(), validBlock(41))
		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
		assert.Empty(t, renderer.layouts)
	})

	t.Run("renderer failure propagates", func(t *testing.T) {
		wantErr := errors.New("scene unavailable")
		renderer := &fakeRenderer{err: wantErr}
		svc, err := New(NewMemoryStore(), renderer)
		require.NoError(t, err)

		_, err = svc.Observe(t.Context(), validBlock(50))
		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
	})
}
