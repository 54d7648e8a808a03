package gaslayout

import (
	"context"
	"sync"

	"github.com/gabapcia/gasviz/internal/pkg/types"
)

// KnownBlockStore tracks which block numbers have already been laid out and
// rendered, so each block produces geometry at most once per retention window.
//
// The store is injected into the service rather than held as process-global
// state; implementations range from the in-memory store below to a Redis set
// that survives restarts.
type KnownBlockStore interface {
	// IsKnown reports whether the block number has already been rendered.
	IsKnown(ctx context.Context, number uint64) (bool, error)

	// TryMarkKnown atomically records the block number as rendered. It
	// returns false when the number was already present, which is how
	// concurrent duplicate responses for the same block are resolved to a
	// single winner.
	TryMarkKnown(ctx context.Context, number uint64) (bool, error)
}

// memoryStore is the in-process KnownBlockStore. Retention is explicit: with
// no limit it keeps every number for the process lifetime; with a limit it
// keeps the most recently marked N numbers and forgets older ones.
type memoryStore struct {
	mu    sync.Mutex
	known types.Set[uint64]
	order []uint64 // insertion order, only tracked when limit > 0
	limit int
}

var _ KnownBlockStore = (*memoryStore)(nil)

// MemoryStoreOption configures the in-memory known-block store.
type MemoryStoreOption func(*memoryStore)

// WithRetentionLimit bounds the store to the n most recently marked block
// numbers. Zero or negative means keep everything.
func WithRetentionLimit(n int) MemoryStoreOption {
	return func(s *memoryStore) {
		s.limit = n
	}
}

// NewMemoryStore creates an in-memory KnownBlockStore.
func NewMemoryStore(opts ...MemoryStoreOption) *memoryStore {
	s := &memoryStore{
		known: types.NewSet[uint64](),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *memoryStore) IsKnown(_ context.Context, number uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.known.Has(number), nil
}

func (s *memoryStore) TryMarkKnown(_ context.Context, number uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.known.Has(number) {
		return false, nil
	}

	s.known.Add(number)

	if s.limit > 0 {
		s.order = append(s.order, number)
		for len(s.order) > s.limit {
			s.known.Delete(s.order[0])
			s.order = s.order[1:]
		}
	}

	return true, nil
}
