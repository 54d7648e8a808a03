package gaslayout

import (
	"context"
	"fmt"

	"github.com/gabapcia/gasviz/internal/pkg/logger"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// meterScope identifies this package's instruments in the telemetry backend.
const meterScope = "github.com/gabapcia/gasviz/internal/gaslayout"

// Outcome classifies the result of observing one block.
type Outcome string

const (
	// OutcomeRendered means the block was new, its layout valid, and the
	// geometry was handed to the renderer.
	OutcomeRendered Outcome = "rendered"

	// OutcomeDuplicate means the block number was already known. Not an
	// error: the block is silently dropped, but the event is observable.
	OutcomeDuplicate Outcome = "duplicate"

	// OutcomeInvalid means a layout invariant was violated. The block is
	// not marked as known, so a corrected refetch may be retried.
	OutcomeInvalid Outcome = "invalid"
)

// Service is the dedup gate plus layout engine: it decides whether a block is
// new, computes its geometry, and forwards it to the renderer exactly once.
type Service interface {
	// Observe runs one block through the gate. The returned Outcome reports
	// what happened; the error is non-nil for invariant violations, storage
	// failures, and renderer failures.
	Observe(ctx context.Context, block Block) (Outcome, error)
}

type service struct {
	store    KnownBlockStore
	renderer Renderer

	renderedCounter  metric.Int64Counter
	duplicateCounter metric.Int64Counter
	invalidCounter   metric.Int64Counter
}

var _ Service = (*service)(nil)

// New creates the layout service around the given known-block store and
// renderer. It registers the package's metric instruments with the global
// MeterProvider.
func New(store KnownBlockStore, renderer Renderer) (*service, error) {
	meter := otel.Meter(meterScope)

	renderedCounter, err := meter.Int64Counter("gasviz.blocks.rendered",
		metric.WithDescription("Blocks laid out and handed to the renderer"))
	if err != nil {
		return nil, err
	}

	duplicateCounter, err := meter.Int64Counter("gasviz.blocks.duplicate",
		metric.WithDescription("Blocks dropped because their number was already known"))
	if err != nil {
		return nil, err
	}

	invalidCounter, err := meter.Int64Counter("gasviz.blocks.invalid",
		metric.WithDescription("Blocks skipped due to layout invariant violations"))
	if err != nil {
		return nil, err
	}

	return &service{
		store:            store,
		renderer:         renderer,
		renderedCounter:  renderedCounter,
		duplicateCounter: duplicateCounter,
		invalidCounter:   invalidCounter,
	}, nil
}

// Observe implements Service.
//
// Ordering matters here: the dedup check runs before any geometry is built
// (geometry construction is not idempotent), a failed layout never marks the
// block as known, and the atomic TryMarkKnown resolves duplicate in-flight
// responses for the same number to a single render.
func (s *service) Observe(ctx context.Context, block Block) (Outcome, error) {
	known, err := s.store.IsKnown(ctx, block.Number)
	if err != nil {
		return "", fmt.Errorf("known-block lookup for block %d: %w", block.Number, err)
	}

	if known {
		s.duplicateCounter.Add(ctx, 1)
		logger.Debug(ctx, "block already known", "block.number", block.Number)
		return OutcomeDuplicate, nil
	}

	layout, err := Layout(block)
	if err != nil {
		s.invalidCounter.Add(ctx, 1)
		logger.Warn(ctx, "block skipped: layout invariant violation",
			"block.number", block.Number,
			"error", err,
		)
		return OutcomeInvalid, err
	}

	added, err := s.store.TryMarkKnown(ctx, block.Number)
	if err != nil {
		return "", fmt.Errorf("marking block %d as known: %w", block.Number, err)
	}

	if !added {
		// lost the race against a concurrent duplicate response
		s.duplicateCounter.Add(ctx, 1)
		logger.Debug(ctx, "block already known", "block.number", block.Number)
		return OutcomeDuplicate, nil
	}

	if err := s.renderer.RenderBlock(ctx, layout); err != nil {
		return "", fmt.Errorf("rendering block %d: %w", block.Number, err)
	}

	s.renderedCounter.Add(ctx, 1)
	logger.Info(ctx, "new block rendered",
		"block.number", block.Number,
		"block.gas_limit", block.GasLimit,
		"block.gas_used", block.GasUsed,
		"block.transactions", len(block.Transactions),
	)
	return OutcomeRendered, nil
}
