// Package vizproc coordinates the visualization pipeline, wiring the
// latest-block fetcher into the gas layout engine so every drained block
// ends up rendered (or rejected) exactly once.
package vizproc

import (
	"context"
	"errors"
	"sync"

	"github.com/gabapcia/gasviz/internal/blockfetch"
	"github.com/gabapcia/gasviz/internal/gaslayout"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// meterScope identifies this package's instruments in the telemetry backend.
const meterScope = "github.com/gabapcia/gasviz/internal/vizproc"

// ErrServiceAlreadyStarted is returned if Start is called more than once.
//
// The service must be started only once per lifecycle.
var ErrServiceAlreadyStarted = errors.New("service already started")

// Service defines the vizproc lifecycle and coordination entrypoint.
type Service interface {
	// Start launches the block fetcher and begins routing drained blocks
	// into the layout engine.
	//
	// Returns ErrServiceAlreadyStarted if Start is called more than once.
	// Call Close to shut down all background routines.
	Start(ctx context.Context) error

	// Close shuts down the vizproc service and cancels all active routines.
	// It is safe to call Close even if the service was never started.
	Close()
}

// closeFunc defines a cleanup routine to stop background goroutines and dependencies.
type closeFunc func()

type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool       // ensures Start is called only once
	closeFunc closeFunc  // cancels context and cleans up dependencies

	blockfetch blockfetch.Service // source of latest-block events
	gaslayout  gaslayout.Service  // layout engine with dedup gate

	fetchFailureCounter metric.Int64Counter
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

// Start initializes the visualization pipeline.
//
// It starts the latest-block fetcher and wires its event stream into the
// layout engine.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	eventsCh, err := s.blockfetch.Start(ctx)
	if err != nil {
		cancel()
		return err
	}

	s.startHandleBlockEvents(ctx, eventsCh)

	s.closeFunc = func() {
		cancel()
		s.blockfetch.Close()
	}
	s.isStarted = true
	return nil
}

// Close shuts down all processing routines and dependencies.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

// New creates a new instance of the vizproc service, wiring the block
// fetcher with the layout engine. It registers the package's metric
// instruments with the global MeterProvider.
func New(bf blockfetch.Service, gl gaslayout.Service) (*service, error) {
	meter := otel.Meter(meterScope)

	fetchFailureCounter, err := meter.Int64Counter("gasviz.fetch.failures",
		metric.WithDescription("Latest-block fetches that failed after retries"))
	if err != nil {
		return nil, err
	}

	return &service{
		blockfetch:          bf,
		gaslayout:           gl,
		fetchFailureCounter: fetchFailureCounter,
	}, nil
}
