package blockfetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabapcia/gasviz/internal/pkg/logger"
	"github.com/gabapcia/gasviz/internal/pkg/resilience/retry"
	"github.com/gabapcia/gasviz/internal/pkg/x/chflow"
)

// ErrServiceAlreadyStarted is returned if Start is called more than once.
var ErrServiceAlreadyStarted = errors.New("service already started")

const (
	// defaultFetchInterval is the cadence for issuing latest-block requests.
	defaultFetchInterval = 2 * time.Second

	// defaultDrainInterval is the cadence for collecting completed responses.
	// It is kept shorter than the fetch interval so that, in steady state,
	// at most one response is pending per drain.
	defaultDrainInterval = 1 * time.Second

	pendingChannelBufferSize = 10
	eventChannelBufferSize   = 10
)

// Service drives the periodic fetch/drain loops.
type Service interface {
	// Start launches the loops and returns the channel on which block
	// events are delivered. The drain loop closes the channel when it
	// stops; by the time Close returns the channel is closed.
	Start(ctx context.Context) (<-chan BlockEvent, error)

	// Close stops both loops and waits for the event channel to be closed
	// by its producer. It is safe to call even if the service was never
	// started.
	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	blockchain Blockchain

	fetchInterval time.Duration
	drainInterval time.Duration

	retry         retry.Retry // optional re-attempt of failed fetches
	inFlightGuard bool        // suppress a new fetch while one is outstanding
	inFlight      atomic.Bool
}

var _ Service = (*service)(nil)

// fetchOnce performs a single latest-block request and parks the result on
// pendingCh for the next drain tick. When a retry policy is configured, the
// request is re-attempted before the failure is surfaced as an event.
func (s *service) fetchOnce(ctx context.Context, pendingCh chan<- BlockEvent) {
	if s.inFlightGuard {
		defer s.inFlight.Store(false)
	}

	var block Block
	operation := func() error {
		var err error
		block, err = s.blockchain.FetchLatestBlock(ctx)
		return err
	}

	var err error
	if s.retry != nil {
		err = s.retry.Execute(ctx, operation)
	} else {
		err = operation()
	}

	chflow.Send(ctx, pendingCh, BlockEvent{Block: block, Err: err})
}

// fetchLoop issues one fetch per tick. Each fetch runs in its own goroutine
// so a slow response never delays the cadence; overlapping fetches are
// allowed unless the in-flight guard is enabled.
func (s *service) fetchLoop(ctx context.Context, pendingCh chan<- BlockEvent) {
	ticker := time.NewTicker(s.fetchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if s.inFlightGuard && !s.inFlight.CompareAndSwap(false, true) {
				logger.Debug(ctx, "fetch still in flight, skipping cycle")
				continue
			}

			go s.fetchOnce(ctx, pendingCh)
		}
	}
}

// drainLoop moves every already-completed fetch result from pendingCh to
// eventsCh once per tick. An empty pending queue is not an error, just "not
// yet ready".
//
// drainLoop is the sole sender on eventsCh and therefore owns its close:
// closing from anywhere else could race a send already committed inside
// chflow.Send and panic.
func (s *service) drainLoop(ctx context.Context, pendingCh <-chan BlockEvent, eventsCh chan<- BlockEvent) {
	defer close(eventsCh)

	ticker := time.NewTicker(s.drainInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for {
				event, ok := chflow.TryReceive(ctx, pendingCh)
				if !ok {
					break
				}

				if ok := chflow.Send(ctx, eventsCh, event); !ok {
					return
				}
			}
		}
	}
}

// Start implements Service.
func (s *service) Start(ctx context.Context) (<-chan BlockEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return nil, ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)

	var (
		pendingCh = make(chan BlockEvent, pendingChannelBufferSize)
		eventsCh  = make(chan BlockEvent, eventChannelBufferSize)
		drainDone = make(chan struct{})
	)

	s.closeFunc = func() {
		cancel()
		<-drainDone
	}

	go s.fetchLoop(ctx, pendingCh)
	go func() {
		defer close(drainDone)
		s.drainLoop(ctx, pendingCh, eventsCh)
	}()

	s.isStarted = true
	return eventsCh, nil
}

// Close implements Service.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.closeFunc = nil
	s.isStarted = false
}

type config struct {
	fetchInterval time.Duration
	drainInterval time.Duration
	retry         retry.Retry
	inFlightGuard bool
}

// Option configures the fetch service.
type Option func(*config)

// WithFetchInterval overrides the cadence for issuing latest-block requests.
func WithFetchInterval(d time.Duration) Option {
	return func(c *config) {
		c.fetchInterval = d
	}
}

// WithDrainInterval overrides the cadence for collecting completed responses.
func WithDrainInterval(d time.Duration) Option {
	return func(c *config) {
		c.drainInterval = d
	}
}

// WithRetry re-attempts failed fetches with the given policy before the
// failure is surfaced as a BlockEvent.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithInFlightGuard suppresses a new fetch while a previous one has not
// completed. Without it, overlapping fetches may deliver duplicate responses
// for the same block number; downstream dedup must tolerate that either way.
func WithInFlightGuard() Option {
	return func(c *config) {
		c.inFlightGuard = true
	}
}

// New creates the fetch service around the given blockchain client.
func New(blockchain Blockchain, opts ...Option) *service {
	cfg := config{
		fetchInterval: defaultFetchInterval,
		drainInterval: defaultDrainInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &service{
		blockchain:    blockchain,
		fetchInterval: cfg.fetchInterval,
		drainInterval: cfg.drainInterval,
		retry:         cfg.retry,
		inFlightGuard: cfg.inFlightGuard,
	}
}
