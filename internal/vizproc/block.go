package vizproc

import (
	"context"

	"github.com/gabapcia/gasviz/internal/blockfetch"
	"github.com/gabapcia/gasviz/internal/gaslayout"
	"github.com/gabapcia/gasviz/internal/pkg/logger"
	"github.com/gabapcia/gasviz/internal/pkg/x/chflow"
)

// MapFetchedToLayoutBlock converts a blockfetch.Block into a gaslayout.Block,
// allowing cross-module compatibility while preserving clear separation of
// concerns. It is exported for one-shot callers that feed the layout engine
// outside the pipeline loop.
func MapFetchedToLayoutBlock(b blockfetch.Block) gaslayout.Block {
	transactions := make([]gaslayout.Transaction, len(b.Transactions))
	for i, tx := range b.Transactions {
		transactions[i] = gaslayout.Transaction(tx)
	}

	return gaslayout.Block{
		Number:       b.Number,
		GasLimit:     b.GasLimit,
		GasUsed:      b.GasUsed,
		Transactions: transactions,
	}
}

// handleBlockEvents consumes the fetcher's event stream. Failed fetches are
// logged and skipped so a transient provider error never stalls the loop;
// successful fetches are submitted to the layout engine, which decides
// whether the block is new, a duplicate, or invalid.
func (s *service) handleBlockEvents(ctx context.Context, eventsCh <-chan blockfetch.BlockEvent) {
	for {
		event, ok := chflow.Receive(ctx, eventsCh)
		if !ok {
			return
		}

		if event.Err != nil {
			s.fetchFailureCounter.Add(ctx, 1)
			logger.Error(ctx, "error fetching latest block", "error", event.Err)
			continue
		}

		outcome, err := s.gaslayout.Observe(ctx, MapFetchedToLayoutBlock(event.Block))
		if err != nil {
			logger.Error(ctx, "error observing block",
				"blockNumber", event.Block.Number,
				"outcome", outcome,
				"error", err,
			)
		}
	}
}

// startHandleBlockEvents launches the block event processing loop in a
// separate goroutine.
//
// This function should be called once during system startup.
func (s *service) startHandleBlockEvents(ctx context.Context, eventsCh <-chan blockfetch.BlockEvent) {
	go s.handleBlockEvents(ctx, eventsCh)
}
