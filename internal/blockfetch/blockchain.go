// Package blockfetch periodically requests the latest block from a blockchain
// node and forwards parsed results downstream. Fetching and draining run on
// independent cadences: a fetch is issued on the slow ticker, its response is
// collected and forwarded on the fast ticker, so a slow network round trip
// never blocks the cycle that issued it.
package blockfetch

import "context"

// Transaction is one transaction of a fetched block, reduced to the fields
// the visualization needs.
type Transaction struct {
	Index uint64 // position of the transaction within its block
	Gas   uint64 // gas allotted to the transaction
}

// Block is the parsed "latest block" response.
type Block struct {
	Number       uint64
	GasLimit     uint64
	GasUsed      uint64
	Transactions []Transaction
}

// BlockEvent is one completed fetch cycle: either a parsed block or the
// transport/parse error that prevented it. Errors are per-cycle only; the
// fetch loop always continues on the next cadence.
type BlockEvent struct {
	Block Block
	Err   error
}

// Blockchain issues a single "latest block, with full transaction objects"
// request against a node and parses the response.
type Blockchain interface {
	FetchLatestBlock(ctx context.Context) (Block, error)
}
