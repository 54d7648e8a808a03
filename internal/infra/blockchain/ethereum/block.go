// Package ethereum implements the blockfetch.Blockchain interface for
// Ethereum-compatible nodes. It requests the latest block over JSON-RPC and
// parses the hexadecimal wire fields into the domain representation.
package ethereum

import (
	"fmt"

	"github.com/gabapcia/gasviz/internal/blockfetch"
	"github.com/gabapcia/gasviz/internal/pkg/types"
)

type (
	// TransactionResponse represents a raw transaction object returned by the
	// Ethereum JSON-RPC API. Numeric fields arrive as "0x"-prefixed
	// hexadecimal strings.
	TransactionResponse struct {
		Hash             string    `json:"hash"`
		From             string    `json:"from"`
		To               string    `json:"to"`
		BlockHash        string    `json:"blockHash"`
		BlockNumber      types.Hex `json:"blockNumber"`
		TransactionIndex types.Hex `json:"transactionIndex"`
		Gas              types.Hex `json:"gas"`
		Value            string    `json:"value"`
		Input            string    `json:"input"`
	}

	// BlockResponse represents the block structure returned by
	// eth_getBlockByNumber with full transaction objects.
	BlockResponse struct {
		Hash         string                `json:"hash"`
		ParentHash   string                `json:"parentHash"`
		Miner        string                `json:"miner"`
		Number       types.Hex             `json:"number"`
		GasLimit     types.Hex             `json:"gasLimit"`
		GasUsed      types.Hex             `json:"gasUsed"`
		Timestamp    string                `json:"timestamp"`
		Transactions []TransactionResponse `json:"transactions"`
	}
)

// toFetcherTransaction parses the transaction's hex fields. A single bad
// field fails the conversion; the caller discards the whole response.
func (t TransactionResponse) toFetcherTransaction() (blockfetch.Transaction, error) {
	index, err := t.TransactionIndex.Uint64()
	if err != nil {
		return blockfetch.Transaction{}, fmt.Errorf("transaction %q index: %w", t.Hash, err)
	}

	gas, err := t.Gas.Uint64()
	if err != nil {
		return blockfetch.Transaction{}, fmt.Errorf("transaction %q gas: %w", t.Hash, err)
	}

	return blockfetch.Transaction{
		Index: index,
		Gas:   gas,
	}, nil
}

// toFetcherBlock parses the block's hex fields and converts every
// transaction, preserving wire order. Any parse failure fails the whole
// block: a partially parsed block is never forwarded.
func (b BlockResponse) toFetcherBlock() (blockfetch.Block, error) {
	number, err := b.Number.Uint64()
	if err != nil {
		return blockfetch.Block{}, fmt.Errorf("block number: %w", err)
	}

	gasLimit, err := b.GasLimit.Uint64()
	if err != nil {
		return blockfetch.Block{}, fmt.Errorf("block %d gas limit: %w", number, err)
	}

	gasUsed, err := b.GasUsed.Uint64()
	if err != nil {
		return blockfetch.Block{}, fmt.Errorf("block %d gas used: %w", number, err)
	}

	transactions := make([]blockfetch.Transaction, len(b.Transactions))
	for i, t := range b.Transactions {
		tx, err := t.toFetcherTransaction()
		if err != nil {
			return blockfetch.Block{}, fmt.Errorf("block %d: %w", number, err)
		}
		transactions[i] = tx
	}

	return blockfetch.Block{
		Number:       number,
		GasLimit:     gasLimit,
		GasUsed:      gasUsed,
		Transactions: transactions,
	}, nil
}
