package ethereum

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"

	"github.com/gabapcia/gasviz/internal/blockfetch"
	"github.com/gabapcia/gasviz/internal/pkg/transport/jsonrpc"
)

// ErrEmptyResult indicates the node answered without a block payload, which
// happens while a node is still syncing.
var ErrEmptyResult = errors.New("node returned no block")

// client implements the blockfetch.Blockchain interface for Ethereum-based
// networks, communicating with a node via a JSON-RPC client.
type client struct {
	conn jsonrpc.Client // Underlying JSON-RPC client used to interact with the Ethereum node
}

// Ensure client implements the blockfetch.Blockchain interface at compile time.
var _ blockfetch.Blockchain = (*client)(nil)

// FetchLatestBlock requests the latest block with full transaction objects
// and parses it into the domain representation.
func (c *client) FetchLatestBlock(ctx context.Context) (blockfetch.Block, error) {
	data, err := c.conn.Fetch(ctx, "eth_getBlockByNumber", "latest", true)
	if err != nil {
		return blockfetch.Block{}, err
	}

	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return blockfetch.Block{}, ErrEmptyResult
	}

	var blockResponse BlockResponse
	if err := json.Unmarshal(data, &blockResponse); err != nil {
		return blockfetch.Block{}, err
	}

	return blockResponse.toFetcherBlock()
}

// NewClient creates a new Ethereum blockchain client using the provided
// JSON-RPC connection.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}
