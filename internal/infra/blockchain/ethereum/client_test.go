package ethereum

import (
	"encoding/json"
	"errors"
	"testing"

	jsonrpcmocks "github.com/gabapcia/gasviz/internal/pkg/transport/jsonrpc/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchLatestBlock(t *testing.T) {
	t.Run("requests latest block with full transactions", func(t *testing.T) {
		raw := json.RawMessage(`{
			"number": "0x10",
			"gasLimit": "0x64",
			"gasUsed": "0x32",
			"transactions": [
				{"hash": "0x1", "transactionIndex": "0x0", "gas": "0x14"},
				{"hash": "0x2", "transactionIndex": "0x1", "gas": "0xa"}
			]
		}`)

		mockClient := new(jsonrpcmocks.Client)
		mockClient.
			On("Fetch", mock.Anything, "eth_getBlockByNumber", "latest", true).
			Return(raw, nil)

		c := NewClient(mockClient)
		block, err := c.FetchLatestBlock(t.Context())

		require.NoError(t, err)
		assert.Equal(t, uint64(16), block.Number)
		assert.Equal(t, uint64(100), block.GasLimit)
		assert.Equal(t, uint64(50), block.GasUsed)
		assert.Len(t, block.Transactions, 2)

		mockClient.AssertExpectations(t)
	})

	t.Run("returns error when fetch fails", func(t *testing.T) {
		wantErr := errors.New("fetch error")

		mockClient := new(jsonrpcmocks.Client)
		mockClient.
			On("Fetch", mock.Anything, "eth_getBlockByNumber", "latest", true).
			Return(nil, wantErr)

		c := NewClient(mockClient)
		_, err := c.FetchLatestBlock(t.Context())

		require.Error(t, err)
		assert.ErrorIs(t, err, wantErr)
	})

	t.Run("null result is a named error", func(t *testing.T) {
		mockClient := new(jsonrpcmocks.Client)
		mockClient.
			On("Fetch", mock.Anything, "eth_getBlockByNumber", "latest", true).
			Return(json.RawMessage(`null`), nil)

		c := NewClient(mockClient)
		_, err := c.FetchLatestBlock(t.Context())

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrEmptyResult)
	})

	t.Run("malformed payload fails without panicking", func(t *testing.T) {
		mockClient := new(jsonrpcmocks.Client)
		mockClient.
			On("Fetch", mock.Anything, "eth_getBlockByNumber", "latest", true).
			Return(json.RawMessage(`{"number": 42}`), nil)

		c := NewClient(mockClient)
		_, err := c.FetchLatestBlock(t.Context())

		require.Error(t, err)
	})
}
