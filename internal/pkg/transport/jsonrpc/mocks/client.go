// Package mocks contains a testify-based mock of the jsonrpc.Client interface.
package mocks

import (
	"context"
	"encoding/json"

	"github.com/gabapcia/gasviz/internal/pkg/transport/jsonrpc"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of jsonrpc.Client.
type Client struct {
	mock.Mock
}

var _ jsonrpc.Client = (*Client)(nil)

// Fetch records the call and returns the configured result and error.
func (m *Client) Fetch(ctx context.Context, method string, params ...any) (json.RawMessage, error) {
	callArgs := append([]any{ctx, method}, params...)
	args := m.Called(callArgs...)

	var result json.RawMessage
	if raw := args.Get(0); raw != nil {
		result = raw.(json.RawMessage)
	}

	return result, args.Error(1)
}
