// Package redis provides Redis-backed storage adapters, including the
// known-block store used by the layout dedup gate.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

type client struct {
	conn *redis.Client

	retentionLimit int64
}

func (c *client) Close() error {
	return c.conn.Close()
}

// Option configures the Redis storage client.
type Option func(*client)

// WithRetentionLimit bounds the known-block set to the n most recently
// marked numbers. Zero or negative means keep everything.
func WithRetentionLimit(n int64) Option {
	return func(c *client) {
		c.retentionLimit = n
	}
}

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	c := &client{
		conn: conn,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}
