package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/gabapcia/gasviz/internal/gaslayout"

	"github.com/redis/go-redis/v9"
)

// knownBlocksKey is the sorted set holding every rendered block number,
// scored by the number itself so rank order follows chain order.
const knownBlocksKey = "gasviz:blocks:known"

// IsKnown reports whether the block number has already been rendered.
func (c *client) IsKnown(ctx context.Context, number uint64) (bool, error) {
	err := c.conn.ZScore(ctx, knownBlocksKey, redisMember(number)).Err()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// TryMarkKnown records the block number, returning false when it was already
// present. ZAddNX is atomic, so concurrent duplicate responses for the same
// number resolve to a single winner. With a retention limit configured, the
// oldest entries beyond the limit are trimmed afterwards.
func (c *client) TryMarkKnown(ctx context.Context, number uint64) (bool, error) {
	added, err := c.conn.ZAddNX(ctx, knownBlocksKey, redis.Z{
		Score:  float64(number),
		Member: redisMember(number),
	}).Result()
	if err != nil {
		return false, err
	}

	if c.retentionLimit > 0 {
		if err := c.conn.ZRemRangeByRank(ctx, knownBlocksKey, 0, -(c.retentionLimit + 1)).Err(); err != nil {
			return false, err
		}
	}

	return added > 0, nil
}

// redisMember encodes a block number as a sorted set member.
func redisMember(number uint64) string {
	return strconv.FormatUint(number, 10)
}

// Compile-time assertion to ensure client implements the KnownBlockStore interface.
var _ gaslayout.KnownBlockStore = (*client)(nil)
