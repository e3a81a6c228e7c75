package occupancy

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"gymgate/internal/metrics"
)

// Counter tracks live occupancy per gym. TryAdmit is the only authoritative
// admission check; Current is advisory and may be stale by the time it
// returns.
type Counter interface {
	// TryAdmit admits one session when current occupancy is below max.
	// The compare and increment run server-side as one atomic operation.
	TryAdmit(ctx context.Context, gymID, max int) (bool, error)
	// Release frees one session, never driving the count below zero.
	Release(ctx context.Context, gymID int) error
	Current(ctx context.Context, gymID int) (int, error)
	// Set overwrites the counter. Reserved for reconciliation.
	Set(ctx context.Context, gymID, value int) error
}

// admitScript refuses when the counter has reached max, otherwise increments,
// all inside Redis so concurrent callers cannot interleave between the read
// and the write.
const admitScript = `local current = tonumber(redis.call('GET', KEYS[1]) or '0')
local max = tonumber(ARGV[1])
if current >= max then
	return -1
end
return redis.call('INCR', KEYS[1])`

// releaseScript decrements with a floor of zero so a retried check-out cannot
// push occupancy negative.
const releaseScript = `local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current <= 0 then
	redis.call('SET', KEYS[1], '0')
	return 0
end
return redis.call('DECR', KEYS[1])`

type redisCounter struct {
	client *redis.Client
}

func NewCounter(client *redis.Client) Counter {
	return &redisCounter{client: client}
}

func key(gymID int) string {
	return fmt.Sprintf("occupancy:gym:%d", gymID)
}

func (c *redisCounter) TryAdmit(ctx context.Context, gymID, max int) (bool, error) {
	result, err := c.client.Eval(ctx, admitScript, []string{key(gymID)}, max).Int64()
	if err != nil {
		return false, fmt.Errorf("occupancy admit for gym %d: %w", gymID, err)
	}

	if result < 0 {
		return false, nil
	}

	metrics.SetGymOccupancy(gymID, int(result))
	return true, nil
}

func (c *redisCounter) Release(ctx context.Context, gymID int) error {
	result, err := c.client.Eval(ctx, releaseScript, []string{key(gymID)}).Int64()
	if err != nil {
		return fmt.Errorf("occupancy release for gym %d: %w", gymID, err)
	}

	metrics.SetGymOccupancy(gymID, int(result))
	return nil
}

func (c *redisCounter) Current(ctx context.Context, gymID int) (int, error) {
	value, err := c.client.Get(ctx, key(gymID)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("occupancy read for gym %d: %w", gymID, err)
	}
	return value, nil
}

func (c *redisCounter) Set(ctx context.Context, gymID, value int) error {
	if err := c.client.Set(ctx, key(gymID), value, 0).Err(); err != nil {
		return fmt.Errorf("occupancy set for gym %d: %w", gymID, err)
	}

	metrics.SetGymOccupancy(gymID, value)
	return nil
}
