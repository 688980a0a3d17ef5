package redis

import (
	"context"
	"fmt"
	"time"
)

// RateLimiter is a fixed-window counter: first hit creates the key with the
// window as TTL, every hit increments, over-limit requests are denied until
// the key expires.
type RateLimiter struct {
	client RedisClient
}

func NewRateLimiter(client RedisClient) *RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	count, err := r.client.Incr(ctx, key)
	if err != nil {
		return false, err
	}

	if count == 1 {
		err = r.client.Expire(ctx, key, window)
		if err != nil {
			return false, err
		}
	}

	if count > int64(limit) {
		return false, nil
	}

	return true, nil
}

// ClientKey namespaces limiter counters per caller address and scope.
func ClientKey(addr, scope string) string {
	return fmt.Sprintf("rate_limit:%s:%s", scope, addr)
}
