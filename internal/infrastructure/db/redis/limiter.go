package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubmissionLimiter is a fixed-window counter backed by Redis.
// Key format: ratelimit:messages:<key>
type SubmissionLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewSubmissionLimiter allows limit submissions per key within window.
func NewSubmissionLimiter(client *redis.Client, limit int, window time.Duration) *SubmissionLimiter {
	return &SubmissionLimiter{client: client, limit: int64(limit), window: window}
}

// Allow counts one submission for key and reports whether it is within the limit.
func (l *SubmissionLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit: %w", err)
	}

	return incr.Val() <= l.limit, nil
}

func (l *SubmissionLimiter) key(key string) string {
	return "ratelimit:messages:" + key
}
