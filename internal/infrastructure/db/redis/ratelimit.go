package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter implements a fixed-window request counter backed by Redis.
// Key format: rl:<name>:<client_key>:<window_index>
type Limiter struct {
	client *redis.Client
	name   string
	limit  int64
	window time.Duration
}

// NewLimiter creates a Limiter allowing limit requests per window.
func NewLimiter(client *redis.Client, name string, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, name: name, limit: int64(limit), window: window}
}

// Allow counts a request for key and reports whether it is within the
// window's budget.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key, time.Now())
	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		// First hit in this window owns the expiry.
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.limit, nil
}

func (l *Limiter) key(key string, now time.Time) string {
	return fmt.Sprintf("rl:%s:%s:%d", l.name, key, now.Unix()/int64(l.window.Seconds()))
}
