// Package ratelimit implements a fixed-window request counter in Redis.
package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter allows at most limit calls per key in each window.
type Limiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// New builds a limiter whose keys start with prefix.
func New(client *redis.Client, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, prefix: prefix, limit: limit, window: window, now: time.Now}
}

// Allow counts one call for key and reports whether it is within the limit.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	counterKey := l.windowKey(key, l.now())

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, counterKey)
		pipe.Expire(ctx, counterKey, l.window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(l.limit), nil
}

func (l *Limiter) windowKey(key string, now time.Time) string {
	bucket := now.UnixNano() / int64(l.window)
	return l.prefix + key + ":" + strconv.FormatInt(bucket, 10)
}
