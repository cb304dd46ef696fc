package persistence

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RateLimiter implements a fixed-window counter on Redis. Windows are keyed
// per caller and expire on their own; the limiter fails open when Redis is
// unreachable so the assistant endpoint never hard-depends on it.
type RateLimiter struct {
	redis  *Redis
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewRateLimiter builds a limiter allowing limit calls per window.
func NewRateLimiter(r *Redis, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{redis: r, limit: limit, window: window, logger: logger}
}

// Allow reports whether the caller identified by key may proceed.
func (l *RateLimiter) Allow(ctx context.Context, key string) bool {
	if l == nil || l.limit <= 0 || l.redis == nil || l.redis.Client == nil {
		return true
	}

	windowKey := fmt.Sprintf("ratelimit:%s:%d", key, time.Now().Unix()/int64(l.window.Seconds()))
	count, err := l.redis.Client.Incr(ctx, windowKey).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.redis.Client.Expire(ctx, windowKey, l.window).Err(); err != nil {
			l.logger.Warn("rate limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.limit)
}
