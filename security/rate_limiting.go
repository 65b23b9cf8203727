package security

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"
)

// RateLimiter enforces a fixed-window per-IP request budget. The window
// counters live in redis so limits hold across restarts and replicas.
type RateLimiter struct {
	Redis  *redis.Client
	window time.Duration
	max    int
}

func NewRateLimiter(redisClient *redis.Client, window time.Duration, max int) *RateLimiter {
	return &RateLimiter{
		Redis:  redisClient,
		window: window,
		max:    max,
	}
}

func (rl *RateLimiter) windowKey(ip string, now time.Time) string {
	bucket := now.Unix() / int64(rl.window.Seconds())
	return fmt.Sprintf("ratelimit:%s:%d", ip, bucket)
}

// Middleware returns a router middleware that counts requests per client IP
// and rejects the overflow with 429. A redis failure fails open: limiting is
// protection, not a dependency.
func (rl *RateLimiter) Middleware() func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := e.Request.Context()
		key := rl.windowKey(e.RealIP(), time.Now())

		count, err := rl.Redis.Incr(ctx, key).Result()
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err)
			return e.Next()
		}
		if count == 1 {
			rl.Redis.Expire(ctx, key, rl.window)
		}

		if count > int64(rl.max) {
			return apis.NewTooManyRequestsError("Too many requests", nil)
		}

		return e.Next()
	}
}
