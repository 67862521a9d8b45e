package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const rateLimitWindow = time.Minute

// RateLimiter decides whether one more request of a client is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, clientKey string) bool
}

// RedisRateLimiter counts requests per client in fixed windows stored in Redis.
// When Redis can't be reached it lets requests through.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	logger *slog.Logger
}

// NewRedisRateLimiter creates a RedisRateLimiter that allows limitPerMinute requests per client.
func NewRedisRateLimiter(client *redis.Client, limitPerMinute int, logger *slog.Logger) *RedisRateLimiter {
	return NewRedisRateLimiterWithWindow(client, limitPerMinute, rateLimitWindow, logger)
}

// NewRedisRateLimiterWithWindow creates a RedisRateLimiter that allows limit requests per client and window.
func NewRedisRateLimiterWithWindow(
	client *redis.Client,
	limit int,
	window time.Duration,
	logger *slog.Logger,
) *RedisRateLimiter {

	return &RedisRateLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		logger: logger,
	}
}

// Allow increments the counter of the client and reports whether it is still within the limit.
//
// The counter is created together with its expiry in one MULTI/EXEC transaction, so a key never
// exists without a TTL. INCR keeps the TTL of an existing key.
func (l *RedisRateLimiter) Allow(ctx context.Context, clientKey string) bool {
	key := "ratelimit:" + clientKey

	var incr *redis.IntCmd

	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, l.window)
		incr = pipe.Incr(ctx, key)

		return nil
	})
	if err != nil {
		l.logger.WarnContext(ctx, "rate limiter unavailable, allowing request", slog.String("error", err.Error()))
		return true
	}

	return incr.Val() <= l.limit
}

func rateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			abortWithError(c, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}

		c.Next()
	}
}
