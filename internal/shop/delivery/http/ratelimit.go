package http

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/shop-console/pkg/logger"
)

// Limiter decides whether one more request from identifier fits the current window
type Limiter interface {
	Allow(ctx context.Context, identifier string) (allowed bool, remaining int, reset time.Time, err error)
	Limit() int
}

// RedisRateLimiter implements a sliding window limiter on a Redis sorted set
type RedisRateLimiter struct {
	redis       *redis.Client
	prefix      string
	maxRequests int
	window      time.Duration
}

// NewRedisRateLimiter creates a new rate limiter
func NewRedisRateLimiter(client *redis.Client, prefix string, maxRequests int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{redis: client, prefix: prefix, maxRequests: maxRequests, window: window}
}

func (rl *RedisRateLimiter) Limit() int { return rl.maxRequests }

// Allow checks if request is within rate limit using sliding window
func (rl *RedisRateLimiter) Allow(ctx context.Context, identifier string) (bool, int, time.Time, error) {
	key := rl.prefix + identifier
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	remaining := rl.maxRequests - int(count) - 1
	if remaining < 0 {
		remaining = 0
	}
	return count < int64(rl.maxRequests), remaining, now.Add(rl.window), nil
}

// RateLimitMiddleware limits requests per client IP. A nil limiter lets everything through; a
// limiter error is logged and the request allowed.
func RateLimitMiddleware(limiter Limiter) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if limiter == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			identifier := clientIP(r)

			allowed, remaining, reset, err := limiter.Allow(r.Context(), identifier)
			if err != nil {
				logger.Error(r.Context()).Err(err).Str("identifier", identifier).Msg("Rate limiter error")
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))

			if !allowed {
				logger.Warn(r.Context()).
					Str("identifier", identifier).
					Int("limit", limiter.Limit()).
					Msg("Rate limit exceeded")
				respondError(w, http.StatusTooManyRequests,
					fmt.Sprintf("Too many requests. Try again in %v", time.Until(reset).Round(time.Second)))
				return
			}

			next.ServeHTTP(w, r)
		}
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
