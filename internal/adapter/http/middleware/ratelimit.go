package middleware

import (
	"context"
	"strconv"
	"time"

	redisStore "address-valuation/internal/adapter/storage/redis"
	"address-valuation/pkg/apperror"
	"address-valuation/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitStore counts requests per key and window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error)
}

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the per-group limits. The "valuations" limit
// is replaced by configuration at startup.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"valuations": {Limit: 60, Window: time.Minute},
		"batch":      {Limit: 10, Window: time.Minute},
		"prices":     {Limit: 120, Window: time.Minute},
		"admin":      {Limit: 5, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for an endpoint group,
// keyed by client IP. Store errors let the request through.
func RateLimiter(store RateLimitStore, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + ":" + group

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			c.Header("Retry-After", strconv.FormatInt(result.RetryAfter(time.Now()), 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}
