package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/careerconnect/careerconnect/logger"
	"github.com/careerconnect/careerconnect/web/entity"
	"github.com/careerconnect/careerconnect/web/locale"

	"github.com/gin-gonic/gin"
)

// Counter counts hits on key within a fixed window. The first hit opens the
// window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitConfig configures rate limiting
type RateLimitConfig struct {
	RequestsPerMinute int
	KeyFunc           func(c *gin.Context) string
	SkipPaths         []string
	Store             Counter
}

// DefaultRateLimitConfig limits by client IP.
func DefaultRateLimitConfig(store Counter, perMinute int) RateLimitConfig {
	return RateLimitConfig{
		RequestsPerMinute: perMinute,
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
		Store: store,
	}
}

func (config RateLimitConfig) shouldSkip(path string) bool {
	for _, skipPath := range config.SkipPaths {
		if strings.HasPrefix(path, skipPath) {
			return true
		}
	}
	return false
}

// RateLimitMiddleware rejects a client with 429 once it exceeds the limit on
// a path within a minute. Store failures let the request through.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RequestsPerMinute <= 0 || config.Store == nil || config.shouldSkip(c.Request.URL.Path) {
			c.Next()
			return
		}

		key := config.KeyFunc(c)
		rateLimitKey := "ratelimit:" + key + ":" + c.Request.URL.Path

		count, err := config.Store.Incr(c.Request.Context(), rateLimitKey, time.Minute)
		if err != nil {
			logger.Warning("Rate limit increment failed:", err)
			c.Next()
			return
		}

		remaining := config.RequestsPerMinute - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerMinute))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > config.RequestsPerMinute {
			logger.Warningf("Rate limit exceeded for %s on %s (count: %d)", key, c.Request.URL.Path, count)
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, entity.Msg{
				Message: locale.Localize(c, "errors.rateLimited", "Too many requests, please try again later", nil),
			})
			return
		}
		c.Next()
	}
}
