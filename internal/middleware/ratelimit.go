package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/pkg/response"
)

// Counter increments a windowed counter. *redis.Client from internal/pkg/redis satisfies it.
type Counter interface {
	Hit(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimit returns a fixed-window limiter keyed by client IP and route.
// A nil counter disables limiting. Counter failures let the request through.
func RateLimit(counter Counter, prefix string, limit int, window time.Duration) gin.HandlerFunc {
	if window <= 0 {
		window = time.Minute
	}
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 || IsAdmin(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		windowKey := time.Now().UnixNano() / int64(window)
		key := fmt.Sprintf("linkfolio:rate_limit:%s:%s:%s:%d", prefix, ip, c.Request.URL.Path, windowKey)

		count, err := counter.Hit(c.Request.Context(), key, window+time.Second)
		if err != nil {
			c.Next()
			return
		}

		if count > int64(limit) {
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			response.TooManyRequests(c)
			return
		}

		c.Next()
	}
}
