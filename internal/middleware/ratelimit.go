package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// RateLimiter is a fixed-window limiter shared by every API instance.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	prefix string
	log    *slog.Logger
}

func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, log *slog.Logger) *RateLimiter {
	if limit <= 0 {
		limit = 60
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{rdb: rdb, limit: limit, window: window, prefix: "rl", log: log}
}

// Middleware fails open: a Redis outage never blocks bookings.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s:%s", rl.prefix, c.FullPath(), c.ClientIP())

		count, err := rl.incr(c.Request.Context(), key)
		if err != nil {
			rl.log.Warn("rate limiter unavailable", "err", err)
			c.Next()
			return
		}

		remaining := rl.limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if count > int64(rl.limit) {
			httperr.Write(c, http.StatusTooManyRequests, "rate_limited", "Muitas requisições. Tente novamente em instantes.")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) incr(ctx context.Context, key string) (int64, error) {
	res, err := fixedWindowScript.Run(ctx, rl.rdb, []string{key}, rl.window.Milliseconds()).Result()
	if err != nil {
		return 0, err
	}
	switch v := res.(type) {
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(v, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected redis script result type %T", res)
	}
}
