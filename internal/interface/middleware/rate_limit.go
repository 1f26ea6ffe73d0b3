package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-course-api/pkg/apperror"
)

// KeyFunc builds a rate-limit key from the request
type KeyFunc func(c *gin.Context) string

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath gives every route its own budget per client.
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		return "rl:path:" + path + ":ip:" + ipFromCtx(c)
	}
}

// Returns {count, pttl}. The window starts on the first hit.
var fixedWindowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

type AllowFunc func(*gin.Context) bool // true bypasses the limit

type RateLimitOptions struct {
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
	Logger *logrus.Logger
}

// RateLimit counts requests per key in a fixed window and rejects with 429
// once Max is passed. A nil client or empty budget disables it; Redis errors fail open.
func RateLimit(rdb *redis.Client, opts RateLimitOptions) gin.HandlerFunc {
	if rdb == nil || opts.Max <= 0 || opts.Window <= 0 || opts.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (opts.Allow != nil && opts.Allow(c)) {
			c.Next()
			return
		}

		count, ttl, err := hit(c, rdb, opts.Key(c), opts.Window)
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.WithError(err).Warn("rate limiter unavailable, allowing request")
			}
			c.Next()
			return
		}

		resetSec := int((ttl + time.Second - 1) / time.Second)
		c.Header("X-RateLimit-Limit", strconv.Itoa(opts.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(opts.Max-count, 0)))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if count > opts.Max {
			c.Header("Retry-After", strconv.Itoa(max(resetSec, 1)))
			_ = c.Error(apperror.New(apperror.KindTooManyRequests, "rate limit exceeded"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func hit(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (int, time.Duration, error) {
	vals, err := fixedWindowScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, redis.Nil
	}
	ttl := time.Duration(max(vals[1], 0)) * time.Millisecond
	return int(vals[0]), ttl, nil
}
