package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-library-backend/pkg/response"
)

// AllowFunc returns true when the request skips the limiter.
type AllowFunc func(*gin.Context) bool

// hitScript counts one hit in the window and returns {count, pttl}. The expiry is only set
// on the first hit so the window does not slide.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type hit struct {
	count int64
	reset time.Duration
}

func countHit(c *gin.Context, rdb *redis.Client, key string, window time.Duration) (hit, error) {
	vals, err := hitScript.Run(c.Request.Context(), rdb, []string{key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return hit{}, err
	}
	h := hit{count: vals[0]}
	if len(vals) > 1 && vals[1] > 0 {
		h.reset = time.Duration(vals[1]) * time.Millisecond
	}
	return h, nil
}

// ceilSeconds rounds d up to whole seconds.
func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

// RateLimit is a fixed-window limiter backed by Redis. It sets X-RateLimit-* headers and
// answers 429 with Retry-After once max is exceeded. Preflight requests are not counted,
// Redis errors let the request through, and a nil rdb disables the limiter.
func RateLimit(rdb *redis.Client, max int, window time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || window <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := int64(max)
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (allow != nil && allow(c)) {
			c.Next()
			return
		}

		h, err := countHit(c, rdb, keyFn(c), window)
		if err != nil {
			c.Next()
			return
		}

		reset := ceilSeconds(h.reset)
		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max64(limit-h.count, 0), 10))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if h.count > limit {
			if reset > 0 {
				c.Header("Retry-After", strconv.Itoa(reset))
			}
			response.Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
