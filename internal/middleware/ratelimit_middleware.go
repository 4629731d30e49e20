package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/resto_api/internal/pkg/clock"
	"github.com/GTDGit/resto_api/internal/utils"
)

// WindowCounter counts hits in an expiring window. cache.RedisClient implements it.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimiter is a fixed-window limiter keyed by client IP. Counters live in
// Redis so every API instance shares them.
type RateLimiter struct {
	counter WindowCounter
	clock   clock.Clock
	limit   int
	window  time.Duration
}

// NewRateLimiter allows perMinute requests per client IP per calendar minute.
func NewRateLimiter(counter WindowCounter, c clock.Clock, perMinute int) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		clock:   c,
		limit:   perMinute,
		window:  time.Minute,
	}
}

// Handle returns the gin middleware. When the counter store fails, the request
// is let through and the failure logged.
func (rl *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := rl.clock.Now()
		bucket := now.Unix() / int64(rl.window/time.Second)
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), bucket)

		count, err := rl.counter.IncrWindow(c.Request.Context(), key, rl.window)
		if err != nil {
			log.Warn().Err(err).Str("ip", c.ClientIP()).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			reset := time.Unix((bucket+1)*int64(rl.window/time.Second), 0)
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(reset.Sub(now).Seconds()))))
			utils.Error(c, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests, slow down")
			c.Abort()
			return
		}

		c.Next()
	}
}
