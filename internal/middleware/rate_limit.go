package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a sliding-window request counter keyed by client IP.
type RateLimiter struct {
	tokens     map[string][]time.Time
	maxRequest int
	duration   time.Duration
	now        func() time.Time
	mu         sync.Mutex
}

func NewRateLimiter(maxRequest int, duration time.Duration) *RateLimiter {
	return &RateLimiter{
		tokens:     make(map[string][]time.Time),
		maxRequest: maxRequest,
		duration:   duration,
		now:        time.Now,
	}
}

func (rl *RateLimiter) cleanup(now time.Time) {
	for ip, tokens := range rl.tokens {
		var valid []time.Time
		for _, t := range tokens {
			if now.Sub(t) < rl.duration {
				valid = append(valid, t)
			}
		}
		if len(valid) > 0 {
			rl.tokens[ip] = valid
		} else {
			delete(rl.tokens, ip)
		}
	}
}

// Allow records a request from ip and reports whether it fits the window,
// along with how many requests remain.
func (rl *RateLimiter) Allow(ip string) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.cleanup(now)

	tokens := rl.tokens[ip]
	if len(tokens) >= rl.maxRequest {
		return false, 0
	}
	rl.tokens[ip] = append(tokens, now)
	return true, rl.maxRequest - len(tokens) - 1
}

func RateLimit(maxRequest int, duration time.Duration) gin.HandlerFunc {
	return NewRateLimiter(maxRequest, duration).Middleware()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		allowed, remaining := rl.Allow(ip)
		if !allowed {
			logger.WarnWithContext(c.Request.Context(), "Rate limit exceeded").
				String("client_ip", ip).
				Method(c.Request.Method).
				Path(c.Request.URL.Path).
				Int("max_requests", rl.maxRequest).
				Duration(rl.duration).
				Log()

			c.Header("Retry-After", fmt.Sprintf("%d", int(rl.duration.Seconds())))
			c.JSON(http.StatusTooManyRequests, constants.BuildErrorResponse(constants.MsgTooManyRequests, nil))
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", rl.maxRequest))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))

		c.Next()
	}
}
