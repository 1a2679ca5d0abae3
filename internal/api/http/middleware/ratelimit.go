package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP using a token
// bucket. Used on the login and chat endpoints, which are the only ones
// an anonymous visitor can make expensive.
func RateLimitMiddleware(r rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = map[string]*limiterEntry{}
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		e, ok := limiters[ip]
		if !ok {
			e = &limiterEntry{limiter: rate.NewLimiter(r, burst)}
			limiters[ip] = e
		}
		e.seen = time.Now()
		// Opportunistic cleanup keeps the map from growing unbounded.
		if len(limiters) > 1024 {
			cutoff := time.Now().Add(-10 * time.Minute)
			for k, v := range limiters {
				if v.seen.Before(cutoff) {
					delete(limiters, k)
				}
			}
		}
		mu.Unlock()

		if !e.limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}

type limiterEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}
