package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// keyedLimiter hands out one token bucket per key (client IP here).
type keyedLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (kl *keyedLimiter) allow(key string) bool {
	kl.mu.RLock()
	limiter, exists := kl.limiters[key]
	kl.mu.RUnlock()

	if !exists {
		kl.mu.Lock()
		// Double-check after acquiring write lock
		if limiter, exists = kl.limiters[key]; !exists {
			limiter = rate.NewLimiter(kl.limit, kl.burst)
			kl.limiters[key] = limiter
		}
		kl.mu.Unlock()
	}

	return limiter.Allow()
}

// RateLimit throttles requests per client IP with a token bucket. Used on
// the auth endpoints to slow down code guessing and signup floods.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	kl := newKeyedLimiter(rps, burst)
	return func(c *gin.Context) {
		if !kl.allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
