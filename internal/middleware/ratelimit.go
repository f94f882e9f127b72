package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/terminal-bench/buckwave/internal/config"
)

// RateLimiter implements token bucket rate limiting
type RateLimiter struct {
	buckets  map[string]*bucket
	rate     float64
	capacity float64
	now      func() time.Time
	mu       sync.Mutex
}

type bucket struct {
	tokens   float64
	lastFill time.Time
}

// NewRateLimiter creates a limiter that refills rps tokens per second and
// allows bursts of twice that.
func NewRateLimiter(rps int) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		rate:     float64(rps),
		capacity: float64(rps * 2),
		now:      time.Now,
	}
}

// RateLimit middleware implements rate limiting per IP. A zero
// RateLimitRPS disables it.
func RateLimit(cfg *config.Config, limiter *RateLimiter) gin.HandlerFunc {
	if cfg.RateLimitRPS == 0 || limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

// Allow checks if a request is allowed under rate limiting
func (r *RateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, exists := r.buckets[key]
	if !exists {
		b = &bucket{tokens: r.capacity, lastFill: now}
		r.buckets[key] = b
	}

	elapsed := now.Sub(b.lastFill).Seconds()
	b.tokens = min(r.capacity, b.tokens+elapsed*r.rate)
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}

	b.tokens--
	return true
}

// CleanupOldBuckets removes buckets idle since before cutoff.
func (r *RateLimiter) CleanupOldBuckets(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for key, b := range r.buckets {
		if b.lastFill.Before(cutoff) {
			delete(r.buckets, key)
			removed++
		}
	}
	return removed
}

// StartCleanup evicts idle buckets every interval until done is closed.
func (r *RateLimiter) StartCleanup(done <-chan struct{}, interval, idle time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				r.CleanupOldBuckets(r.now().Add(-idle))
			}
		}
	}()
}
