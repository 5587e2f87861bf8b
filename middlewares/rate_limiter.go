package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type window struct {
	count   int
	started time.Time
}

// RateLimiter is a fixed-window request counter keyed by an arbitrary
// identifier (usually the client IP). State is in-process only: it resets on
// restart and is not shared across instances, so treat it as a soft limit.
type RateLimiter struct {
	limit    int
	interval time.Duration
	windows  map[string]*window
	mu       sync.Mutex
}

func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:    limit,
		interval: interval,
		windows:  make(map[string]*window),
	}
}

// Allow records one request for key and reports whether it fits the window.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	w, exists := rl.windows[key]
	if !exists {
		w = &window{started: now}
		rl.windows[key] = w
	}

	if now.Sub(w.started) > rl.interval {
		w.count = 0
		w.started = now
	}

	if w.count >= rl.limit {
		return false
	}

	w.count++
	return true
}

// RateLimit rejects requests over the per-IP window with 429.
func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.AbortWithStatus(http.StatusTooManyRequests)
			return
		}
		c.Next()
	}
}

// NewStrictRateLimiter guards sensitive endpoints (login, device setup) with
// a small token bucket per client IP.
func NewStrictRateLimiter() gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Every(time.Minute/5), 5)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, please wait a moment",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
