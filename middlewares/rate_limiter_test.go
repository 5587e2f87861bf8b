package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	rl := NewRateLimiter(3, 100*time.Millisecond)

	// All calls inside the window up to the limit succeed
	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("1.2.3.4"), "call %d should be allowed", i+1)
	}

	// The limit+1-th call in the same window is rejected
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other keys have their own window
	assert.True(t, rl.Allow("5.6.7.8"))

	// After the window elapses the count starts fresh
	time.Sleep(150 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	rl := NewRateLimiter(2, time.Minute)
	router.Use(rl.RateLimit())
	router.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/ping", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
