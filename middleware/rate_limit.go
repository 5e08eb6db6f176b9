package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig defines the configuration for rate limiting
type RateLimitConfig struct {
	// Requests is the maximum number of requests allowed within the window
	Requests int
	// Window is the time window for rate limiting
	Window time.Duration
	// KeyFunc returns the bucket key (defaults to IP)
	KeyFunc func(c echo.Context) string
	Message string
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

// RateLimiter is a fixed-window limiter keyed per caller
type RateLimiter struct {
	config RateLimitConfig
	store  map[string]*rateLimitEntry
	mu     sync.Mutex
	stop   chan struct{}
	once   sync.Once
}

// NewRateLimiter creates a new rate limiter with the given configuration
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}

	rl := &RateLimiter{
		config: config,
		store:  make(map[string]*rateLimitEntry),
		stop:   make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Allow records one request for key and reports whether it is within limits
func (rl *RateLimiter) Allow(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	entry, exists := rl.store[key]
	if !exists || now.After(entry.expiresAt) {
		rl.store[key] = &rateLimitEntry{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true
	}
	if entry.count >= rl.config.Requests {
		return false
	}
	entry.count++
	return true
}

// Middleware returns the rate limiting middleware
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rl.Allow(rl.config.KeyFunc(c), time.Now()) {
				return next(c)
			}

			c.Response().Header().Set("Retry-After", rl.retryAfter())
			if c.Request().Header.Get("HX-Request") == "true" {
				return c.HTML(http.StatusTooManyRequests, `<div class="alert alert-error" role="alert">`+rl.config.Message+`</div>`)
			}
			if strings.HasPrefix(c.Request().URL.Path, "/api/") {
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": rl.config.Message})
			}
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

func (rl *RateLimiter) retryAfter() string {
	return strconv.Itoa(int(rl.config.Window.Seconds()))
}

// Stop ends the cleanup goroutine
func (rl *RateLimiter) Stop() {
	rl.once.Do(func() { close(rl.stop) })
}

// cleanup removes expired entries every minute
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.mu.Lock()
			for key, entry := range rl.store {
				if now.After(entry.expiresAt) {
					delete(rl.store, key)
				}
			}
			rl.mu.Unlock()
		}
	}
}

// LoginRateLimiter limits login attempts to 5 per minute per IP
var LoginRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 5,
	Window:   1 * time.Minute,
	Message:  "Too many login attempts. Please wait a minute before trying again.",
})

// RegisterRateLimiter limits account creation to 5 per hour per IP
var RegisterRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 5,
	Window:   1 * time.Hour,
	Message:  "Too many registration attempts. Please try again later.",
})

// IntakeRateLimiter limits intake submissions to 10 per minute per IP
var IntakeRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 10,
	Window:   1 * time.Minute,
	Message:  "Too many form submissions. Please wait before trying again.",
})

// NotifyRateLimiter limits the public notify endpoint to 10 per minute per IP
var NotifyRateLimiter = NewRateLimiter(RateLimitConfig{
	Requests: 10,
	Window:   1 * time.Minute,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})
