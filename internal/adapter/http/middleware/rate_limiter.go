package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"taskapp/internal/core/model/response"
	"taskapp/pkg/metrics"
)

type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

// RateLimiter applies a fixed window counter per endpoint. Counters live in
// an in-process cache; the mutex only guards the read-increment pair.
type RateLimiter struct {
	cache   *gocache.Cache
	config  map[string]RateLimitEndpointConfig
	logger  *zap.Logger
	metrics *metrics.AppMetrics
	mutex   sync.Mutex
}

type rateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func NewRateLimiter(logger *zap.Logger, appMetrics *metrics.AppMetrics) *RateLimiter {
	configs := map[string]RateLimitEndpointConfig{
		"POST /users": {
			Requests: 5,
			Window:   time.Minute,
			KeyFunc:  clientIP,
		},
		"POST /login": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  clientIP,
		},
		"POST /tasks": {
			Requests: 20,
			Window:   time.Minute,
			KeyFunc:  currentUserKey,
		},
		"default": {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  clientIP,
		},
	}

	return &RateLimiter{
		cache:   gocache.New(5*time.Minute, 10*time.Minute),
		config:  configs,
		logger:  logger,
		metrics: appMetrics,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		methodPath := c.Request.Method + " " + path

		config, exists := rl.config[methodPath]

		if !exists {
			config = rl.config["default"]
		}

		key := methodPath + ":" + config.KeyFunc(c)

		if !rl.allow(key, config) {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(path)
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("method", c.Request.Method),
				zap.String("path", path),
				zap.String("key", key),
			)

			c.AbortWithStatusJSON(http.StatusTooManyRequests, response.MessageResponse{
				Message: "Too many requests.",
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string, config RateLimitEndpointConfig) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()

	if raw, found := rl.cache.Get(key); found {
		entry := raw.(*rateLimitEntry)

		if now.Before(entry.ResetTime) {
			if entry.Count >= config.Requests {
				return false
			}

			entry.Count++

			return true
		}
	}

	rl.cache.Set(key, &rateLimitEntry{
		Count:     1,
		ResetTime: now.Add(config.Window),
	}, config.Window)

	return true
}

func clientIP(c *gin.Context) string {
	return c.ClientIP()
}

// currentUserKey buckets gated endpoints per account and falls back to the
// client address before the gate has resolved an identity.
func currentUserKey(c *gin.Context) string {
	if user, ok := CurrentUser(c); ok {
		return "user:" + user.Username
	}

	return clientIP(c)
}
