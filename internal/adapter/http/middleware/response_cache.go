package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"taskapp/internal/core/port"
	"taskapp/pkg/metrics"
)

type ResponseCacheConfig struct {
	TTL     time.Duration
	Enabled bool
}

// ResponseCache serves recent GET responses from a cache backend. Entries
// expire on a short TTL rather than being invalidated on writes.
type ResponseCache struct {
	backend port.CacheRepository
	config  map[string]ResponseCacheConfig
	metrics *metrics.AppMetrics
}

type cachedResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	Body       []byte              `json:"body"`
}

type cacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cacheWriter) Write(data []byte) (int, error) {
	w.body.Write(data)

	return w.ResponseWriter.Write(data)
}

func NewResponseCache(backend port.CacheRepository, appMetrics *metrics.AppMetrics) *ResponseCache {
	configs := map[string]ResponseCacheConfig{
		"/tasks": {
			TTL:     3 * time.Second,
			Enabled: true,
		},
	}

	return &ResponseCache{
		backend: backend,
		config:  configs,
		metrics: appMetrics,
	}
}

func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		config, exists := rc.config[path]

		if !exists || !config.Enabled {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := rc.cacheKey(c, path)

		if raw, err := rc.backend.Get(ctx, key); err == nil {
			var cached cachedResponse

			if err := json.Unmarshal(raw, &cached); err == nil {
				if rc.metrics != nil {
					rc.metrics.RecordCacheHit(path)
				}

				for name, values := range cached.Headers {
					for _, value := range values {
						c.Writer.Header().Add(name, value)
					}
				}

				c.Data(cached.StatusCode, "application/json", cached.Body)
				c.Abort()
				return
			}
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(path)
		}

		writer := &cacheWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() != 200 {
			return
		}

		entry, err := json.Marshal(cachedResponse{
			StatusCode: writer.Status(),
			Headers:    map[string][]string{"Content-Type": {"application/json"}},
			Body:       writer.body.Bytes(),
		})

		if err != nil {
			return
		}

		if err := rc.backend.Set(ctx, key, entry, config.TTL); err != nil {
			slog.Warn("Failed to store cached response", "key", key, "error", err)
		}
	}
}

func (rc *ResponseCache) cacheKey(c *gin.Context, path string) string {
	return fmt.Sprintf("response:%s:%x", path, md5.Sum([]byte(c.Request.URL.RawQuery)))
}
