package memory

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
)

type memoryCache struct {
	cache *gocache.Cache
}

// New returns an in-process cache backend. It is the default when no redis
// connection is configured.
func New() port.CacheRepository {
	return &memoryCache{
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.cache.Set(key, value, ttl)

	return nil
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, found := m.cache.Get(key)

	if !found {
		return nil, domain.ErrNotFound
	}

	return value.([]byte), nil
}

func (m *memoryCache) Delete(ctx context.Context, key string) error {
	m.cache.Delete(key)

	return nil
}

func (m *memoryCache) DeleteByPrefix(ctx context.Context, prefix string) error {
	for key := range m.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			m.cache.Delete(key)
		}
	}

	return nil
}

func (m *memoryCache) Close() error {
	m.cache.Flush()

	return nil
}
