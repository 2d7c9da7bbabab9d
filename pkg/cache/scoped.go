package cache

import (
	"context"
	"time"
)

// ScopedCache prefixes every key before handing it to the wrapped cache.
type ScopedCache struct {
	inner  Cache
	prefix string
}

// Scoped wraps c so that its keys live under prefix. A nil c yields a
// NullCache.
func Scoped(c Cache, prefix string) Cache {
	if c == nil {
		c = NewNullCache()
	}
	return &ScopedCache{inner: c, prefix: prefix}
}

// Get implements Cache.
func (s *ScopedCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

// Set implements Cache.
func (s *ScopedCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

// Delete implements Cache.
func (s *ScopedCache) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

// Close closes the wrapped cache.
func (s *ScopedCache) Close() error { return s.inner.Close() }
