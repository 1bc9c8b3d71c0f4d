package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryTenantCache implements tenancy.TenantCache with a process-local map.
// Entries do not survive restarts and are not shared between replicas.
type InMemoryTenantCache struct {
	entries         sync.Map // map[string]*cacheEntry[tenancy.Tenant]
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
	logger          *zap.Logger
	stopCh          chan struct{}
	stopped         int32

	hits   int64
	misses int64
}

type cacheEntry[T any] struct {
	value     *T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryTenantCacheOption is a functional option for configuring the cache
type InMemoryTenantCacheOption func(*InMemoryTenantCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryTenantCacheOption {
	return func(c *InMemoryTenantCache) {
		c.logger = logger
	}
}

// WithDefaultTTL sets the TTL applied when Set is called with ttl == 0
func WithDefaultTTL(ttl time.Duration) InMemoryTenantCacheOption {
	return func(c *InMemoryTenantCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithCleanupInterval sets how often expired entries are swept
func WithCleanupInterval(interval time.Duration) InMemoryTenantCacheOption {
	return func(c *InMemoryTenantCache) {
		if interval > 0 {
			c.cleanupInterval = interval
		}
	}
}

// WithClock overrides the time source (tests)
func WithClock(now func() time.Time) InMemoryTenantCacheOption {
	return func(c *InMemoryTenantCache) {
		c.now = now
	}
}

// NewInMemoryTenantCache creates a cache and starts its cleanup goroutine
func NewInMemoryTenantCache(opts ...InMemoryTenantCacheOption) *InMemoryTenantCache {
	cache := &InMemoryTenantCache{
		defaultTTL:      tenancy.DefaultCacheTTL,
		cleanupInterval: defaultCleanupInterval,
		now:             time.Now,
		logger:          zap.NewNop(),
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get returns a copy of the cached tenant, or nil on a miss
func (c *InMemoryTenantCache) Get(ctx context.Context, key string) (*tenancy.Tenant, error) {
	if value, ok := c.entries.Load(key); ok {
		entry := value.(*cacheEntry[tenancy.Tenant])
		if !entry.isExpired(c.now()) {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("Tenant cache hit", zap.String("key", key))
			return entry.value.Snapshot(), nil
		}
		c.entries.CompareAndDelete(key, value)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("Tenant cache miss", zap.String("key", key))
	return nil, nil
}

// Set stores a copy of tenant under key
func (c *InMemoryTenantCache) Set(ctx context.Context, key string, tenant *tenancy.Tenant, ttl time.Duration) error {
	if tenant == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.entries.Store(key, &cacheEntry[tenancy.Tenant]{
		value:     tenant.Snapshot(),
		expiresAt: c.now().Add(ttl),
	})
	c.logger.Debug("Cached tenant",
		zap.String("key", key),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes the given keys
func (c *InMemoryTenantCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		c.entries.Delete(key)
	}
	c.logger.Debug("Evicted tenant cache keys", zap.Strings("keys", keys))
	return nil
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *InMemoryTenantCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryTenantCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries, including expired ones not yet swept
func (c *InMemoryTenantCache) Count() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *InMemoryTenantCache) cleanupExpired() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in tenant cache cleanup", zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

func (c *InMemoryTenantCache) doCleanup() {
	removed := 0
	now := c.now()
	c.entries.Range(func(key, value any) bool {
		if value.(*cacheEntry[tenancy.Tenant]).isExpired(now) {
			c.entries.CompareAndDelete(key, value)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("Cleaned up expired tenant cache entries", zap.Int("removed", removed))
	}
}

var _ tenancy.TenantCache = (*InMemoryTenantCache)(nil)
