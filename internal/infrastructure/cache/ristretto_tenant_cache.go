package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto/v2"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

const defaultRistrettoMaxEntries = 10_000

// RistrettoTenantCache is a bounded in-process tenant cache. Each entry costs 1,
// so MaxCost is the maximum number of cached lookups.
type RistrettoTenantCache struct {
	c          *ristretto.Cache[string, *tenancy.Tenant]
	defaultTTL time.Duration
	logger     *zap.Logger
}

// NewRistrettoTenantCache creates a cache holding at most maxEntries lookups
func NewRistrettoTenantCache(maxEntries int64, defaultTTL time.Duration, logger *zap.Logger) (*RistrettoTenantCache, error) {
	if maxEntries <= 0 {
		maxEntries = defaultRistrettoMaxEntries
	}
	if defaultTTL <= 0 {
		defaultTTL = tenancy.DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, *tenancy.Tenant]{
		NumCounters:        maxEntries * 10,
		MaxCost:            maxEntries,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return &RistrettoTenantCache{c: c, defaultTTL: defaultTTL, logger: logger}, nil
}

// Get returns a copy of the cached tenant, or nil on a miss
func (r *RistrettoTenantCache) Get(ctx context.Context, key string) (*tenancy.Tenant, error) {
	t, found := r.c.Get(key)
	if !found {
		return nil, nil
	}
	return t.Snapshot(), nil
}

// Set stores a copy of tenant. It blocks until the write is visible to Get.
func (r *RistrettoTenantCache) Set(ctx context.Context, key string, tenant *tenancy.Tenant, ttl time.Duration) error {
	if tenant == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	if !r.c.SetWithTTL(key, tenant.Snapshot(), 1, ttl) {
		r.logger.Debug("Ristretto dropped tenant cache write", zap.String("key", key))
		return nil
	}
	r.c.Wait()
	return nil
}

// Delete removes the given keys
func (r *RistrettoTenantCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		r.c.Del(key)
	}
	return nil
}

// GetStats returns cache statistics
func (r *RistrettoTenantCache) GetStats() (hits, misses int64) {
	if r.c.Metrics == nil {
		return 0, 0
	}
	return int64(r.c.Metrics.Hits()), int64(r.c.Metrics.Misses())
}

// Close shuts down the cache and releases resources
func (r *RistrettoTenantCache) Close() error {
	r.c.Close()
	return nil
}

var _ tenancy.TenantCache = (*RistrettoTenantCache)(nil)
