package cache

import (
	"fmt"

	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Cache backends selectable through config
const (
	BackendMemory    = "memory"
	BackendRistretto = "ristretto"
	BackendRedis     = "redis"
)

// TenantCacheFactory creates the tenant cache selected by configuration
type TenantCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// TenantCacheFactoryOption is a functional option for configuring the factory
type TenantCacheFactoryOption func(*TenantCacheFactory)

// WithLogger sets the logger for the factory and the caches it creates
func WithLogger(logger *zap.Logger) TenantCacheFactoryOption {
	return func(f *TenantCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to the
// in-memory cache. Default is true.
func WithInMemoryFallback(allow bool) TenantCacheFactoryOption {
	return func(f *TenantCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewTenantCacheFactory creates a new factory
func NewTenantCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...TenantCacheFactoryOption) *TenantCacheFactory {
	f := &TenantCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateInMemoryCache creates a process-local cache
func (f *TenantCacheFactory) CreateInMemoryCache() *InMemoryTenantCache {
	return NewInMemoryTenantCache(
		WithInMemoryLogger(f.logger),
		WithDefaultTTL(f.cacheConfig.TTL),
		WithCleanupInterval(f.cacheConfig.CleanupInterval),
	)
}

// CreateRistrettoCache creates a bounded process-local cache
func (f *TenantCacheFactory) CreateRistrettoCache() (*RistrettoTenantCache, error) {
	return NewRistrettoTenantCache(f.cacheConfig.MaxEntries, f.cacheConfig.TTL, f.logger)
}

// CreateRedisCache creates a shared Redis cache
func (f *TenantCacheFactory) CreateRedisCache() (*RedisTenantCache, error) {
	c, err := NewRedisTenantCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	},
		WithRedisLogger(f.logger),
		WithRedisDefaultTTL(f.cacheConfig.TTL),
		WithRedisKeyPrefix(f.cacheConfig.KeyPrefix),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis tenant cache: %w", err)
	}
	return c, nil
}

// CreateCache builds the configured backend. A Redis backend that cannot be
// reached falls back to the in-memory cache when fallback is allowed.
func (f *TenantCacheFactory) CreateCache() (tenancy.TenantCache, error) {
	switch f.cacheConfig.Backend {
	case "", BackendMemory:
		f.logger.Info("Using in-memory tenant cache")
		return f.CreateInMemoryCache(), nil
	case BackendRistretto:
		c, err := f.CreateRistrettoCache()
		if err != nil {
			return nil, err
		}
		f.logger.Info("Using ristretto tenant cache", zap.Int64("max_entries", f.cacheConfig.MaxEntries))
		return c, nil
	case BackendRedis:
		c, err := f.CreateRedisCache()
		if err == nil {
			f.logger.Info("Using Redis tenant cache")
			return c, nil
		}
		if !f.allowInMemoryFallback {
			return nil, fmt.Errorf("Redis required for tenant cache but unavailable: %w", err)
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory tenant cache. "+
			"Tenant evictions will not propagate to other instances.",
			zap.Error(err),
		)
		return f.CreateInMemoryCache(), nil
	default:
		return nil, fmt.Errorf("unknown tenant cache backend %q", f.cacheConfig.Backend)
	}
}
