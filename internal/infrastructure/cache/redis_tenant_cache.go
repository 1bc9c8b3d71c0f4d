package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRedisKeyPrefix = "hrapi:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisTenantCache shares resolved tenants between API replicas, so an
// eviction on one instance is visible to all of them.
type RedisTenantCache struct {
	client     *redis.Client
	ownsClient bool
	keyPrefix  string
	defaultTTL time.Duration
	logger     *zap.Logger
}

// RedisTenantCacheOption is a functional option for configuring the cache
type RedisTenantCacheOption func(*RedisTenantCache)

// WithRedisKeyPrefix sets the namespace prepended to every key
func WithRedisKeyPrefix(prefix string) RedisTenantCacheOption {
	return func(c *RedisTenantCache) {
		c.keyPrefix = prefix
	}
}

// WithRedisDefaultTTL sets the TTL applied when Set is called with ttl == 0
func WithRedisDefaultTTL(ttl time.Duration) RedisTenantCacheOption {
	return func(c *RedisTenantCache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisTenantCacheOption {
	return func(c *RedisTenantCache) {
		c.logger = logger
	}
}

// NewRedisTenantCache connects to Redis and verifies the connection
func NewRedisTenantCache(cfg RedisConfig, opts ...RedisTenantCacheOption) (*RedisTenantCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c := NewRedisTenantCacheWithClient(client, opts...)
	c.ownsClient = true
	return c, nil
}

// NewRedisTenantCacheWithClient wraps an existing client. The caller keeps
// ownership of the client.
func NewRedisTenantCacheWithClient(client *redis.Client, opts ...RedisTenantCacheOption) *RedisTenantCache {
	c := &RedisTenantCache{
		client:     client,
		keyPrefix:  defaultRedisKeyPrefix,
		defaultTTL: tenancy.DefaultCacheTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *RedisTenantCache) redisKey(key string) string {
	return c.keyPrefix + key
}

// Get returns the cached tenant, or nil on a miss
func (c *RedisTenantCache) Get(ctx context.Context, key string) (*tenancy.Tenant, error) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tenant from Redis: %w", err)
	}

	t, err := decodeTenant(data)
	if err != nil {
		c.logger.Warn("Discarding undecodable tenant cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, c.redisKey(key)).Err()
		return nil, nil
	}
	return t, nil
}

// Set stores tenant as JSON with a TTL
func (c *RedisTenantCache) Set(ctx context.Context, key string, tenant *tenancy.Tenant, ttl time.Duration) error {
	if tenant == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	data, err := encodeTenant(tenant)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.redisKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write tenant to Redis: %w", err)
	}
	return nil
}

// Delete removes the given keys
func (c *RedisTenantCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, key := range keys {
		full[i] = c.redisKey(key)
	}
	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("failed to evict tenant keys from Redis: %w", err)
	}
	return nil
}

// Close closes the client when this cache created it
func (c *RedisTenantCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

// cachedTenant is the JSON shape stored in Redis
type cachedTenant struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Subdomain          string     `json:"subdomain"`
	ConnectionString   string     `json:"connection_string"`
	IsActive           bool       `json:"is_active"`
	Settings           string     `json:"settings,omitempty"`
	ContactEmail       string     `json:"contact_email,omitempty"`
	ContactPhone       string     `json:"contact_phone,omitempty"`
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"`
	Version            int        `json:"version"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func encodeTenant(t *tenancy.Tenant) ([]byte, error) {
	data, err := json.Marshal(cachedTenant{
		ID:                 t.ID,
		Name:               t.Name,
		Subdomain:          t.Subdomain,
		ConnectionString:   t.ConnectionString,
		IsActive:           t.IsActive,
		Settings:           t.Settings,
		ContactEmail:       t.ContactEmail,
		ContactPhone:       t.ContactPhone,
		SubscriptionExpiry: t.SubscriptionExpiry,
		Version:            t.Version,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode tenant: %w", err)
	}
	return data, nil
}

func decodeTenant(data []byte) (*tenancy.Tenant, error) {
	var ct cachedTenant
	if err := json.Unmarshal(data, &ct); err != nil {
		return nil, err
	}
	if ct.ID == uuid.Nil {
		return nil, errors.New("cached tenant has no id")
	}
	return &tenancy.Tenant{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        ct.ID,
				CreatedAt: ct.CreatedAt,
				UpdatedAt: ct.UpdatedAt,
			},
			Version: ct.Version,
		},
		Name:               ct.Name,
		Subdomain:          ct.Subdomain,
		ConnectionString:   ct.ConnectionString,
		IsActive:           ct.IsActive,
		Settings:           ct.Settings,
		ContactEmail:       ct.ContactEmail,
		ContactPhone:       ct.ContactPhone,
		SubscriptionExpiry: ct.SubscriptionExpiry,
	}, nil
}

var _ tenancy.TenantCache = (*RedisTenantCache)(nil)
