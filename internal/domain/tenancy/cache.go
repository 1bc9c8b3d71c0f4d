package tenancy

import (
	"context"
	"time"
)

// DefaultCacheTTL is how long a resolved tenant stays cached
const DefaultCacheTTL = 30 * time.Minute

// CacheKeyByID is the cache key for a tenant looked up by id
func CacheKeyByID(id string) string {
	return "tenant_id_" + id
}

// CacheKeyBySubdomain is the cache key for a tenant looked up by subdomain
func CacheKeyBySubdomain(subdomain string) string {
	return "tenant_subdomain_" + subdomain
}

// TenantCache stores resolved directory entries keyed by lookup.
// Get returns (nil, nil) on a miss. Implementations must be safe for
// concurrent use and must hand out copies, never shared pointers.
type TenantCache interface {
	Get(ctx context.Context, key string) (*Tenant, error)
	Set(ctx context.Context, key string, tenant *Tenant, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Snapshot returns a detached copy of t without pending events
func (t *Tenant) Snapshot() *Tenant {
	if t == nil {
		return nil
	}
	c := *t
	c.ClearDomainEvents()
	if t.SubscriptionExpiry != nil {
		exp := *t.SubscriptionExpiry
		c.SubscriptionExpiry = &exp
	}
	return &c
}
