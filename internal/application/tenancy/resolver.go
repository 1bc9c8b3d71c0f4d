package tenancy

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Request signal names
const (
	HeaderTenantID = "X-Tenant-ID"
	ClaimTenantID  = "tenant_id"
)

// Resolution sources reported to metrics
const (
	SourceHeader    = "header"
	SourceSubdomain = "subdomain"
	SourceClaim     = "claim"
	SourceNone      = "none"
)

// RequestContext is the view of an inbound request the resolver reads
type RequestContext interface {
	Header(name string) (string, bool)
	Host() string
	Claim(name string) string
}

// RequestValues is a static RequestContext
type RequestValues struct {
	Headers  map[string]string
	HostName string
	Claims   map[string]string
}

// Header returns the named header value and whether it was sent
func (r RequestValues) Header(name string) (string, bool) {
	v, ok := r.Headers[name]
	return v, ok
}

// Host returns the request host
func (r RequestValues) Host() string { return r.HostName }

// Claim returns the named claim value
func (r RequestValues) Claim(name string) string { return r.Claims[name] }

// ResolverMetrics receives resolver cache and resolution outcomes
type ResolverMetrics interface {
	RecordCacheHit(ctx context.Context, lookup string)
	RecordCacheMiss(ctx context.Context, lookup string)
	RecordResolution(ctx context.Context, source string)
}

type noopResolverMetrics struct{}

func (noopResolverMetrics) RecordCacheHit(context.Context, string)   {}
func (noopResolverMetrics) RecordCacheMiss(context.Context, string)  {}
func (noopResolverMetrics) RecordResolution(context.Context, string) {}

// Resolver maps requests to tenant ids and reads directory entries through
// the tenant cache. Concurrent misses for the same key share one directory read.
type Resolver struct {
	directory tenancy.Directory
	cache     tenancy.TenantCache
	ttl       time.Duration
	metrics   ResolverMetrics
	logger    *zap.Logger
	group     singleflight.Group
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithCacheTTL sets how long looked-up tenants stay cached
func WithCacheTTL(ttl time.Duration) ResolverOption {
	return func(r *Resolver) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithResolverMetrics sets the metrics sink
func WithResolverMetrics(m ResolverMetrics) ResolverOption {
	return func(r *Resolver) {
		if m != nil {
			r.metrics = m
		}
	}
}

// WithResolverLogger sets the logger
func WithResolverLogger(logger *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a resolver over a directory and cache
func NewResolver(directory tenancy.Directory, cache tenancy.TenantCache, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		directory: directory,
		cache:     cache,
		ttl:       tenancy.DefaultCacheTTL,
		metrics:   noopResolverMetrics{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveTenantID returns the tenant id carried by the request, or "" when
// there is none. Header wins over subdomain, subdomain over claim. A sent
// header or a subdomain host decides the result even when it names no tenant.
func (r *Resolver) ResolveTenantID(ctx context.Context, req RequestContext) (string, error) {
	if id, ok := req.Header(HeaderTenantID); ok {
		r.metrics.RecordResolution(ctx, SourceHeader)
		return strings.TrimSpace(id), nil
	}

	if subdomain := SubdomainOf(req.Host()); subdomain != "" {
		t, err := r.TenantBySubdomain(ctx, subdomain)
		if err != nil {
			return "", err
		}
		if t == nil {
			r.metrics.RecordResolution(ctx, SourceNone)
			return "", nil
		}
		r.metrics.RecordResolution(ctx, SourceSubdomain)
		return t.ID.String(), nil
	}

	if claim := strings.TrimSpace(req.Claim(ClaimTenantID)); claim != "" {
		r.metrics.RecordResolution(ctx, SourceClaim)
		return claim, nil
	}

	r.metrics.RecordResolution(ctx, SourceNone)
	return "", nil
}

// IsTenantActive reports whether tenantID names an active tenant.
// Unknown or malformed ids are inactive.
func (r *Resolver) IsTenantActive(ctx context.Context, tenantID string) (bool, error) {
	t, err := r.TenantByID(ctx, tenantID)
	if err != nil {
		return false, err
	}
	return t != nil && t.IsActive, nil
}

// GetConnectionDescriptor returns the tenant's data store descriptor, or ""
// when the tenant is unknown or inactive
func (r *Resolver) GetConnectionDescriptor(ctx context.Context, tenantID string) (string, error) {
	t, err := r.TenantByID(ctx, tenantID)
	if err != nil || t == nil {
		return "", err
	}
	return t.ConnectionString, nil
}

// TenantByID returns the active tenant with the given id, or nil
func (r *Resolver) TenantByID(ctx context.Context, tenantID string) (*tenancy.Tenant, error) {
	id, err := uuid.Parse(strings.TrimSpace(tenantID))
	if err != nil {
		return nil, nil
	}
	return r.cached(ctx, "id", tenancy.CacheKeyByID(id.String()), func(ctx context.Context) (*tenancy.Tenant, error) {
		return r.directory.FindActiveByID(ctx, id)
	})
}

// TenantBySubdomain returns the active tenant serving subdomain, or nil
func (r *Resolver) TenantBySubdomain(ctx context.Context, subdomain string) (*tenancy.Tenant, error) {
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if subdomain == "" {
		return nil, nil
	}
	return r.cached(ctx, "subdomain", tenancy.CacheKeyBySubdomain(subdomain), func(ctx context.Context) (*tenancy.Tenant, error) {
		return r.directory.FindActiveBySubdomain(ctx, subdomain)
	})
}

// Evict drops every cache entry for t
func (r *Resolver) Evict(ctx context.Context, t *tenancy.Tenant) error {
	if t == nil {
		return nil
	}
	return r.cache.Delete(ctx, tenancy.CacheKeyByID(t.ID.String()), tenancy.CacheKeyBySubdomain(t.Subdomain))
}

func (r *Resolver) cached(
	ctx context.Context,
	lookup, key string,
	load func(ctx context.Context) (*tenancy.Tenant, error),
) (*tenancy.Tenant, error) {
	t, err := r.cache.Get(ctx, key)
	if err != nil {
		r.logger.Warn("Tenant cache read failed",
			zap.String("key", key),
			zap.Error(err),
		)
	} else if t != nil {
		r.metrics.RecordCacheHit(ctx, lookup)
		return t, nil
	}
	r.metrics.RecordCacheMiss(ctx, lookup)

	v, err, _ := r.group.Do(key, func() (any, error) {
		found, err := load(ctx)
		if err != nil || found == nil {
			return found, err
		}
		if err := r.cache.Set(ctx, key, found, r.ttl); err != nil {
			r.logger.Warn("Tenant cache write failed",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return found, nil
	})
	if err != nil {
		return nil, err
	}
	found, _ := v.(*tenancy.Tenant)
	return found.Snapshot(), nil
}

// SubdomainOf returns the leading label of a host with at least three
// labels, or "". Ports are ignored and IP addresses never yield a subdomain.
func SubdomainOf(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) < 3 || labels[0] == "" {
		return ""
	}
	return strings.ToLower(labels[0])
}
