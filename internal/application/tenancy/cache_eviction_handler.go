package tenancy

import (
	"context"

	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// CacheEvictionHandler drops cached directory entries whenever a tenant changes
type CacheEvictionHandler struct {
	cache  tenancy.TenantCache
	logger *zap.Logger
}

// NewCacheEvictionHandler creates a new cache eviction handler
func NewCacheEvictionHandler(cache tenancy.TenantCache, logger *zap.Logger) *CacheEvictionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheEvictionHandler{cache: cache, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *CacheEvictionHandler) EventTypes() []string {
	return []string{
		tenancy.EventTypeTenantUpdated,
		tenancy.EventTypeTenantDeactivated,
		tenancy.EventTypeTenantConnectionRotated,
	}
}

// Handle implements shared.EventHandler
func (h *CacheEvictionHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*tenancy.TenantEvent)
	if !ok {
		return nil
	}
	keys := []string{tenancy.CacheKeyByID(e.AggregateID().String())}
	if e.Subdomain != "" {
		keys = append(keys, tenancy.CacheKeyBySubdomain(e.Subdomain))
	}
	if err := h.cache.Delete(ctx, keys...); err != nil {
		return err
	}
	h.logger.Debug("Tenant cache entries evicted",
		zap.String("tenant_id", e.AggregateID().String()),
		zap.String("event_type", e.EventType()),
		zap.Strings("keys", keys))
	return nil
}

var _ shared.EventHandler = (*CacheEvictionHandler)(nil)
