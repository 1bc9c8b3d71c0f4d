package tenancy

import (
	"context"

	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// PoolCloser drops a cached tenant connection pool
type PoolCloser interface {
	ClosePool(descriptor string) error
}

// PoolEvictionHandler closes the pool a tenant used before its connection
// was rotated
type PoolEvictionHandler struct {
	pools  PoolCloser
	logger *zap.Logger
}

// NewPoolEvictionHandler creates a new pool eviction handler
func NewPoolEvictionHandler(pools PoolCloser, logger *zap.Logger) *PoolEvictionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PoolEvictionHandler{pools: pools, logger: logger}
}

// EventTypes implements shared.EventHandler
func (h *PoolEvictionHandler) EventTypes() []string {
	return []string{tenancy.EventTypeTenantConnectionRotated}
}

// Handle implements shared.EventHandler
func (h *PoolEvictionHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	e, ok := event.(*tenancy.TenantEvent)
	if !ok || e.PreviousConnection == "" {
		return nil
	}
	if err := h.pools.ClosePool(e.PreviousConnection); err != nil {
		return err
	}
	h.logger.Info("Previous tenant pool closed",
		zap.String("tenant_id", e.AggregateID().String()),
		zap.String("connection", tenancy.MaskConnectionString(e.PreviousConnection)))
	return nil
}

var _ shared.EventHandler = (*PoolEvictionHandler)(nil)
