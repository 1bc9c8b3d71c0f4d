package tenancy

import (
	"github.com/hrapi/backend/internal/domain/shared"
)

// AggregateTypeTenant is the aggregate type carried by tenant events
const AggregateTypeTenant = "Tenant"

// Tenant event types
const (
	EventTypeTenantCreated     = "TenantCreated"
	EventTypeTenantUpdated     = "TenantUpdated"
	EventTypeTenantDeactivated = "TenantDeactivated"

	EventTypeTenantConnectionRotated = "TenantConnectionRotated"
)

// TenantEvent is raised whenever a directory entry changes. Subdomain is
// carried so cache entries keyed by subdomain can be evicted.
type TenantEvent struct {
	shared.BaseDomainEvent
	Subdomain string `json:"subdomain"`
	IsActive  bool   `json:"is_active"`

	// PreviousConnection is set on rotation events only
	PreviousConnection string `json:"-"`
}

// NewTenantEvent snapshots t into an event of the given type
func NewTenantEvent(eventType string, t *Tenant) *TenantEvent {
	return &TenantEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeTenant, t.ID, t.ID),
		Subdomain:       t.Subdomain,
		IsActive:        t.IsActive,
	}
}
