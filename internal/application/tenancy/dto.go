package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/tenancy"
)

// CreateTenantInput contains input for creating a tenant
type CreateTenantInput struct {
	Name               string
	Subdomain          string
	ConnectionString   string
	Settings           string
	ContactEmail       string
	ContactPhone       string
	SubscriptionExpiry *time.Time
	SkipProvision      bool // register only; provision the store later
}

// UpdateSettingsInput replaces a tenant's settings and contact details
type UpdateSettingsInput struct {
	Settings           string
	ContactEmail       string
	ContactPhone       string
	SubscriptionExpiry *time.Time
}

// TenantDTO is a directory entry safe to return to callers.
// The connection descriptor is always masked.
type TenantDTO struct {
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

// ProvisionResult reports the outcome of provisioning a tenant store
type ProvisionResult struct {
	Tenant TenantDTO   `json:"tenant"`
	Seeded SeedSummary `json:"seeded"`
}

// ToTenantDTO converts a tenant into its masked transfer form
func ToTenantDTO(t *tenancy.Tenant) TenantDTO {
	return TenantDTO{
		ID:                 t.ID,
		Name:               t.Name,
		Subdomain:          t.Subdomain,
		ConnectionString:   t.MaskedConnectionString(),
		IsActive:           t.IsActive,
		Settings:           t.Settings,
		ContactEmail:       t.ContactEmail,
		ContactPhone:       t.ContactPhone,
		SubscriptionExpiry: t.SubscriptionExpiry,
		Version:            t.Version,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

// ToTenantDTOs converts a list of tenants
func ToTenantDTOs(tenants []tenancy.Tenant) []TenantDTO {
	result := make([]TenantDTO, len(tenants))
	for i := range tenants {
		result[i] = ToTenantDTO(&tenants[i])
	}
	return result
}
