package tenancy

import (
	"regexp"
	"strings"
	"time"

	"github.com/hrapi/backend/internal/domain/shared"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// Tenant is a directory entry: one isolated customer with its own data store
type Tenant struct {
	shared.BaseAggregateRoot
	Name               string
	Subdomain          string
	ConnectionString   string
	IsActive           bool
	Settings           string
	ContactEmail       string
	ContactPhone       string
	SubscriptionExpiry *time.Time
}

// NewTenant creates an active tenant
func NewTenant(name, subdomain, connectionString string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))

	if err := validateTenantName(name); err != nil {
		return nil, err
	}
	if err := validateSubdomain(subdomain); err != nil {
		return nil, err
	}
	if err := validateConnectionString(connectionString); err != nil {
		return nil, err
	}

	t := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Subdomain:         subdomain,
		ConnectionString:  connectionString,
		IsActive:          true,
	}
	t.AddDomainEvent(NewTenantEvent(EventTypeTenantCreated, t))
	return t, nil
}

// Activate re-enables a deactivated tenant
func (t *Tenant) Activate() {
	if t.IsActive {
		return
	}
	t.IsActive = true
	t.changed(EventTypeTenantUpdated)
}

// Deactivate soft-disables the tenant; tenants are never hard-deleted
func (t *Tenant) Deactivate() {
	if !t.IsActive {
		return
	}
	t.IsActive = false
	t.changed(EventTypeTenantDeactivated)
}

// RotateConnection points the tenant at a new data store
func (t *Tenant) RotateConnection(connectionString string) error {
	if err := validateConnectionString(connectionString); err != nil {
		return err
	}
	previous := t.ConnectionString
	t.ConnectionString = connectionString
	if previous == connectionString {
		t.changed(EventTypeTenantUpdated)
		return nil
	}
	t.Touch()
	t.IncrementVersion()
	e := NewTenantEvent(EventTypeTenantConnectionRotated, t)
	e.PreviousConnection = previous
	t.AddDomainEvent(e)
	return nil
}

// UpdateProfile replaces settings and contact details
func (t *Tenant) UpdateProfile(settings, contactEmail, contactPhone string, expiry *time.Time) error {
	if err := t.SetProfile(settings, contactEmail, contactPhone, expiry); err != nil {
		return err
	}
	t.changed(EventTypeTenantUpdated)
	return nil
}

// SetProfile sets settings and contact details without raising an event.
// Used while a new tenant is being assembled.
func (t *Tenant) SetProfile(settings, contactEmail, contactPhone string, expiry *time.Time) error {
	switch {
	case len(settings) > 2000:
		return shared.NewInvalidInputError("Settings cannot exceed 2000 characters")
	case len(contactEmail) > 100:
		return shared.NewInvalidInputError("Contact email cannot exceed 100 characters")
	case len(contactPhone) > 15:
		return shared.NewInvalidInputError("Contact phone cannot exceed 15 characters")
	}
	t.Settings = settings
	t.ContactEmail = contactEmail
	t.ContactPhone = contactPhone
	t.SubscriptionExpiry = expiry
	return nil
}

// IsSubscriptionExpired reports whether the subscription ended before now
func (t *Tenant) IsSubscriptionExpired(now time.Time) bool {
	return t.SubscriptionExpiry != nil && t.SubscriptionExpiry.Before(now)
}

// MaskedConnectionString returns the descriptor safe for logs and responses
func (t *Tenant) MaskedConnectionString() string {
	return MaskConnectionString(t.ConnectionString)
}

func (t *Tenant) changed(eventType string) {
	t.Touch()
	t.IncrementVersion()
	t.AddDomainEvent(NewTenantEvent(eventType, t))
}

func validateTenantName(name string) error {
	if name == "" {
		return shared.NewInvalidInputError("Tenant name is required")
	}
	if len(name) > 100 {
		return shared.NewInvalidInputError("Tenant name cannot exceed 100 characters")
	}
	return nil
}

func validateSubdomain(subdomain string) error {
	if subdomain == "" {
		return shared.NewInvalidInputError("Subdomain is required")
	}
	if len(subdomain) > 50 {
		return shared.NewInvalidInputError("Subdomain cannot exceed 50 characters")
	}
	if !subdomainPattern.MatchString(subdomain) {
		return shared.NewInvalidInputError("Subdomain may contain only lowercase letters, digits and hyphens")
	}
	return nil
}

func validateConnectionString(cs string) error {
	if strings.TrimSpace(cs) == "" {
		return shared.NewInvalidInputError("Connection string is required")
	}
	if len(cs) > 500 {
		return shared.NewInvalidInputError("Connection string cannot exceed 500 characters")
	}
	return nil
}
