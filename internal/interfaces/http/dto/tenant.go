package dto

import (
	"time"

	apptenancy "github.com/hrapi/backend/internal/application/tenancy"
	"github.com/hrapi/backend/internal/domain/shared"
)

// CreateTenantRequest is the body of a tenant registration
type CreateTenantRequest struct {
	Name               string `json:"name" binding:"required,max=100"`
	Subdomain          string `json:"subdomain" binding:"required,max=63"`
	ConnectionString   string `json:"connection_string" binding:"required,max=500"`
	Settings           string `json:"settings"`
	ContactEmail       string `json:"contact_email" binding:"omitempty,email,max=100"`
	ContactPhone       string `json:"contact_phone" binding:"max=20"`
	SubscriptionExpiry string `json:"subscription_expiry" binding:"omitempty,datetime=2006-01-02"`
	SkipProvision      bool   `json:"skip_provision"`
}

// ToInput converts the request into service input
func (r CreateTenantRequest) ToInput() (apptenancy.CreateTenantInput, error) {
	expiry, err := parseOptionalDate(r.SubscriptionExpiry)
	if err != nil {
		return apptenancy.CreateTenantInput{}, shared.NewInvalidInputError("Invalid subscription expiry")
	}
	return apptenancy.CreateTenantInput{
		Name:               r.Name,
		Subdomain:          r.Subdomain,
		ConnectionString:   r.ConnectionString,
		Settings:           r.Settings,
		ContactEmail:       r.ContactEmail,
		ContactPhone:       r.ContactPhone,
		SubscriptionExpiry: expiry,
		SkipProvision:      r.SkipProvision,
	}, nil
}

// RotateConnectionRequest replaces a tenant's connection descriptor
type RotateConnectionRequest struct {
	ConnectionString string `json:"connection_string" binding:"required,max=500"`
}

// UpdateTenantSettingsRequest replaces a tenant's settings and contact details
type UpdateTenantSettingsRequest struct {
	Settings           string `json:"settings"`
	ContactEmail       string `json:"contact_email" binding:"omitempty,email,max=100"`
	ContactPhone       string `json:"contact_phone" binding:"max=20"`
	SubscriptionExpiry string `json:"subscription_expiry" binding:"omitempty,datetime=2006-01-02"`
}

// ToInput converts the request into service input
func (r UpdateTenantSettingsRequest) ToInput() (apptenancy.UpdateSettingsInput, error) {
	expiry, err := parseOptionalDate(r.SubscriptionExpiry)
	if err != nil {
		return apptenancy.UpdateSettingsInput{}, shared.NewInvalidInputError("Invalid subscription expiry")
	}
	return apptenancy.UpdateSettingsInput{
		Settings:           r.Settings,
		ContactEmail:       r.ContactEmail,
		ContactPhone:       r.ContactPhone,
		SubscriptionExpiry: expiry,
	}, nil
}

// RevokeTokenRequest blacklists an access token
type RevokeTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// CurrentTenantResponse describes the tenant a request resolved to
type CurrentTenantResponse struct {
	Tenant   apptenancy.TenantDTO `json:"tenant"`
	Strategy string               `json:"strategy"`
}

// HealthResponse is returned by the health endpoints
type HealthResponse struct {
	Status    string    `json:"status"`
	Component string    `json:"component,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
