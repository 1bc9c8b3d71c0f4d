package models

import (
	"time"

	"github.com/hrapi/backend/internal/domain/tenancy"
)

// TenantModel is the persistence model for a tenant directory entry
type TenantModel struct {
	AggregateModel
	Name               string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Subdomain          string `gorm:"type:varchar(50);not null;uniqueIndex"`
	ConnectionString   string `gorm:"type:varchar(500);not null;uniqueIndex"`
	IsActive           bool   `gorm:"not null;default:true;index"`
	Settings           string `gorm:"type:text"`
	ContactEmail       string `gorm:"type:varchar(100)"`
	ContactPhone       string `gorm:"type:varchar(15)"`
	SubscriptionExpiry *time.Time
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		Name:               m.Name,
		Subdomain:          m.Subdomain,
		ConnectionString:   m.ConnectionString,
		IsActive:           m.IsActive,
		Settings:           m.Settings,
		ContactEmail:       m.ContactEmail,
		ContactPhone:       m.ContactPhone,
		SubscriptionExpiry: m.SubscriptionExpiry,
	}
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Name = t.Name
	m.Subdomain = t.Subdomain
	m.ConnectionString = t.ConnectionString
	m.IsActive = t.IsActive
	m.Settings = t.Settings
	m.ContactEmail = t.ContactEmail
	m.ContactPhone = t.ContactPhone
	m.SubscriptionExpiry = t.SubscriptionExpiry
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}
