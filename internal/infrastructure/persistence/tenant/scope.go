// Package tenant provides tenant row isolation for GORM.
//
// Callbacks registered by EnableAutoTenantFilter read the tenant id from the
// statement context, stamp it on inserted rows and add WHERE tenant_id = ? to
// every query, update and delete on a model that has a tenant_id column.
//
// Usage:
//
//	_ = tenant.EnableAutoTenantFilter(gormDB, true)
//	scoped := tenant.Bind(ctx, gormDB, tenantID)
//	scoped.Find(&employees) // WHERE tenant_id = 'xxx' is auto-added
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/infrastructure/logger"
	"gorm.io/gorm"
)

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when tenant_id format is invalid
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// ErrTenantMismatch is returned when a row names a tenant other than the context tenant
var ErrTenantMismatch = errors.New("row tenant_id does not match the context tenant")

// Bind returns a session whose statements run for tenantID
func Bind(ctx context.Context, db *gorm.DB, tenantID uuid.UUID) *gorm.DB {
	return db.WithContext(logger.ContextWithTenantID(ctx, tenantID.String()))
}
