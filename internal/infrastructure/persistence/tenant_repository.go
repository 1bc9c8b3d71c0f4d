package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTenantDirectory implements tenancy.Directory over the shared directory database
type GormTenantDirectory struct {
	db *gorm.DB
}

// NewGormTenantDirectory creates a new GormTenantDirectory
func NewGormTenantDirectory(db *gorm.DB) *GormTenantDirectory {
	return &GormTenantDirectory{db: db}
}

// FindByID finds a tenant regardless of its active flag
func (r *GormTenantDirectory) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	return r.take(r.db.WithContext(ctx).Where("id = ?", id))
}

// FindActiveByID finds an active tenant by id
func (r *GormTenantDirectory) FindActiveByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	return r.take(r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true))
}

// FindActiveBySubdomain finds an active tenant by subdomain
func (r *GormTenantDirectory) FindActiveBySubdomain(ctx context.Context, subdomain string) (*tenancy.Tenant, error) {
	if subdomain == "" {
		return nil, nil
	}
	return r.take(r.db.WithContext(ctx).Where("subdomain = ? AND is_active = ?", subdomain, true))
}

// ExistsBySubdomainOrName reports whether either value is already taken
func (r *GormTenantDirectory) ExistsBySubdomainOrName(ctx context.Context, subdomain, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TenantModel{}).
		Where("subdomain = ? OR name = ?", subdomain, name).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check tenant existence: %w", err)
	}
	return count > 0, nil
}

// FindAll lists every tenant, active or not, by name
func (r *GormTenantDirectory) FindAll(ctx context.Context) ([]tenancy.Tenant, error) {
	var rows []models.TenantModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}
	tenants := make([]tenancy.Tenant, len(rows))
	for i := range rows {
		tenants[i] = *rows[i].ToDomain()
	}
	return tenants, nil
}

// Save inserts or updates a tenant
func (r *GormTenantDirectory) Save(ctx context.Context, t *tenancy.Tenant) error {
	if err := r.db.WithContext(ctx).Save(models.TenantModelFromDomain(t)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewDomainErrorWithCause(shared.CodeDuplicateKey,
				fmt.Sprintf("Tenant with subdomain '%s' or name '%s' already exists", t.Subdomain, t.Name), err)
		}
		return fmt.Errorf("failed to save tenant: %w", err)
	}
	return nil
}

func (r *GormTenantDirectory) take(q *gorm.DB) (*tenancy.Tenant, error) {
	var m models.TenantModel
	if err := q.Take(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find tenant: %w", err)
	}
	return m.ToDomain(), nil
}

var _ tenancy.Directory = (*GormTenantDirectory)(nil)
