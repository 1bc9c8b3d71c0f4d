package tenancy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"go.uber.org/zap"
)

// StoreProvisioner creates the HR schema in a tenant's data store
type StoreProvisioner interface {
	ProvisionStore(ctx context.Context, tenantID uuid.UUID, descriptor string) (hr.Store, error)
}

// ProvisioningService manages directory entries and their data stores
type ProvisioningService struct {
	directory      tenancy.Directory
	provisioner    StoreProvisioner
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProvisioningService creates a new provisioning service.
// eventPublisher may be nil.
func NewProvisioningService(
	directory tenancy.Directory,
	provisioner StoreProvisioner,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *ProvisioningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProvisioningService{
		directory:      directory,
		provisioner:    provisioner,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Create registers a new tenant. Unless SkipProvision is set the tenant's
// store is provisioned and seeded right after the directory entry is saved.
func (s *ProvisioningService) Create(ctx context.Context, input CreateTenantInput) (*ProvisionResult, error) {
	t, err := tenancy.NewTenant(input.Name, input.Subdomain, input.ConnectionString)
	if err != nil {
		return nil, err
	}
	if err := t.SetProfile(input.Settings, input.ContactEmail, input.ContactPhone, input.SubscriptionExpiry); err != nil {
		return nil, err
	}

	s.logger.Info("Creating new tenant",
		zap.String("name", t.Name),
		zap.String("subdomain", t.Subdomain),
		zap.String("connection", t.MaskedConnectionString()))

	exists, err := s.directory.ExistsBySubdomainOrName(ctx, t.Subdomain, t.Name)
	if err != nil {
		return nil, fmt.Errorf("check tenant uniqueness: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError(shared.CodeDuplicateKey,
			fmt.Sprintf("Tenant with subdomain '%s' or name '%s' already exists", t.Subdomain, t.Name))
	}

	if err := s.save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("Tenant created successfully",
		zap.String("tenant_id", t.ID.String()),
		zap.String("subdomain", t.Subdomain))

	result := &ProvisionResult{Tenant: ToTenantDTO(t)}
	if input.SkipProvision {
		return result, nil
	}
	seeded, err := s.provision(ctx, t)
	if err != nil {
		return nil, err
	}
	result.Seeded = seeded
	return result, nil
}

// Provision creates the HR schema in the tenant's store and seeds reference
// data when the store is still empty
func (s *ProvisioningService) Provision(ctx context.Context, id uuid.UUID) (*ProvisionResult, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	seeded, err := s.provision(ctx, t)
	if err != nil {
		return nil, err
	}
	return &ProvisionResult{Tenant: ToTenantDTO(t), Seeded: seeded}, nil
}

// GetByID returns a tenant, active or not
func (s *ProvisioningService) GetByID(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToTenantDTO(t)
	return &dto, nil
}

// List returns every tenant ordered by name
func (s *ProvisioningService) List(ctx context.Context) ([]TenantDTO, error) {
	tenants, err := s.directory.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	return ToTenantDTOs(tenants), nil
}

// Activate re-enables a tenant
func (s *ProvisioningService) Activate(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	return s.mutate(ctx, id, "Tenant activated", func(t *tenancy.Tenant) error {
		t.Activate()
		return nil
	})
}

// Deactivate soft-disables a tenant. Resolution stops immediately because
// the deactivation event evicts its cache entries.
func (s *ProvisioningService) Deactivate(ctx context.Context, id uuid.UUID) (*TenantDTO, error) {
	return s.mutate(ctx, id, "Tenant deactivated", func(t *tenancy.Tenant) error {
		t.Deactivate()
		return nil
	})
}

// RotateConnection points a tenant at a new data store descriptor
func (s *ProvisioningService) RotateConnection(ctx context.Context, id uuid.UUID, connectionString string) (*TenantDTO, error) {
	return s.mutate(ctx, id, "Tenant connection rotated", func(t *tenancy.Tenant) error {
		return t.RotateConnection(connectionString)
	})
}

// UpdateSettings replaces a tenant's settings and contact details
func (s *ProvisioningService) UpdateSettings(ctx context.Context, id uuid.UUID, input UpdateSettingsInput) (*TenantDTO, error) {
	return s.mutate(ctx, id, "Tenant settings updated", func(t *tenancy.Tenant) error {
		return t.UpdateProfile(input.Settings, input.ContactEmail, input.ContactPhone, input.SubscriptionExpiry)
	})
}

func (s *ProvisioningService) mutate(ctx context.Context, id uuid.UUID, msg string, fn func(t *tenancy.Tenant) error) (*TenantDTO, error) {
	t, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := s.save(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info(msg,
		zap.String("tenant_id", t.ID.String()),
		zap.Bool("is_active", t.IsActive),
		zap.String("connection", t.MaskedConnectionString()))
	dto := ToTenantDTO(t)
	return &dto, nil
}

func (s *ProvisioningService) find(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	t, err := s.directory.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find tenant: %w", err)
	}
	if t == nil {
		return nil, shared.NewNotFoundError("Tenant", id)
	}
	return t, nil
}

func (s *ProvisioningService) save(ctx context.Context, t *tenancy.Tenant) error {
	if err := s.directory.Save(ctx, t); err != nil {
		s.logger.Error("Failed to save tenant",
			zap.String("tenant_id", t.ID.String()),
			zap.Error(err))
		return err
	}

	events := t.GetDomainEvents()
	t.ClearDomainEvents()
	if s.eventPublisher == nil || len(events) == 0 {
		return nil
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish tenant events",
			zap.String("tenant_id", t.ID.String()),
			zap.Error(err))
	}
	return nil
}

func (s *ProvisioningService) provision(ctx context.Context, t *tenancy.Tenant) (SeedSummary, error) {
	store, err := s.provisioner.ProvisionStore(ctx, t.ID, t.ConnectionString)
	if err != nil {
		s.logger.Error("Failed to provision tenant store",
			zap.String("tenant_id", t.ID.String()),
			zap.String("connection", t.MaskedConnectionString()),
			zap.Error(err))
		return SeedSummary{}, fmt.Errorf("provision tenant store: %w", err)
	}

	seeded, err := SeedReferenceData(ctx, store)
	if err != nil {
		return SeedSummary{}, fmt.Errorf("seed tenant store: %w", err)
	}
	s.logger.Info("Tenant store ready",
		zap.String("tenant_id", t.ID.String()),
		zap.Int("departments", seeded.Departments),
		zap.Int("positions", seeded.Positions),
		zap.Int("leave_types", seeded.LeaveTypes))
	return seeded, nil
}
