package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/infrastructure/persistence/tenant"
	"gorm.io/gorm"
)

// GormStore is a handle on one tenant's HR data. The handle carries the tenant
// id into every statement; the tenant callbacks registered on db filter and
// stamp rows with it, so no other tenant's rows are reachable.
type GormStore struct {
	db       *gorm.DB
	tenantID uuid.UUID
}

// NewGormStore binds db to tenantID
func NewGormStore(db *gorm.DB, tenantID uuid.UUID) *GormStore {
	return &GormStore{db: db, tenantID: tenantID}
}

// TenantID returns the tenant the store is bound to
func (s *GormStore) TenantID() uuid.UUID {
	return s.tenantID
}

// Employees returns the employee repository
func (s *GormStore) Employees() hr.EmployeeRepository {
	return NewGormEmployeeRepository(s.db, s.tenantID)
}

// LeaveRequests returns the leave request repository
func (s *GormStore) LeaveRequests() hr.LeaveRequestRepository {
	return NewGormLeaveRequestRepository(s.db, s.tenantID)
}

// Departments returns the department repository
func (s *GormStore) Departments() hr.DepartmentRepository {
	return NewGormDepartmentRepository(s.db, s.tenantID)
}

// Positions returns the position repository
func (s *GormStore) Positions() hr.PositionRepository {
	return NewGormPositionRepository(s.db, s.tenantID)
}

// LeaveTypes returns the leave type repository
func (s *GormStore) LeaveTypes() hr.LeaveTypeRepository {
	return NewGormLeaveTypeRepository(s.db, s.tenantID)
}

// LeaveBalances returns the leave balance repository
func (s *GormStore) LeaveBalances() hr.LeaveBalanceRepository {
	return NewGormLeaveBalanceRepository(s.db, s.tenantID)
}

// Transaction runs fn on a store bound to one database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx hr.Store) error) error {
	return tenant.Bind(ctx, s.db, s.tenantID).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, tenantID: s.tenantID})
	})
}

var _ hr.Store = (*GormStore)(nil)
