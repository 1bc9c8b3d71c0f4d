package hr

import (
	"context"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
)

// EmployeeRepository persists employees
type EmployeeRepository = shared.Repository[Employee]

// LeaveRequestRepository persists leave requests
type LeaveRequestRepository = shared.Repository[LeaveRequest]

// DepartmentRepository persists departments
type DepartmentRepository = shared.Repository[Department]

// PositionRepository persists positions
type PositionRepository = shared.Repository[Position]

// LeaveTypeRepository persists leave types
type LeaveTypeRepository = shared.Repository[LeaveType]

// LeaveBalanceRepository persists leave balances
type LeaveBalanceRepository = shared.Repository[LeaveBalance]

// Store is a handle bound to exactly one tenant's data. Every repository it
// returns reads and writes only that tenant's rows.
type Store interface {
	TenantID() uuid.UUID
	Employees() EmployeeRepository
	LeaveRequests() LeaveRequestRepository
	Departments() DepartmentRepository
	Positions() PositionRepository
	LeaveTypes() LeaveTypeRepository
	LeaveBalances() LeaveBalanceRepository
	// Transaction runs fn against a store bound to a single database transaction
	Transaction(ctx context.Context, fn func(tx Store) error) error
}
