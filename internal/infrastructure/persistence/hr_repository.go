package persistence

import (
	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormEmployeeRepository implements hr.EmployeeRepository
type GormEmployeeRepository struct {
	*gormRepository[models.EmployeeModel, hr.Employee, *models.EmployeeModel]
}

// NewGormEmployeeRepository creates an employee repository bound to tenantID
func NewGormEmployeeRepository(db *gorm.DB, tenantID uuid.UUID) *GormEmployeeRepository {
	return &GormEmployeeRepository{
		newGormRepository[models.EmployeeModel, hr.Employee, *models.EmployeeModel](
			db, tenantID, "Employee", EmployeeFilterFields, "last_name, first_name, employee_number"),
	}
}

// GormLeaveRequestRepository implements hr.LeaveRequestRepository
type GormLeaveRequestRepository struct {
	*gormRepository[models.LeaveRequestModel, hr.LeaveRequest, *models.LeaveRequestModel]
}

// NewGormLeaveRequestRepository creates a leave request repository bound to tenantID
func NewGormLeaveRequestRepository(db *gorm.DB, tenantID uuid.UUID) *GormLeaveRequestRepository {
	return &GormLeaveRequestRepository{
		newGormRepository[models.LeaveRequestModel, hr.LeaveRequest, *models.LeaveRequestModel](
			db, tenantID, "Leave request", LeaveRequestFilterFields, "start_date DESC, created_at DESC"),
	}
}

// GormDepartmentRepository implements hr.DepartmentRepository
type GormDepartmentRepository struct {
	*gormRepository[models.DepartmentModel, hr.Department, *models.DepartmentModel]
}

// NewGormDepartmentRepository creates a department repository bound to tenantID
func NewGormDepartmentRepository(db *gorm.DB, tenantID uuid.UUID) *GormDepartmentRepository {
	return &GormDepartmentRepository{
		newGormRepository[models.DepartmentModel, hr.Department, *models.DepartmentModel](
			db, tenantID, "Department", DepartmentFilterFields, "code"),
	}
}

// GormPositionRepository implements hr.PositionRepository
type GormPositionRepository struct {
	*gormRepository[models.PositionModel, hr.Position, *models.PositionModel]
}

// NewGormPositionRepository creates a position repository bound to tenantID
func NewGormPositionRepository(db *gorm.DB, tenantID uuid.UUID) *GormPositionRepository {
	return &GormPositionRepository{
		newGormRepository[models.PositionModel, hr.Position, *models.PositionModel](
			db, tenantID, "Position", PositionFilterFields, "code"),
	}
}

// GormLeaveTypeRepository implements hr.LeaveTypeRepository
type GormLeaveTypeRepository struct {
	*gormRepository[models.LeaveTypeModel, hr.LeaveType, *models.LeaveTypeModel]
}

// NewGormLeaveTypeRepository creates a leave type repository bound to tenantID
func NewGormLeaveTypeRepository(db *gorm.DB, tenantID uuid.UUID) *GormLeaveTypeRepository {
	return &GormLeaveTypeRepository{
		newGormRepository[models.LeaveTypeModel, hr.LeaveType, *models.LeaveTypeModel](
			db, tenantID, "Leave type", LeaveTypeFilterFields, "code"),
	}
}

// GormLeaveBalanceRepository implements hr.LeaveBalanceRepository
type GormLeaveBalanceRepository struct {
	*gormRepository[models.LeaveBalanceModel, hr.LeaveBalance, *models.LeaveBalanceModel]
}

// NewGormLeaveBalanceRepository creates a leave balance repository bound to tenantID
func NewGormLeaveBalanceRepository(db *gorm.DB, tenantID uuid.UUID) *GormLeaveBalanceRepository {
	return &GormLeaveBalanceRepository{
		newGormRepository[models.LeaveBalanceModel, hr.LeaveBalance, *models.LeaveBalanceModel](
			db, tenantID, "Leave balance", LeaveBalanceFilterFields, "year DESC, leave_type_id"),
	}
}

var (
	_ hr.EmployeeRepository     = (*GormEmployeeRepository)(nil)
	_ hr.LeaveRequestRepository = (*GormLeaveRequestRepository)(nil)
	_ hr.DepartmentRepository   = (*GormDepartmentRepository)(nil)
	_ hr.PositionRepository     = (*GormPositionRepository)(nil)
	_ hr.LeaveTypeRepository    = (*GormLeaveTypeRepository)(nil)
	_ hr.LeaveBalanceRepository = (*GormLeaveBalanceRepository)(nil)
)
