package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// EmployeeModel is the persistence model for the Employee aggregate
type EmployeeModel struct {
	TenantAggregateModel
	EmployeeNumber      string `gorm:"type:varchar(20);not null;index"`
	FirstName           string `gorm:"type:varchar(50);not null"`
	LastName            string `gorm:"type:varchar(50);not null"`
	MiddleName          string `gorm:"type:varchar(50)"`
	Email               string `gorm:"type:varchar(100);not null;index"`
	PhoneNumber         string `gorm:"type:varchar(15)"`
	DateOfBirth         *time.Time
	Gender              *hr.Gender `gorm:"type:smallint"`
	Address             string     `gorm:"type:varchar(200)"`
	HireDate            time.Time  `gorm:"not null"`
	TerminationDate     *time.Time
	DepartmentID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	PositionID          uuid.UUID           `gorm:"type:uuid;not null;index"`
	ManagerID           *uuid.UUID          `gorm:"type:uuid;index"`
	Status              hr.EmploymentStatus `gorm:"type:smallint;not null;default:1"`
	EmploymentType      hr.EmploymentType   `gorm:"type:smallint;not null;default:1"`
	Salary              *decimal.Decimal    `gorm:"type:decimal(18,2)"`
	Notes               string              `gorm:"type:varchar(500)"`
	IsDepartmentManager bool                `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (EmployeeModel) TableName() string {
	return "employees"
}

// ToDomain converts the persistence model to a domain Employee
func (m *EmployeeModel) ToDomain() *hr.Employee {
	return &hr.Employee{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		EmployeeDetails: hr.EmployeeDetails{
			EmployeeNumber:      m.EmployeeNumber,
			FirstName:           m.FirstName,
			LastName:            m.LastName,
			MiddleName:          m.MiddleName,
			Email:               m.Email,
			PhoneNumber:         m.PhoneNumber,
			DateOfBirth:         m.DateOfBirth,
			Gender:              m.Gender,
			Address:             m.Address,
			HireDate:            m.HireDate,
			TerminationDate:     m.TerminationDate,
			DepartmentID:        m.DepartmentID,
			PositionID:          m.PositionID,
			ManagerID:           m.ManagerID,
			Status:              m.Status,
			EmploymentType:      m.EmploymentType,
			Salary:              m.Salary,
			Notes:               m.Notes,
			IsDepartmentManager: m.IsDepartmentManager,
		},
	}
}

// FromDomain populates the persistence model from a domain Employee
func (m *EmployeeModel) FromDomain(e *hr.Employee) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	d := e.EmployeeDetails
	m.EmployeeNumber = d.EmployeeNumber
	m.FirstName = d.FirstName
	m.LastName = d.LastName
	m.MiddleName = d.MiddleName
	m.Email = d.Email
	m.PhoneNumber = d.PhoneNumber
	m.DateOfBirth = d.DateOfBirth
	m.Gender = d.Gender
	m.Address = d.Address
	m.HireDate = d.HireDate
	m.TerminationDate = d.TerminationDate
	m.DepartmentID = d.DepartmentID
	m.PositionID = d.PositionID
	m.ManagerID = d.ManagerID
	m.Status = d.Status
	m.EmploymentType = d.EmploymentType
	m.Salary = d.Salary
	m.Notes = d.Notes
	m.IsDepartmentManager = d.IsDepartmentManager
}

// LeaveRequestModel is the persistence model for the LeaveRequest aggregate
type LeaveRequestModel struct {
	TenantAggregateModel
	EmployeeID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates,priority:1"`
	LeaveTypeID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	StartDate        time.Time      `gorm:"not null;index:idx_leave_requests_employee_dates,priority:2"`
	EndDate          time.Time      `gorm:"not null;index:idx_leave_requests_employee_dates,priority:3"`
	TotalDays        int            `gorm:"not null"`
	Reason           string         `gorm:"type:varchar(500)"`
	Status           hr.LeaveStatus `gorm:"type:smallint;not null;default:1;index"`
	ApprovedAt       *time.Time
	ApprovedBy       *uuid.UUID `gorm:"type:uuid"`
	ApprovalComments string     `gorm:"type:varchar(500)"`
	RejectedAt       *time.Time
	RejectedBy       *uuid.UUID `gorm:"type:uuid"`
	RejectionReason  string     `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (LeaveRequestModel) TableName() string {
	return "leave_requests"
}

// ToDomain converts the persistence model to a domain LeaveRequest
func (m *LeaveRequestModel) ToDomain() *hr.LeaveRequest {
	return &hr.LeaveRequest{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		EmployeeID:          m.EmployeeID,
		LeaveTypeID:         m.LeaveTypeID,
		StartDate:           m.StartDate.UTC(),
		EndDate:             m.EndDate.UTC(),
		TotalDays:           m.TotalDays,
		Reason:              m.Reason,
		Status:              m.Status,
		ApprovedAt:          m.ApprovedAt,
		ApprovedBy:          m.ApprovedBy,
		ApprovalComments:    m.ApprovalComments,
		RejectedAt:          m.RejectedAt,
		RejectedBy:          m.RejectedBy,
		RejectionReason:     m.RejectionReason,
	}
}

// FromDomain populates the persistence model from a domain LeaveRequest
func (m *LeaveRequestModel) FromDomain(lr *hr.LeaveRequest) {
	m.FromDomainTenantAggregateRoot(lr.TenantAggregateRoot)
	m.EmployeeID = lr.EmployeeID
	m.LeaveTypeID = lr.LeaveTypeID
	m.StartDate = lr.StartDate
	m.EndDate = lr.EndDate
	m.TotalDays = lr.TotalDays
	m.Reason = lr.Reason
	m.Status = lr.Status
	m.ApprovedAt = lr.ApprovedAt
	m.ApprovedBy = lr.ApprovedBy
	m.ApprovalComments = lr.ApprovalComments
	m.RejectedAt = lr.RejectedAt
	m.RejectedBy = lr.RejectedBy
	m.RejectionReason = lr.RejectionReason
}

// DepartmentModel is the persistence model for departments
type DepartmentModel struct {
	TenantAggregateModel
	Name               string     `gorm:"type:varchar(100);not null"`
	Description        string     `gorm:"type:varchar(500)"`
	Code               string     `gorm:"type:varchar(10);index"`
	ParentDepartmentID *uuid.UUID `gorm:"type:uuid"`
	ManagerID          *uuid.UUID `gorm:"type:uuid"`
	IsActive           bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (DepartmentModel) TableName() string {
	return "departments"
}

// ToDomain converts the persistence model to a domain Department
func (m *DepartmentModel) ToDomain() *hr.Department {
	return &hr.Department{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Description:         m.Description,
		Code:                m.Code,
		ParentDepartmentID:  m.ParentDepartmentID,
		ManagerID:           m.ManagerID,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Department
func (m *DepartmentModel) FromDomain(d *hr.Department) {
	m.FromDomainTenantAggregateRoot(d.TenantAggregateRoot)
	m.Name = d.Name
	m.Description = d.Description
	m.Code = d.Code
	m.ParentDepartmentID = d.ParentDepartmentID
	m.ManagerID = d.ManagerID
	m.IsActive = d.IsActive
}

// PositionModel is the persistence model for positions
type PositionModel struct {
	TenantAggregateModel
	Title        string           `gorm:"type:varchar(100);not null"`
	Description  string           `gorm:"type:varchar(500)"`
	Code         string           `gorm:"type:varchar(10);index"`
	DepartmentID *uuid.UUID       `gorm:"type:uuid;index"`
	MinSalary    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	MaxSalary    *decimal.Decimal `gorm:"type:decimal(18,2)"`
	Level        string           `gorm:"type:varchar(50)"`
	IsActive     bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (PositionModel) TableName() string {
	return "positions"
}

// ToDomain converts the persistence model to a domain Position
func (m *PositionModel) ToDomain() *hr.Position {
	return &hr.Position{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Title:               m.Title,
		Description:         m.Description,
		Code:                m.Code,
		DepartmentID:        m.DepartmentID,
		MinSalary:           m.MinSalary,
		MaxSalary:           m.MaxSalary,
		Level:               m.Level,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Position
func (m *PositionModel) FromDomain(p *hr.Position) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.Title = p.Title
	m.Description = p.Description
	m.Code = p.Code
	m.DepartmentID = p.DepartmentID
	m.MinSalary = p.MinSalary
	m.MaxSalary = p.MaxSalary
	m.Level = p.Level
	m.IsActive = p.IsActive
}

// LeaveTypeModel is the persistence model for leave types
type LeaveTypeModel struct {
	TenantAggregateModel
	Name                string `gorm:"type:varchar(50);not null"`
	Description         string `gorm:"type:varchar(200)"`
	Code                string `gorm:"type:varchar(10);index"`
	MaxDaysPerYear      int    `gorm:"not null;default:0"`
	RequiresApproval    bool   `gorm:"not null;default:true"`
	IsCarryForward      bool   `gorm:"not null;default:false"`
	MaxCarryForwardDays *int
	IsActive            bool `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (LeaveTypeModel) TableName() string {
	return "leave_types"
}

// ToDomain converts the persistence model to a domain LeaveType
func (m *LeaveTypeModel) ToDomain() *hr.LeaveType {
	return &hr.LeaveType{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		Name:                m.Name,
		Description:         m.Description,
		Code:                m.Code,
		MaxDaysPerYear:      m.MaxDaysPerYear,
		RequiresApproval:    m.RequiresApproval,
		IsCarryForward:      m.IsCarryForward,
		MaxCarryForwardDays: m.MaxCarryForwardDays,
		IsActive:            m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain LeaveType
func (m *LeaveTypeModel) FromDomain(lt *hr.LeaveType) {
	m.FromDomainTenantAggregateRoot(lt.TenantAggregateRoot)
	m.Name = lt.Name
	m.Description = lt.Description
	m.Code = lt.Code
	m.MaxDaysPerYear = lt.MaxDaysPerYear
	m.RequiresApproval = lt.RequiresApproval
	m.IsCarryForward = lt.IsCarryForward
	m.MaxCarryForwardDays = lt.MaxCarryForwardDays
	m.IsActive = lt.IsActive
}

// LeaveBalanceModel is the persistence model for leave balances
type LeaveBalanceModel struct {
	TenantAggregateModel
	EmployeeID       uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_balances_lookup,priority:1"`
	LeaveTypeID      uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_balances_lookup,priority:2"`
	Year             int       `gorm:"not null;index:idx_leave_balances_lookup,priority:3"`
	AllocatedDays    int       `gorm:"not null;default:0"`
	UsedDays         int       `gorm:"not null;default:0"`
	CarryForwardDays int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (LeaveBalanceModel) TableName() string {
	return "leave_balances"
}

// ToDomain converts the persistence model to a domain LeaveBalance
func (m *LeaveBalanceModel) ToDomain() *hr.LeaveBalance {
	return &hr.LeaveBalance{
		TenantAggregateRoot: m.ToDomainTenantAggregateRoot(),
		EmployeeID:          m.EmployeeID,
		LeaveTypeID:         m.LeaveTypeID,
		Year:                m.Year,
		AllocatedDays:       m.AllocatedDays,
		UsedDays:            m.UsedDays,
		CarryForwardDays:    m.CarryForwardDays,
	}
}

// FromDomain populates the persistence model from a domain LeaveBalance
func (m *LeaveBalanceModel) FromDomain(b *hr.LeaveBalance) {
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	m.EmployeeID = b.EmployeeID
	m.LeaveTypeID = b.LeaveTypeID
	m.Year = b.Year
	m.AllocatedDays = b.AllocatedDays
	m.UsedDays = b.UsedDays
	m.CarryForwardDays = b.CarryForwardDays
}

// HRModels lists every table of a tenant HR store, in creation order
func HRModels() []any {
	return []any{
		&DepartmentModel{},
		&PositionModel{},
		&LeaveTypeModel{},
		&EmployeeModel{},
		&LeaveRequestModel{},
		&LeaveBalanceModel{},
	}
}
