package hr

import (
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/shopspring/decimal"
)

// EmployeeInput carries the attributes for creating or updating an employee
type EmployeeInput = hr.EmployeeDetails

// EmployeeDTO represents an employee returned to callers
type EmployeeDTO struct {
	ID                  uuid.UUID        `json:"id"`
	EmployeeNumber      string           `json:"employee_number"`
	FirstName           string           `json:"first_name"`
	LastName            string           `json:"last_name"`
	MiddleName          string           `json:"middle_name,omitempty"`
	FullName            string           `json:"full_name"`
	Email               string           `json:"email"`
	PhoneNumber         string           `json:"phone_number,omitempty"`
	DateOfBirth         *time.Time       `json:"date_of_birth,omitempty"`
	Gender              string           `json:"gender,omitempty"`
	Address             string           `json:"address,omitempty"`
	HireDate            time.Time        `json:"hire_date"`
	TerminationDate     *time.Time       `json:"termination_date,omitempty"`
	DepartmentID        uuid.UUID        `json:"department_id"`
	PositionID          uuid.UUID        `json:"position_id"`
	ManagerID           *uuid.UUID       `json:"manager_id,omitempty"`
	Status              string           `json:"status"`
	EmploymentType      string           `json:"employment_type"`
	Salary              *decimal.Decimal `json:"salary,omitempty"`
	Notes               string           `json:"notes,omitempty"`
	IsDepartmentManager bool             `json:"is_department_manager"`
	Version             int              `json:"version"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

// CreateLeaveRequestInput contains input for requesting leave
type CreateLeaveRequestInput struct {
	EmployeeID  uuid.UUID
	LeaveTypeID uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
	Reason      string
}

// LeaveRequestDTO represents a leave request returned to callers
type LeaveRequestDTO struct {
	ID               uuid.UUID  `json:"id"`
	EmployeeID       uuid.UUID  `json:"employee_id"`
	LeaveTypeID      uuid.UUID  `json:"leave_type_id"`
	StartDate        time.Time  `json:"start_date"`
	EndDate          time.Time  `json:"end_date"`
	TotalDays        int        `json:"total_days"`
	Reason           string     `json:"reason,omitempty"`
	Status           string     `json:"status"`
	ApprovedAt       *time.Time `json:"approved_at,omitempty"`
	ApprovedBy       *uuid.UUID `json:"approved_by,omitempty"`
	ApprovalComments string     `json:"approval_comments,omitempty"`
	RejectedAt       *time.Time `json:"rejected_at,omitempty"`
	RejectedBy       *uuid.UUID `json:"rejected_by,omitempty"`
	RejectionReason  string     `json:"rejection_reason,omitempty"`
	Version          int        `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// LeaveBalanceDTO represents one year's allowance of one leave type
type LeaveBalanceDTO struct {
	ID               uuid.UUID `json:"id"`
	EmployeeID       uuid.UUID `json:"employee_id"`
	LeaveTypeID      uuid.UUID `json:"leave_type_id"`
	Year             int       `json:"year"`
	AllocatedDays    int       `json:"allocated_days"`
	UsedDays         int       `json:"used_days"`
	CarryForwardDays int       `json:"carry_forward_days"`
	RemainingDays    int       `json:"remaining_days"`
}

// DepartmentInput contains input for creating or updating a department
type DepartmentInput struct {
	Name               string
	Code               string
	Description        string
	ParentDepartmentID *uuid.UUID
	ManagerID          *uuid.UUID
	IsActive           *bool
}

// DepartmentDTO represents a department returned to callers
type DepartmentDTO struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Code               string     `json:"code"`
	Description        string     `json:"description,omitempty"`
	ParentDepartmentID *uuid.UUID `json:"parent_department_id,omitempty"`
	ManagerID          *uuid.UUID `json:"manager_id,omitempty"`
	IsActive           bool       `json:"is_active"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// PositionInput contains input for creating or updating a position
type PositionInput struct {
	Title        string
	Code         string
	Description  string
	DepartmentID *uuid.UUID
	MinSalary    *decimal.Decimal
	MaxSalary    *decimal.Decimal
	Level        string
	IsActive     *bool
}

// PositionDTO represents a position returned to callers
type PositionDTO struct {
	ID           uuid.UUID        `json:"id"`
	Title        string           `json:"title"`
	Code         string           `json:"code"`
	Description  string           `json:"description,omitempty"`
	DepartmentID *uuid.UUID       `json:"department_id,omitempty"`
	MinSalary    *decimal.Decimal `json:"min_salary,omitempty"`
	MaxSalary    *decimal.Decimal `json:"max_salary,omitempty"`
	Level        string           `json:"level,omitempty"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// LeaveTypeInput contains input for creating or updating a leave type
type LeaveTypeInput struct {
	Name                string
	Code                string
	Description         string
	MaxDaysPerYear      int
	RequiresApproval    *bool
	IsCarryForward      bool
	MaxCarryForwardDays *int
	IsActive            *bool
}

// LeaveTypeDTO represents a leave type returned to callers
type LeaveTypeDTO struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Code                string    `json:"code"`
	Description         string    `json:"description,omitempty"`
	MaxDaysPerYear      int       `json:"max_days_per_year"`
	RequiresApproval    bool      `json:"requires_approval"`
	IsCarryForward      bool      `json:"is_carry_forward"`
	MaxCarryForwardDays *int      `json:"max_carry_forward_days,omitempty"`
	IsActive            bool      `json:"is_active"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ToEmployeeDTO converts an employee
func ToEmployeeDTO(e *hr.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		ID:                  e.ID,
		EmployeeNumber:      e.EmployeeNumber,
		FirstName:           e.FirstName,
		LastName:            e.LastName,
		MiddleName:          e.MiddleName,
		FullName:            e.FullName(),
		Email:               e.Email,
		PhoneNumber:         e.PhoneNumber,
		DateOfBirth:         e.DateOfBirth,
		Address:             e.Address,
		HireDate:            e.HireDate,
		TerminationDate:     e.TerminationDate,
		DepartmentID:        e.DepartmentID,
		PositionID:          e.PositionID,
		ManagerID:           e.ManagerID,
		Status:              e.Status.String(),
		EmploymentType:      e.EmploymentType.String(),
		Salary:              e.Salary,
		Notes:               e.Notes,
		IsDepartmentManager: e.IsDepartmentManager,
		Version:             e.Version,
		CreatedAt:           e.CreatedAt,
		UpdatedAt:           e.UpdatedAt,
	}
	if e.Gender != nil {
		dto.Gender = e.Gender.String()
	}
	return dto
}

// ToEmployeeDTOs converts a list of employees
func ToEmployeeDTOs(employees []hr.Employee) []EmployeeDTO {
	return convert(employees, ToEmployeeDTO)
}

// ToLeaveRequestDTO converts a leave request
func ToLeaveRequestDTO(lr *hr.LeaveRequest) LeaveRequestDTO {
	return LeaveRequestDTO{
		ID:               lr.ID,
		EmployeeID:       lr.EmployeeID,
		LeaveTypeID:      lr.LeaveTypeID,
		StartDate:        lr.StartDate,
		EndDate:          lr.EndDate,
		TotalDays:        lr.TotalDays,
		Reason:           lr.Reason,
		Status:           lr.Status.String(),
		ApprovedAt:       lr.ApprovedAt,
		ApprovedBy:       lr.ApprovedBy,
		ApprovalComments: lr.ApprovalComments,
		RejectedAt:       lr.RejectedAt,
		RejectedBy:       lr.RejectedBy,
		RejectionReason:  lr.RejectionReason,
		Version:          lr.Version,
		CreatedAt:        lr.CreatedAt,
		UpdatedAt:        lr.UpdatedAt,
	}
}

// ToLeaveRequestDTOs converts a list of leave requests
func ToLeaveRequestDTOs(requests []hr.LeaveRequest) []LeaveRequestDTO {
	return convert(requests, ToLeaveRequestDTO)
}

// ToLeaveBalanceDTO converts a leave balance
func ToLeaveBalanceDTO(b *hr.LeaveBalance) LeaveBalanceDTO {
	return LeaveBalanceDTO{
		ID:               b.ID,
		EmployeeID:       b.EmployeeID,
		LeaveTypeID:      b.LeaveTypeID,
		Year:             b.Year,
		AllocatedDays:    b.AllocatedDays,
		UsedDays:         b.UsedDays,
		CarryForwardDays: b.CarryForwardDays,
		RemainingDays:    b.RemainingDays(),
	}
}

// ToDepartmentDTO converts a department
func ToDepartmentDTO(d *hr.Department) DepartmentDTO {
	return DepartmentDTO{
		ID:                 d.ID,
		Name:               d.Name,
		Code:               d.Code,
		Description:        d.Description,
		ParentDepartmentID: d.ParentDepartmentID,
		ManagerID:          d.ManagerID,
		IsActive:           d.IsActive,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ToPositionDTO converts a position
func ToPositionDTO(p *hr.Position) PositionDTO {
	return PositionDTO{
		ID:           p.ID,
		Title:        p.Title,
		Code:         p.Code,
		Description:  p.Description,
		DepartmentID: p.DepartmentID,
		MinSalary:    p.MinSalary,
		MaxSalary:    p.MaxSalary,
		Level:        p.Level,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToLeaveTypeDTO converts a leave type
func ToLeaveTypeDTO(lt *hr.LeaveType) LeaveTypeDTO {
	return LeaveTypeDTO{
		ID:                  lt.ID,
		Name:                lt.Name,
		Code:                lt.Code,
		Description:         lt.Description,
		MaxDaysPerYear:      lt.MaxDaysPerYear,
		RequiresApproval:    lt.RequiresApproval,
		IsCarryForward:      lt.IsCarryForward,
		MaxCarryForwardDays: lt.MaxCarryForwardDays,
		IsActive:            lt.IsActive,
		CreatedAt:           lt.CreatedAt,
		UpdatedAt:           lt.UpdatedAt,
	}
}

func convert[T, D any](items []T, fn func(*T) D) []D {
	result := make([]D, len(items))
	for i := range items {
		result[i] = fn(&items[i])
	}
	return result
}
