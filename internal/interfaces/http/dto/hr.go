package dto

import (
	"time"

	"github.com/google/uuid"
	apphr "github.com/hrapi/backend/internal/application/hr"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format accepted in request bodies
const DateLayout = "2006-01-02"

// EmployeeRequest is the body of employee create and update requests
type EmployeeRequest struct {
	EmployeeNumber      string           `json:"employee_number" binding:"required,max=20"`
	FirstName           string           `json:"first_name" binding:"required,max=50"`
	LastName            string           `json:"last_name" binding:"required,max=50"`
	MiddleName          string           `json:"middle_name" binding:"max=50"`
	Email               string           `json:"email" binding:"required,email,max=100"`
	PhoneNumber         string           `json:"phone_number" binding:"max=15"`
	DateOfBirth         string           `json:"date_of_birth" binding:"omitempty,datetime=2006-01-02"`
	Gender              string           `json:"gender"`
	Address             string           `json:"address" binding:"max=200"`
	HireDate            string           `json:"hire_date" binding:"required,datetime=2006-01-02,notfuture"`
	TerminationDate     string           `json:"termination_date" binding:"omitempty,datetime=2006-01-02"`
	DepartmentID        string           `json:"department_id" binding:"required,uuid"`
	PositionID          string           `json:"position_id" binding:"required,uuid"`
	ManagerID           string           `json:"manager_id" binding:"omitempty,uuid"`
	Status              string           `json:"status"`
	EmploymentType      string           `json:"employment_type"`
	Salary              *decimal.Decimal `json:"salary"`
	Notes               string           `json:"notes" binding:"max=500"`
	IsDepartmentManager bool             `json:"is_department_manager"`
}

// ToInput converts the request into service input. Enum fields accept
// either their name or their number.
func (r EmployeeRequest) ToInput() (apphr.EmployeeInput, error) {
	in := apphr.EmployeeInput{
		EmployeeNumber:      r.EmployeeNumber,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		MiddleName:          r.MiddleName,
		Email:               r.Email,
		PhoneNumber:         r.PhoneNumber,
		Address:             r.Address,
		Salary:              r.Salary,
		Notes:               r.Notes,
		IsDepartmentManager: r.IsDepartmentManager,
	}

	var err error
	if in.HireDate, err = ParseDate(r.HireDate); err != nil {
		return in, shared.NewInvalidInputError("Invalid hire date")
	}
	if in.DateOfBirth, err = parseOptionalDate(r.DateOfBirth); err != nil {
		return in, shared.NewInvalidInputError("Invalid date of birth")
	}
	if in.TerminationDate, err = parseOptionalDate(r.TerminationDate); err != nil {
		return in, shared.NewInvalidInputError("Invalid termination date")
	}
	if in.DepartmentID, err = uuid.Parse(r.DepartmentID); err != nil {
		return in, shared.NewInvalidInputError("Invalid department ID")
	}
	if in.PositionID, err = uuid.Parse(r.PositionID); err != nil {
		return in, shared.NewInvalidInputError("Invalid position ID")
	}
	if in.ManagerID, err = parseOptionalUUID(r.ManagerID); err != nil {
		return in, shared.NewInvalidInputError("Invalid manager ID")
	}

	if r.Gender != "" {
		g, ok := hr.ParseGender(r.Gender)
		if !ok {
			return in, shared.NewInvalidInputError("Invalid gender")
		}
		in.Gender = &g
	}
	if r.Status != "" {
		s, ok := hr.ParseEmploymentStatus(r.Status)
		if !ok {
			return in, shared.NewInvalidInputError("Invalid employment status")
		}
		in.Status = s
	}
	if r.EmploymentType != "" {
		t, ok := hr.ParseEmploymentType(r.EmploymentType)
		if !ok {
			return in, shared.NewInvalidInputError("Invalid employment type")
		}
		in.EmploymentType = t
	}
	return in, nil
}

// CreateLeaveRequestRequest is the body of a new leave request
type CreateLeaveRequestRequest struct {
	EmployeeID  string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string `json:"leave_type_id" binding:"required,uuid"`
	StartDate   string `json:"start_date" binding:"required,datetime=2006-01-02,notpast"`
	EndDate     string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason      string `json:"reason" binding:"max=500"`
}

// ToInput converts the request into service input
func (r CreateLeaveRequestRequest) ToInput() (apphr.CreateLeaveRequestInput, error) {
	var (
		in  = apphr.CreateLeaveRequestInput{Reason: r.Reason}
		err error
	)
	if in.EmployeeID, err = uuid.Parse(r.EmployeeID); err != nil {
		return in, shared.NewInvalidInputError("Invalid employee ID")
	}
	if in.LeaveTypeID, err = uuid.Parse(r.LeaveTypeID); err != nil {
		return in, shared.NewInvalidInputError("Invalid leave type ID")
	}
	if in.StartDate, err = ParseDate(r.StartDate); err != nil {
		return in, shared.NewInvalidInputError("Invalid start date")
	}
	if in.EndDate, err = ParseDate(r.EndDate); err != nil {
		return in, shared.NewInvalidInputError("Invalid end date")
	}
	return in, nil
}

// ApproveLeaveRequest is the body of an approval
type ApproveLeaveRequest struct {
	ApprovedBy string `json:"approved_by" binding:"required,uuid"`
	Comments   string `json:"comments" binding:"max=500"`
}

// RejectLeaveRequest is the body of a rejection
type RejectLeaveRequest struct {
	RejectedBy string `json:"rejected_by" binding:"required,uuid"`
	Reason     string `json:"reason" binding:"required,max=500"`
}

// DepartmentRequest is the body of department create and update requests
type DepartmentRequest struct {
	Name               string `json:"name" binding:"required,max=100"`
	Code               string `json:"code" binding:"max=10"`
	Description        string `json:"description" binding:"max=500"`
	ParentDepartmentID string `json:"parent_department_id" binding:"omitempty,uuid"`
	ManagerID          string `json:"manager_id" binding:"omitempty,uuid"`
	IsActive           *bool  `json:"is_active"`
}

// ToInput converts the request into service input
func (r DepartmentRequest) ToInput() (apphr.DepartmentInput, error) {
	in := apphr.DepartmentInput{
		Name:        r.Name,
		Code:        r.Code,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
	var err error
	if in.ParentDepartmentID, err = parseOptionalUUID(r.ParentDepartmentID); err != nil {
		return in, shared.NewInvalidInputError("Invalid parent department ID")
	}
	if in.ManagerID, err = parseOptionalUUID(r.ManagerID); err != nil {
		return in, shared.NewInvalidInputError("Invalid manager ID")
	}
	return in, nil
}

// PositionRequest is the body of position create and update requests
type PositionRequest struct {
	Title        string           `json:"title" binding:"required,max=100"`
	Code         string           `json:"code" binding:"max=10"`
	Description  string           `json:"description" binding:"max=500"`
	DepartmentID string           `json:"department_id" binding:"omitempty,uuid"`
	MinSalary    *decimal.Decimal `json:"min_salary"`
	MaxSalary    *decimal.Decimal `json:"max_salary"`
	Level        string           `json:"level" binding:"max=20"`
	IsActive     *bool            `json:"is_active"`
}

// ToInput converts the request into service input
func (r PositionRequest) ToInput() (apphr.PositionInput, error) {
	in := apphr.PositionInput{
		Title:       r.Title,
		Code:        r.Code,
		Description: r.Description,
		MinSalary:   r.MinSalary,
		MaxSalary:   r.MaxSalary,
		Level:       r.Level,
		IsActive:    r.IsActive,
	}
	var err error
	if in.DepartmentID, err = parseOptionalUUID(r.DepartmentID); err != nil {
		return in, shared.NewInvalidInputError("Invalid department ID")
	}
	return in, nil
}

// LeaveTypeRequest is the body of leave type create and update requests
type LeaveTypeRequest struct {
	Name                string `json:"name" binding:"required,max=50"`
	Code                string `json:"code" binding:"max=10"`
	Description         string `json:"description" binding:"max=200"`
	MaxDaysPerYear      int    `json:"max_days_per_year" binding:"gte=0,lte=366"`
	RequiresApproval    *bool  `json:"requires_approval"`
	IsCarryForward      bool   `json:"is_carry_forward"`
	MaxCarryForwardDays *int   `json:"max_carry_forward_days" binding:"omitempty,gte=0"`
	IsActive            *bool  `json:"is_active"`
}

// ToInput converts the request into service input
func (r LeaveTypeRequest) ToInput() apphr.LeaveTypeInput {
	return apphr.LeaveTypeInput{
		Name:                r.Name,
		Code:                r.Code,
		Description:         r.Description,
		MaxDaysPerYear:      r.MaxDaysPerYear,
		RequiresApproval:    r.RequiresApproval,
		IsCarryForward:      r.IsCarryForward,
		MaxCarryForwardDays: r.MaxCarryForwardDays,
		IsActive:            r.IsActive,
	}
}

// ParseDate parses a calendar date, accepting RFC 3339 timestamps as well
func ParseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseOptionalUUID(raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
