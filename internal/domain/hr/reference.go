package hr

import (
	"strings"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// FieldCode is the stored name of the short code column on reference entities
const FieldCode = "code"

// FieldYear is the stored name of the year column on leave balances
const FieldYear = "year"

// Department groups employees
type Department struct {
	shared.TenantAggregateRoot
	Name               string
	Description        string
	Code               string
	ParentDepartmentID *uuid.UUID
	ManagerID          *uuid.UUID
	IsActive           bool
}

// NewDepartment creates an active department
func NewDepartment(tenantID uuid.UUID, name, code, description string) (*Department, error) {
	d := &Department{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		IsActive:            true,
	}
	if err := d.Rename(name, code, description); err != nil {
		return nil, err
	}
	return d, nil
}

// Rename updates the descriptive fields
func (d *Department) Rename(name, code, description string) error {
	name, code = strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(code))
	if err := validateReference(name, 100, code, description, 500); err != nil {
		return err
	}
	d.Name, d.Code, d.Description = name, code, description
	d.Touch()
	return nil
}

// Position is a job title employees are hired into
type Position struct {
	shared.TenantAggregateRoot
	Title        string
	Description  string
	Code         string
	DepartmentID *uuid.UUID
	MinSalary    *decimal.Decimal
	MaxSalary    *decimal.Decimal
	Level        string
	IsActive     bool
}

// NewPosition creates an active position
func NewPosition(tenantID uuid.UUID, title, code, description string) (*Position, error) {
	p := &Position{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		IsActive:            true,
	}
	if err := p.Rename(title, code, description); err != nil {
		return nil, err
	}
	return p, nil
}

// Rename updates the descriptive fields
func (p *Position) Rename(title, code, description string) error {
	title, code = strings.TrimSpace(title), strings.ToUpper(strings.TrimSpace(code))
	if err := validateReference(title, 100, code, description, 500); err != nil {
		return err
	}
	p.Title, p.Code, p.Description = title, code, description
	p.Touch()
	return nil
}

// SetSalaryBand sets the optional salary range
func (p *Position) SetSalaryBand(minSalary, maxSalary *decimal.Decimal) error {
	if minSalary != nil && maxSalary != nil && minSalary.GreaterThan(*maxSalary) {
		return shared.NewInvalidInputError("Minimum salary cannot exceed maximum salary")
	}
	p.MinSalary, p.MaxSalary = minSalary, maxSalary
	return nil
}

// LeaveType is a category of leave with a yearly allowance
type LeaveType struct {
	shared.TenantAggregateRoot
	Name                string
	Description         string
	Code                string
	MaxDaysPerYear      int
	RequiresApproval    bool
	IsCarryForward      bool
	MaxCarryForwardDays *int
	IsActive            bool
}

// NewLeaveType creates an active leave type requiring approval
func NewLeaveType(tenantID uuid.UUID, name, code string, maxDaysPerYear int) (*LeaveType, error) {
	lt := &LeaveType{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RequiresApproval:    true,
		IsActive:            true,
	}
	if err := lt.Rename(name, code, ""); err != nil {
		return nil, err
	}
	if err := lt.SetAllowance(maxDaysPerYear); err != nil {
		return nil, err
	}
	return lt, nil
}

// Rename updates the descriptive fields
func (lt *LeaveType) Rename(name, code, description string) error {
	name, code = strings.TrimSpace(name), strings.ToUpper(strings.TrimSpace(code))
	if err := validateReference(name, 50, code, description, 200); err != nil {
		return err
	}
	lt.Name, lt.Code, lt.Description = name, code, description
	lt.Touch()
	return nil
}

// SetAllowance sets the yearly day allowance
func (lt *LeaveType) SetAllowance(maxDaysPerYear int) error {
	if maxDaysPerYear < 0 || maxDaysPerYear > 366 {
		return shared.NewInvalidInputError("Max days per year must be between 0 and 366")
	}
	lt.MaxDaysPerYear = maxDaysPerYear
	return nil
}

// LeaveBalance tracks one employee's allowance of one leave type for one year
type LeaveBalance struct {
	shared.TenantAggregateRoot
	EmployeeID       uuid.UUID
	LeaveTypeID      uuid.UUID
	Year             int
	AllocatedDays    int
	UsedDays         int
	CarryForwardDays int
}

// NewLeaveBalance allocates days for a year
func NewLeaveBalance(tenantID, employeeID, leaveTypeID uuid.UUID, year, allocated int) *LeaveBalance {
	return &LeaveBalance{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EmployeeID:          employeeID,
		LeaveTypeID:         leaveTypeID,
		Year:                year,
		AllocatedDays:       allocated,
	}
}

// RemainingDays is allocated plus carried forward minus used
func (b *LeaveBalance) RemainingDays() int {
	return b.AllocatedDays + b.CarryForwardDays - b.UsedDays
}

// Consume records days taken against the balance. Negative days return
// previously used days; usage never drops below zero.
func (b *LeaveBalance) Consume(days int) {
	b.UsedDays = max(b.UsedDays+days, 0)
	b.Touch()
	b.IncrementVersion()
}

func validateReference(name string, nameMax int, code, description string, descMax int) error {
	switch {
	case name == "":
		return shared.NewInvalidInputError("Name is required")
	case len(name) > nameMax:
		return shared.NewInvalidInputError("Name is too long")
	case len(code) > 10:
		return shared.NewInvalidInputError("Code cannot exceed 10 characters")
	case len(description) > descMax:
		return shared.NewInvalidInputError("Description is too long")
	}
	return nil
}
