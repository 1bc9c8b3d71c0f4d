package hr

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Stored field names used in predicates over employees
const (
	FieldEmployeeNumber = "employee_number"
	FieldEmail          = "email"
	FieldDepartmentID   = "department_id"
	FieldPositionID     = "position_id"
	FieldManagerID      = "manager_id"
	FieldID             = "id"
)

const minEmployeeAgeYears = 16

// EmployeeDetails carries the mutable attributes of an employee
type EmployeeDetails struct {
	EmployeeNumber      string
	FirstName           string
	LastName            string
	MiddleName          string
	Email               string
	PhoneNumber         string
	DateOfBirth         *time.Time
	Gender              *Gender
	Address             string
	HireDate            time.Time
	TerminationDate     *time.Time
	DepartmentID        uuid.UUID
	PositionID          uuid.UUID
	ManagerID           *uuid.UUID
	Status              EmploymentStatus
	EmploymentType      EmploymentType
	Salary              *decimal.Decimal
	Notes               string
	IsDepartmentManager bool
}

// Employee is the central HR aggregate
type Employee struct {
	shared.TenantAggregateRoot
	EmployeeDetails
}

// NewEmployee validates details and builds a new employee owned by tenantID.
// Zero status and employment type default to Active and FullTime.
func NewEmployee(tenantID uuid.UUID, d EmployeeDetails) (*Employee, error) {
	d = normalizeDetails(d)
	if err := validateDetails(d, time.Now()); err != nil {
		return nil, err
	}
	return &Employee{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EmployeeDetails:     d,
	}, nil
}

// Apply replaces the employee's attributes after validation
func (e *Employee) Apply(d EmployeeDetails) error {
	d = normalizeDetails(d)
	if err := validateDetails(d, time.Now()); err != nil {
		return err
	}
	e.EmployeeDetails = d
	e.Touch()
	e.IncrementVersion()
	return nil
}

// FullName returns "First Last"
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// HasManager reports whether a manager is assigned
func (e *Employee) HasManager() bool {
	return e.ManagerID != nil && *e.ManagerID != uuid.Nil
}

func normalizeDetails(d EmployeeDetails) EmployeeDetails {
	d.EmployeeNumber = strings.TrimSpace(d.EmployeeNumber)
	d.FirstName = strings.TrimSpace(d.FirstName)
	d.LastName = strings.TrimSpace(d.LastName)
	d.MiddleName = strings.TrimSpace(d.MiddleName)
	d.Email = strings.TrimSpace(d.Email)
	if d.Status == 0 {
		d.Status = EmploymentStatusActive
	}
	if d.EmploymentType == 0 {
		d.EmploymentType = EmploymentTypeFullTime
	}
	return d
}

func validateDetails(d EmployeeDetails, now time.Time) error {
	switch {
	case d.EmployeeNumber == "":
		return shared.NewInvalidInputError("Employee number is required")
	case len(d.EmployeeNumber) > 20:
		return shared.NewInvalidInputError("Employee number cannot exceed 20 characters")
	case d.FirstName == "":
		return shared.NewInvalidInputError("First name is required")
	case len(d.FirstName) > 50:
		return shared.NewInvalidInputError("First name cannot exceed 50 characters")
	case d.LastName == "":
		return shared.NewInvalidInputError("Last name is required")
	case len(d.LastName) > 50:
		return shared.NewInvalidInputError("Last name cannot exceed 50 characters")
	case len(d.MiddleName) > 50:
		return shared.NewInvalidInputError("Middle name cannot exceed 50 characters")
	case d.Email == "":
		return shared.NewInvalidInputError("Email is required")
	case !strings.Contains(d.Email, "@"):
		return shared.NewInvalidInputError("Email must be a valid email address")
	case len(d.Email) > 100:
		return shared.NewInvalidInputError("Email cannot exceed 100 characters")
	case len(d.PhoneNumber) > 15:
		return shared.NewInvalidInputError("Phone number cannot exceed 15 characters")
	case len(d.Address) > 200:
		return shared.NewInvalidInputError("Address cannot exceed 200 characters")
	case len(d.Notes) > 500:
		return shared.NewInvalidInputError("Notes cannot exceed 500 characters")
	case d.HireDate.IsZero():
		return shared.NewInvalidInputError("Hire date is required")
	case d.HireDate.After(endOfDay(now)):
		return shared.NewInvalidInputError("Hire date cannot be in the future")
	case d.DepartmentID == uuid.Nil:
		return shared.NewInvalidInputError("Department is required")
	case d.PositionID == uuid.Nil:
		return shared.NewInvalidInputError("Position is required")
	case !d.Status.IsValid():
		return shared.NewInvalidInputError("Invalid employment status")
	case !d.EmploymentType.IsValid():
		return shared.NewInvalidInputError("Invalid employment type")
	}
	if d.DateOfBirth != nil && !d.DateOfBirth.Before(now.AddDate(-minEmployeeAgeYears, 0, 0)) {
		return shared.NewInvalidInputError("Employee must be at least 16 years old")
	}
	if d.Gender != nil && !d.Gender.IsValid() {
		return shared.NewInvalidInputError("Invalid gender")
	}
	if d.Salary != nil && !d.Salary.IsPositive() {
		return shared.NewInvalidInputError("Salary must be greater than 0")
	}
	return nil
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
