package hr

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDetails() EmployeeDetails {
	return EmployeeDetails{
		EmployeeNumber: "C1-001",
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Email:          "ada@example.com",
		HireDate:       time.Now().AddDate(-1, 0, 0),
		DepartmentID:   uuid.New(),
		PositionID:     uuid.New(),
	}
}

func TestNewEmployee_Defaults(t *testing.T) {
	tenantID := uuid.New()
	e, err := NewEmployee(tenantID, validDetails())
	require.NoError(t, err)

	assert.Equal(t, tenantID, e.TenantID)
	assert.Equal(t, EmploymentStatusActive, e.Status)
	assert.Equal(t, EmploymentTypeFullTime, e.EmploymentType)
	assert.Equal(t, "Ada Lovelace", e.FullName())
	assert.Equal(t, 1, e.GetVersion())
	assert.False(t, e.HasManager())
}

func TestNewEmployee_Validation(t *testing.T) {
	future := time.Now().AddDate(0, 0, 3)
	young := time.Now().AddDate(-10, 0, 0)
	zero := decimal.Zero
	badType := EmploymentType(42)

	tests := []struct {
		name   string
		mutate func(d *EmployeeDetails)
		msg    string
	}{
		{"missing number", func(d *EmployeeDetails) { d.EmployeeNumber = " " }, "Employee number is required"},
		{"long number", func(d *EmployeeDetails) { d.EmployeeNumber = "123456789012345678901" }, "Employee number cannot exceed 20 characters"},
		{"missing email", func(d *EmployeeDetails) { d.Email = "" }, "Email is required"},
		{"bad email", func(d *EmployeeDetails) { d.Email = "nope" }, "Email must be a valid email address"},
		{"future hire", func(d *EmployeeDetails) { d.HireDate = future }, "Hire date cannot be in the future"},
		{"too young", func(d *EmployeeDetails) { d.DateOfBirth = &young }, "Employee must be at least 16 years old"},
		{"zero salary", func(d *EmployeeDetails) { d.Salary = &zero }, "Salary must be greater than 0"},
		{"no department", func(d *EmployeeDetails) { d.DepartmentID = uuid.Nil }, "Department is required"},
		{"no position", func(d *EmployeeDetails) { d.PositionID = uuid.Nil }, "Position is required"},
		{"bad type", func(d *EmployeeDetails) { d.EmploymentType = badType }, "Invalid employment type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			tt.mutate(&d)
			_, err := NewEmployee(uuid.New(), d)
			require.Error(t, err)
			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestEmployee_Apply(t *testing.T) {
	e, err := NewEmployee(uuid.New(), validDetails())
	require.NoError(t, err)

	d := e.EmployeeDetails
	d.Email = "ada.l@example.com"
	manager := uuid.New()
	d.ManagerID = &manager

	require.NoError(t, e.Apply(d))
	assert.Equal(t, "ada.l@example.com", e.Email)
	assert.True(t, e.HasManager())
	assert.Equal(t, 2, e.GetVersion())

	d.FirstName = ""
	assert.ErrorIs(t, e.Apply(d), shared.ErrInvalidInput)
	assert.Equal(t, "Ada", e.FirstName)
}

func TestLeaveBalance_RemainingDays(t *testing.T) {
	b := NewLeaveBalance(uuid.New(), uuid.New(), uuid.New(), 2025, 25)
	b.CarryForwardDays = 3
	b.Consume(5)

	assert.Equal(t, 23, b.RemainingDays())

	b.Consume(-8)
	assert.Equal(t, 0, b.UsedDays)
}

func TestPosition_SetSalaryBand(t *testing.T) {
	p, err := NewPosition(uuid.New(), "Software Developer", "dev", "")
	require.NoError(t, err)
	assert.Equal(t, "DEV", p.Code)

	low, high := decimal.NewFromInt(1000), decimal.NewFromInt(500)
	assert.ErrorIs(t, p.SetSalaryBand(&low, &high), shared.ErrInvalidInput)
	assert.NoError(t, p.SetSalaryBand(&high, &low))
}

func TestParseEmploymentEnums(t *testing.T) {
	et, ok := ParseEmploymentType("contract")
	assert.True(t, ok)
	assert.Equal(t, EmploymentTypeContract, et)

	st, ok := ParseEmploymentStatus("2")
	assert.True(t, ok)
	assert.Equal(t, EmploymentStatusInactive, st)

	g, ok := ParseGender("Female")
	assert.True(t, ok)
	assert.Equal(t, "Female", g.String())

	_, ok = ParseEmploymentType("0")
	assert.False(t, ok)
	_, ok = ParseGender("unknown")
	assert.False(t, ok)
}
