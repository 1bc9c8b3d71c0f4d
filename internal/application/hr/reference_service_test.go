package hr

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReferenceService_Departments(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewReferenceService(store, zap.NewNop())

	parent, err := svc.CreateDepartment(ctx, DepartmentInput{Name: "Engineering", Code: "ENG"})
	require.NoError(t, err)
	assert.True(t, parent.IsActive)

	child, err := svc.CreateDepartment(ctx, DepartmentInput{
		Name:               "Platform",
		Code:               "PLT",
		ParentDepartmentID: &parent.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, child.ParentDepartmentID)
	assert.Equal(t, parent.ID, *child.ParentDepartmentID)

	_, err = svc.CreateDepartment(ctx, DepartmentInput{Name: "Duplicate", Code: "ENG"})
	assert.True(t, errors.Is(err, shared.ErrDuplicateKey))

	ghost := uuid.New()
	_, err = svc.CreateDepartment(ctx, DepartmentInput{Name: "Orphan", Code: "ORP", ParentDepartmentID: &ghost})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	inactive := false
	updated, err := svc.UpdateDepartment(ctx, child.ID, DepartmentInput{
		Name:               "Platform Engineering",
		Code:               "PLT",
		ParentDepartmentID: &parent.ID,
		IsActive:           &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Platform Engineering", updated.Name)
	assert.False(t, updated.IsActive)

	_, err = svc.UpdateDepartment(ctx, child.ID, DepartmentInput{Name: "Platform", Code: "ENG"})
	assert.True(t, errors.Is(err, shared.ErrDuplicateKey))

	_, err = svc.UpdateDepartment(ctx, child.ID, DepartmentInput{Name: "Loop", Code: "PLT", ParentDepartmentID: &child.ID})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	list, err := svc.ListDepartments(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	missing, err := svc.GetDepartment(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReferenceService_DeleteDepartmentInUse(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	refs := seedReferences(t, store)
	svc := NewReferenceService(store, zap.NewNop())

	e := addEmployee(t, store, refs, "E-001", "grace@example.com")

	err := svc.DeleteDepartment(ctx, refs.department.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrRuleViolation))

	err = svc.DeletePosition(ctx, refs.position.ID)
	assert.True(t, errors.Is(err, shared.ErrRuleViolation))

	require.NoError(t, store.Employees().Delete(ctx, e.ID))
	require.NoError(t, svc.DeletePosition(ctx, refs.position.ID))
	require.NoError(t, svc.DeleteDepartment(ctx, refs.department.ID))

	err = svc.DeleteDepartment(ctx, refs.department.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestReferenceService_Positions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	refs := seedReferences(t, store)
	svc := NewReferenceService(store, zap.NewNop())

	low, high := decimal.NewFromInt(50000), decimal.NewFromInt(90000)
	pos, err := svc.CreatePosition(ctx, PositionInput{
		Title:        "Site Reliability Engineer",
		Code:         "SRE",
		DepartmentID: &refs.department.ID,
		MinSalary:    &low,
		MaxSalary:    &high,
		Level:        "Senior",
	})
	require.NoError(t, err)
	assert.Equal(t, "Senior", pos.Level)
	require.NotNil(t, pos.MinSalary)
	assert.True(t, pos.MinSalary.Equal(low))

	_, err = svc.CreatePosition(ctx, PositionInput{Title: "Inverted", Code: "INV", MinSalary: &high, MaxSalary: &low})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	_, err = svc.CreatePosition(ctx, PositionInput{Title: "Developer Two", Code: "DEV"})
	assert.True(t, errors.Is(err, shared.ErrDuplicateKey))

	ghost := uuid.New()
	_, err = svc.UpdatePosition(ctx, pos.ID, PositionInput{Title: "SRE", Code: "SRE", DepartmentID: &ghost})
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	updated, err := svc.UpdatePosition(ctx, pos.ID, PositionInput{Title: "Staff SRE", Code: "SRE"})
	require.NoError(t, err)
	assert.Equal(t, "Staff SRE", updated.Title)
	assert.Nil(t, updated.DepartmentID)

	got, err := svc.GetPosition(ctx, pos.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Staff SRE", got.Title)

	list, err := svc.ListPositions(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestReferenceService_LeaveTypes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewReferenceService(store, zap.NewNop())

	carry := 5
	lt, err := svc.CreateLeaveType(ctx, LeaveTypeInput{
		Name:                "Annual Leave",
		Code:                "AL",
		MaxDaysPerYear:      25,
		IsCarryForward:      true,
		MaxCarryForwardDays: &carry,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, lt.MaxDaysPerYear)
	assert.True(t, lt.RequiresApproval)
	assert.True(t, lt.IsCarryForward)

	_, err = svc.CreateLeaveType(ctx, LeaveTypeInput{Name: "Again", Code: "AL", MaxDaysPerYear: 1})
	assert.True(t, errors.Is(err, shared.ErrDuplicateKey))

	_, err = svc.CreateLeaveType(ctx, LeaveTypeInput{Name: "Negative", Code: "NG", MaxDaysPerYear: -1})
	assert.True(t, errors.Is(err, shared.ErrInvalidInput))

	noApproval := false
	updated, err := svc.UpdateLeaveType(ctx, lt.ID, LeaveTypeInput{
		Name:             "Annual Leave",
		Code:             "AL",
		MaxDaysPerYear:   30,
		RequiresApproval: &noApproval,
	})
	require.NoError(t, err)
	assert.Equal(t, 30, updated.MaxDaysPerYear)
	assert.False(t, updated.RequiresApproval)
	assert.False(t, updated.IsCarryForward)

	require.NoError(t, svc.DeleteLeaveType(ctx, lt.ID))
	list, err := svc.ListLeaveTypes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = svc.DeleteLeaveType(ctx, lt.ID)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
