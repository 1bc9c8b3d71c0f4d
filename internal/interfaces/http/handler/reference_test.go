package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	apphr "github.com/hrapi/backend/internal/application/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceHandler_Departments(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/departments", map[string]any{
		"name":                 "Platform",
		"code":                 "PLT",
		"parent_department_id": env.department.ID.String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[apphr.DepartmentDTO](t, w).Data
	require.NotNil(t, created.ParentDepartmentID)
	assert.Equal(t, env.department.ID, *created.ParentDepartmentID)

	w = env.do(t, http.MethodPost, "/api/v1/departments", map[string]any{"name": "Again", "code": "PLT"})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, shared.CodeDuplicateKey, errorCode(t, w))

	w = env.do(t, http.MethodPut, "/api/v1/departments/"+created.ID.String(), map[string]any{
		"name":      "Platform Engineering",
		"code":      "PLT",
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[apphr.DepartmentDTO](t, w).Data
	assert.Equal(t, "Platform Engineering", updated.Name)
	assert.False(t, updated.IsActive)

	w = env.do(t, http.MethodGet, "/api/v1/departments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]apphr.DepartmentDTO](t, w).Data, 2)

	w = env.do(t, http.MethodDelete, "/api/v1/departments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/departments/"+created.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReferenceHandler_DepartmentInUse(t *testing.T) {
	env := newTestEnv(t)
	env.createEmployee(t, "E-001", "grace@example.com")

	w := env.do(t, http.MethodDelete, "/api/v1/departments/"+env.department.ID.String(), nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, shared.CodeRuleViolation, errorCode(t, w))
}

func TestReferenceHandler_UpdateMissing(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPut, "/api/v1/departments/"+uuid.NewString(), map[string]any{"name": "Ghost"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, shared.CodeNotFound, errorCode(t, w))
}

func TestReferenceHandler_Positions(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/positions", map[string]any{
		"title":         "Architect",
		"code":          "ARC",
		"department_id": env.department.ID.String(),
		"min_salary":    "7000",
		"max_salary":    "9000",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[apphr.PositionDTO](t, w).Data
	assert.Equal(t, "ARC", created.Code)

	w = env.do(t, http.MethodGet, "/api/v1/positions/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/positions", map[string]any{"code": "NOPE"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, dto.ErrCodeValidation, errorCode(t, w))
}

func TestReferenceHandler_LeaveTypes(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/leave-types", map[string]any{
		"name":              "Study Leave",
		"code":              "STL",
		"max_days_per_year": 5,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[apphr.LeaveTypeDTO](t, w).Data
	assert.Equal(t, 5, created.MaxDaysPerYear)
	assert.True(t, created.RequiresApproval)

	w = env.do(t, http.MethodGet, "/api/v1/leave-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]apphr.LeaveTypeDTO](t, w).Data, 2)

	w = env.do(t, http.MethodGet, "/api/v1/leave-types/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
