package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/hrapi/backend/internal/infrastructure/persistence"
	"github.com/hrapi/backend/internal/infrastructure/strategy"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
	"github.com/hrapi/backend/internal/interfaces/http/middleware"
	"github.com/hrapi/backend/internal/testutil"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type noSource struct{}

func (noSource) GetConnectionDescriptor(context.Context, string) (string, error) { return "", nil }

type testEnv struct {
	store      hr.Store
	services   *ServiceFactory
	engine     *gin.Engine
	department *hr.Department
	position   *hr.Position
	annual     *hr.LeaveType
}

// newTestEnv serves the HR handlers for one in-memory SQLite tenant store.
// The tenant middleware is replaced by a stub that injects the store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	factory := persistence.NewStoreFactory(noSource{}, config.TenantStoreConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	t.Cleanup(func() { _ = factory.Close() })
	store, err := factory.ProvisionStore(ctx, uuid.New(), testutil.SQLiteDescriptor("handler"))
	require.NoError(t, err)

	registry, err := strategy.NewRegistryWithDefaults(nil)
	require.NoError(t, err)

	env := &testEnv{
		store:    store,
		services: NewServiceFactory(registry, tenancy.DefaultTenantConfiguration().WithDefaults(), nil),
	}
	env.seed(t)

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, store.TenantID().String())
		c.Set(middleware.TenantStoreKey, store)
		c.Next()
	})
	env.engine = engine

	employees := NewEmployeeHandler(env.services)
	e := engine.Group("/api/v1/employees")
	e.GET("", employees.List)
	e.GET("/by-number/:number", employees.GetByNumber)
	e.GET("/by-department/:departmentId", employees.ListByDepartment)
	e.GET("/by-manager/:managerId", employees.ListByManager)
	e.GET("/:id", employees.Get)
	e.GET("/:id/leave-balances", employees.LeaveBalances)
	e.POST("", employees.Create)
	e.PUT("/:id", employees.Update)
	e.DELETE("/:id", employees.Delete)

	leave := NewLeaveHandler(env.services)
	l := engine.Group("/api/v1/leave-requests")
	l.GET("", leave.List)
	l.GET("/by-employee/:employeeId", leave.ListByEmployee)
	l.GET("/by-status/:status", leave.ListByStatus)
	l.GET("/:id", leave.Get)
	l.POST("", leave.Create)
	l.POST("/:id/approve", leave.Approve)
	l.POST("/:id/reject", leave.Reject)
	l.POST("/:id/cancel", leave.Cancel)
	l.DELETE("/:id", leave.Delete)

	ref := NewReferenceHandler(env.services)
	d := engine.Group("/api/v1/departments")
	d.GET("", ref.ListDepartments)
	d.GET("/:id", ref.GetDepartment)
	d.POST("", ref.CreateDepartment)
	d.PUT("/:id", ref.UpdateDepartment)
	d.DELETE("/:id", ref.DeleteDepartment)
	p := engine.Group("/api/v1/positions")
	p.GET("", ref.ListPositions)
	p.GET("/:id", ref.GetPosition)
	p.POST("", ref.CreatePosition)
	p.DELETE("/:id", ref.DeletePosition)
	lt := engine.Group("/api/v1/leave-types")
	lt.GET("", ref.ListLeaveTypes)
	lt.GET("/:id", ref.GetLeaveType)
	lt.POST("", ref.CreateLeaveType)
	lt.PUT("/:id", ref.UpdateLeaveType)
	lt.DELETE("/:id", ref.DeleteLeaveType)

	return env
}

func (env *testEnv) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	tenantID := env.store.TenantID()

	dept, err := hr.NewDepartment(tenantID, "Engineering", "ENG", "")
	require.NoError(t, err)
	require.NoError(t, env.store.Departments().Add(ctx, dept))

	pos, err := hr.NewPosition(tenantID, "Developer", "DEV", "")
	require.NoError(t, err)
	pos.DepartmentID = &dept.ID
	require.NoError(t, env.store.Positions().Add(ctx, pos))

	annual, err := hr.NewLeaveType(tenantID, "Annual Leave", "AL", 25)
	require.NoError(t, err)
	require.NoError(t, env.store.LeaveTypes().Add(ctx, annual))

	env.department, env.position, env.annual = dept, pos, annual
}

type envelope[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data"`
	Error   *dto.ErrorInfo `json:"error"`
}

func (env *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var resp envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode[json.RawMessage](t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func (env *testEnv) doWithHeaders(t *testing.T, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}
