package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	apptenancy "github.com/hrapi/backend/internal/application/tenancy"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/auth"
	"github.com/hrapi/backend/internal/infrastructure/cache"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/hrapi/backend/internal/infrastructure/event"
	"github.com/hrapi/backend/internal/infrastructure/persistence"
	"github.com/hrapi/backend/internal/infrastructure/persistence/models"
	"github.com/hrapi/backend/internal/infrastructure/strategy"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
	"github.com/hrapi/backend/internal/interfaces/http/handler"
	"github.com/hrapi/backend/internal/interfaces/http/middleware"
	"github.com/hrapi/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stack struct {
	cfg          EngineConfig
	deps         Dependencies
	provisioning *apptenancy.ProvisioningService
	jwt          *auth.JWTService
}

// newStack wires the real resolver, cache, store factory and event bus
// against an in-memory SQLite directory
func newStack(t *testing.T) *stack {
	t.Helper()

	db := testutil.NewSQLiteDB(t, &models.TenantModel{})
	directory := persistence.NewGormTenantDirectory(db)

	tenantCache := cache.NewInMemoryTenantCache()
	t.Cleanup(func() { _ = tenantCache.Close() })
	resolver := apptenancy.NewResolver(directory, tenantCache)

	factory := persistence.NewStoreFactory(resolver, config.TenantStoreConfig{MaxOpenConns: 1, MaxIdleConns: 1})
	t.Cleanup(func() { _ = factory.Close() })

	bus := event.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(apptenancy.NewCacheEvictionHandler(tenantCache, zap.NewNop()))
	bus.Subscribe(apptenancy.NewPoolEvictionHandler(factory, zap.NewNop()))

	registry, err := strategy.NewRegistryWithDefaults(nil)
	require.NoError(t, err)

	s := &stack{
		provisioning: apptenancy.NewProvisioningService(directory, factory, bus, zap.NewNop()),
		jwt: auth.NewJWTService(config.JWTConfig{
			Secret:                "engine-test-secret",
			AccessTokenExpiration: time.Hour,
		}, auth.NewInMemoryTokenBlacklist()),
	}
	s.cfg = EngineConfig{
		App:   config.AppConfig{Name: "hrapi", Env: "test"},
		Admin: config.AdminConfig{Enabled: true},
	}
	s.deps = Dependencies{
		Resolver:     resolver,
		Stores:       factory,
		Services:     handler.NewServiceFactory(registry, tenancy.DefaultTenantConfiguration().WithDefaults(), bus),
		Provisioning: s.provisioning,
		Tokens:       s.jwt,
	}
	return s
}

func (s *stack) createTenant(t *testing.T, subdomain string) uuid.UUID {
	t.Helper()
	result, err := s.provisioning.Create(context.Background(), apptenancy.CreateTenantInput{
		Name:             subdomain + " Inc",
		Subdomain:        subdomain,
		ConnectionString: testutil.SQLiteDescriptor("engine"),
	})
	require.NoError(t, err)
	return result.Tenant.ID
}

func serve(t *testing.T, s *stack, method, path string, headers map[string]string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	engine := NewEngine(s.cfg, s.deps)
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var resp dto.Response
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w, resp
}

func TestEngine_HealthNeedsNoTenant(t *testing.T) {
	s := newStack(t)

	w, resp := serve(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestEngine_TenantRouting(t *testing.T) {
	s := newStack(t)
	tenantID := s.createTenant(t, "acme")
	headers := map[string]string{middleware.TenantHeaderKey: tenantID.String()}

	w, resp := serve(t, s, http.MethodGet, "/api/v1/departments", headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	departments, ok := resp.Data.([]any)
	require.True(t, ok)
	assert.Len(t, departments, 5)

	w, resp = serve(t, s, http.MethodGet, "/api/v1/tenant", headers)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := resp.Data.(map[string]any)
	assert.Equal(t, "standard", data["strategy"])

	w, resp = serve(t, s, http.MethodGet, "/api/v1/employees", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, shared.CodeNoTenantContext, resp.Error.Code)
}

func TestEngine_DeactivatedTenantIsRejected(t *testing.T) {
	s := newStack(t)
	tenantID := s.createTenant(t, "acme")
	headers := map[string]string{middleware.TenantHeaderKey: tenantID.String()}

	w, _ := serve(t, s, http.MethodGet, "/api/v1/employees", headers)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := s.provisioning.Deactivate(context.Background(), tenantID)
	require.NoError(t, err)

	w, resp := serve(t, s, http.MethodGet, "/api/v1/employees", headers)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, shared.CodeTenantInactive, resp.Error.Code)
}

func TestEngine_TenantFromTokenClaim(t *testing.T) {
	s := newStack(t)
	tenantID := s.createTenant(t, "acme")
	token, _, err := s.jwt.GenerateAccessToken(auth.GenerateTokenInput{TenantID: tenantID, UserID: uuid.New()})
	require.NoError(t, err)

	w, _ := serve(t, s, http.MethodGet, "/api/v1/positions", map[string]string{
		middleware.AuthHeaderKey: middleware.BearerPrefix + token,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestEngine_AuthRequired(t *testing.T) {
	s := newStack(t)
	s.cfg.AuthRequired = true

	w, resp := serve(t, s, http.MethodGet, "/api/admin/tenants", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)

	w, _ = serve(t, s, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestEngine_AdminToggle(t *testing.T) {
	s := newStack(t)
	s.createTenant(t, "acme")

	w, resp := serve(t, s, http.MethodGet, "/api/admin/tenants", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp.Data, 1)

	s.cfg.Admin.Enabled = false
	w, resp = serve(t, s, http.MethodGet, "/api/admin/tenants", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeRouteMissing, resp.Error.Code)
}

func TestEngine_UnknownRoute(t *testing.T) {
	s := newStack(t)

	w, resp := serve(t, s, http.MethodGet, "/api/v1/payroll", map[string]string{
		middleware.TenantHeaderKey: uuid.NewString(),
	})
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, shared.CodeTenantInactive, resp.Error.Code)

	w, resp = serve(t, s, http.MethodGet, "/api/health/payroll", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, dto.ErrCodeRouteMissing, resp.Error.Code)
}
