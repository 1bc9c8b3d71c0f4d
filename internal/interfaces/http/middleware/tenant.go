package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apptenancy "github.com/hrapi/backend/internal/application/tenancy"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/infrastructure/logger"
	"github.com/hrapi/backend/internal/infrastructure/telemetry"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Tenant keys in gin.Context
const (
	TenantIDKey     = logger.GinTenantIDKey
	TenantStoreKey  = "tenant_store"
	TenantHeaderKey = apptenancy.HeaderTenantID
)

// DefaultTenantSkipPaths need no tenant context. The bare root path is
// always skipped.
var DefaultTenantSkipPaths = []string{"/api/health", "/swagger", "/favicon.ico", "/api/admin"}

// TenantResolver finds the tenant a request belongs to
type TenantResolver interface {
	ResolveTenantID(ctx context.Context, req apptenancy.RequestContext) (string, error)
	IsTenantActive(ctx context.Context, tenantID string) (bool, error)
}

// StoreOpener opens the data store of a tenant
type StoreOpener interface {
	OpenTenantStore(ctx context.Context, tenantID string) (hr.Store, error)
}

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	Resolver  TenantResolver
	Stores    StoreOpener
	SkipPaths []string
	Logger    *zap.Logger
}

// TenantMiddleware resolves the tenant of every request outside the skip
// paths, checks it is active and attaches its store to the request.
func TenantMiddleware(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	if cfg.SkipPaths == nil {
		cfg.SkipPaths = DefaultTenantSkipPaths
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		if skipPath(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		tenantID, err := cfg.Resolver.ResolveTenantID(ctx, ginRequest{c})
		if err != nil {
			log.Error("Tenant resolution failed", zap.Error(err))
			abortWithStatus(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Failed to resolve tenant")
			return
		}
		if tenantID == "" {
			abortWithStatus(c, http.StatusBadRequest, shared.CodeNoTenantContext, "Tenant context is required")
			return
		}

		active, err := cfg.Resolver.IsTenantActive(ctx, tenantID)
		if err != nil {
			log.Error("Tenant status check failed", zap.String("tenant_id", tenantID), zap.Error(err))
			abortWithStatus(c, http.StatusInternalServerError, dto.ErrCodeInternal, "Failed to resolve tenant")
			return
		}
		if !active {
			log.Warn("Rejected request for inactive or unknown tenant", zap.String("tenant_id", tenantID))
			abortWithStatus(c, http.StatusForbidden, shared.CodeTenantInactive, "Tenant is not active")
			return
		}

		c.Set(TenantIDKey, tenantID)
		c.Set(logger.GinLoggerKey, logger.GetGinLogger(c).With(zap.String("tenant_id", tenantID)))
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID)
		telemetry.SetAttribute(trace.SpanFromContext(ctx), telemetry.SpanAttrTenantID, tenantID)
		c.Request = c.Request.WithContext(ctx)

		store, err := cfg.Stores.OpenTenantStore(ctx, tenantID)
		if err != nil {
			log.Error("Failed to open tenant store", zap.String("tenant_id", tenantID), zap.Error(err))
			AbortWithError(c, err)
			return
		}
		c.Set(TenantStoreKey, store)

		c.Next()
	}
}

func skipPath(path string, skipPaths []string) bool {
	if path == "/" {
		return true
	}
	for _, p := range skipPaths {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}

// ginRequest exposes a gin request to the resolver
type ginRequest struct {
	c *gin.Context
}

func (r ginRequest) Header(name string) (string, bool) {
	values, ok := r.c.Request.Header[http.CanonicalHeaderKey(name)]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

func (r ginRequest) Host() string { return r.c.Request.Host }

func (r ginRequest) Claim(name string) string {
	if claims := GetJWTClaims(r.c); claims != nil {
		return claims.Value(name)
	}
	return ""
}

// GetTenantID returns the tenant id set by TenantMiddleware
func GetTenantID(c *gin.Context) string {
	return c.GetString(TenantIDKey)
}

// GetTenantStore returns the store opened by TenantMiddleware, or nil
func GetTenantStore(c *gin.Context) hr.Store {
	if v, ok := c.Get(TenantStoreKey); ok {
		if store, ok := v.(hr.Store); ok {
			return store
		}
	}
	return nil
}

// AbortWithError ends the request with the response mapped from err
func AbortWithError(c *gin.Context, err error) {
	status, code, message := dto.ResolveError(err)
	abortWithStatus(c, status, code, message)
}

func abortWithStatus(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
