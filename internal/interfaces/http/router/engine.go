package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hrapi/backend/internal/application/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/hrapi/backend/internal/infrastructure/logger"
	"github.com/hrapi/backend/internal/interfaces/http/dto"
	"github.com/hrapi/backend/internal/interfaces/http/handler"
	"github.com/hrapi/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// TenantResolver is what the HTTP layer needs from the tenant resolver
type TenantResolver interface {
	middleware.TenantResolver
	handler.TenantLookup
}

// EngineConfig holds the settings the HTTP engine is built from
type EngineConfig struct {
	App          config.AppConfig
	HTTP         config.HTTPConfig
	Admin        config.AdminConfig
	Tracing      middleware.TracingConfig
	AuthRequired bool
	MaxBodyBytes int64
	Version      string
}

// Dependencies are the collaborators the HTTP engine wires into handlers
type Dependencies struct {
	Logger       *zap.Logger
	Resolver     TenantResolver
	Stores       middleware.StoreOpener
	Services     *handler.ServiceFactory
	Provisioning *tenancy.ProvisioningService
	// Tokens validates bearer tokens. Nil disables authentication.
	Tokens interface {
		middleware.TokenValidator
		handler.TokenRevoker
	}
	Directory   handler.Pinger
	HTTPMetrics *middleware.HTTPMetrics
}

// NewEngine builds the gin engine with the full middleware chain and every
// route mounted
func NewEngine(cfg EngineConfig, deps Dependencies) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = middleware.DefaultMaxBodyBytes
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfigFrom(cfg.HTTP)))
	engine.Use(middleware.BodyLimit(maxBody))
	engine.Use(middleware.Tracing(cfg.Tracing))
	engine.Use(middleware.SpanEnricher())
	if deps.HTTPMetrics != nil {
		engine.Use(deps.HTTPMetrics.Middleware())
	}

	var revoker handler.TokenRevoker
	if deps.Tokens != nil {
		revoker = deps.Tokens
		engine.Use(middleware.JWTAuthMiddleware(middleware.JWTMiddlewareConfig{
			Validator: deps.Tokens,
			Required:  cfg.AuthRequired,
			Logger:    log,
		}))
	}
	engine.Use(middleware.TenantMiddleware(middleware.TenantMiddlewareConfig{
		Resolver: deps.Resolver,
		Stores:   deps.Stores,
		Logger:   log,
	}))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeRouteMissing, "Route not found", middleware.GetRequestID(c)))
	})

	system := handler.NewSystemHandler(cfg.App.Name, cfg.Version, deps.Directory)
	tenants := handler.NewTenantHandler(deps.Provisioning, deps.Resolver, revoker, deps.Services)

	base := NewRouter(engine, WithAPIVersion(""))
	base.Register(HealthRoutes(system))
	if cfg.Admin.Enabled && deps.Provisioning != nil {
		base.Register(AdminRoutes(tenants))
		log.Info("Tenant administration endpoints enabled")
	}
	base.Setup()

	v1 := NewRouter(engine)
	v1.Register(
		EmployeeRoutes(handler.NewEmployeeHandler(deps.Services)),
		LeaveRoutes(handler.NewLeaveHandler(deps.Services)),
		CurrentTenantRoutes(tenants),
	)
	v1.Register(ReferenceRoutes(handler.NewReferenceHandler(deps.Services))...)
	v1.Setup()

	return engine
}
