package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apphr "github.com/hrapi/backend/internal/application/hr"
	apptenancy "github.com/hrapi/backend/internal/application/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/auth"
	"github.com/hrapi/backend/internal/infrastructure/cache"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/hrapi/backend/internal/infrastructure/event"
	"github.com/hrapi/backend/internal/infrastructure/logger"
	"github.com/hrapi/backend/internal/infrastructure/persistence"
	"github.com/hrapi/backend/internal/infrastructure/strategy"
	"github.com/hrapi/backend/internal/infrastructure/telemetry"
	"github.com/hrapi/backend/internal/interfaces/http/handler"
	"github.com/hrapi/backend/internal/interfaces/http/middleware"
	"github.com/hrapi/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// version is stamped at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server terminated", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.ConfigFrom(cfg.Telemetry), log)
	if err != nil {
		return fmt.Errorf("tracer provider: %w", err)
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfigFrom(cfg.Telemetry), log)
	if err != nil {
		return fmt.Errorf("meter provider: %w", err)
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfigFrom(cfg.Telemetry), log)
	if err != nil {
		return fmt.Errorf("logger provider: %w", err)
	}
	otelCore := telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		LoggerProvider: loggerProvider,
		Level:          logger.ParseLevel(cfg.Log.Level),
	})
	log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, otelCore)
	}))

	log.Info("Starting HR API",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	meter := meterProvider.Meter(cfg.Telemetry.ServiceName)
	tenancyMetrics, err := telemetry.NewTenancyMetrics(meter)
	if err != nil {
		return fmt.Errorf("tenancy metrics: %w", err)
	}
	dbMetrics, err := telemetry.NewDBMetrics(meter, telemetry.DBMetricsConfig{
		SlowQueryThreshold: cfg.Telemetry.DBSlowQueryThresh,
	}, log)
	if err != nil {
		return fmt.Errorf("database metrics: %w", err)
	}
	httpMetrics, err := middleware.NewHTTPMetrics(meter)
	if err != nil {
		return fmt.Errorf("http metrics: %w", err)
	}
	dbTracing := telemetry.DBTracingConfigFrom(cfg.Telemetry)
	gormLevel := logger.MapGormLogLevel(cfg.Log.Level)

	// Tenant directory
	directoryDB, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithDatabaseLogger(log, gormLevel),
		persistence.WithDatabasePlugins(
			telemetry.NewDBTracingPlugin(dbTracing, log),
			telemetry.NewDBMetricsPlugin(dbMetrics, log),
		),
	)
	if err != nil {
		return err
	}
	log.Info("Tenant directory connected")
	directory := persistence.NewGormTenantDirectory(directoryDB.DB)

	// Tenant registry cache and resolver
	var redisClient *redis.Client
	if cfg.Cache.Backend == cache.BackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	tenantCache, err := cache.NewTenantCacheFactory(cfg.Cache, cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	).CreateCache()
	if err != nil {
		return err
	}
	resolver := apptenancy.NewResolver(directory, tenantCache,
		apptenancy.WithCacheTTL(cfg.Cache.TTL),
		apptenancy.WithResolverMetrics(tenancyMetrics),
		apptenancy.WithResolverLogger(log),
	)

	// Events
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(apptenancy.NewCacheEvictionHandler(tenantCache, log))
	bus.Subscribe(apphr.NewLeaveAuditHandler(log))
	if err := bus.Start(ctx); err != nil {
		return fmt.Errorf("event bus: %w", err)
	}

	// Customization strategies
	registry, err := strategy.NewRegistryWithDefaults(nil)
	if err != nil {
		return fmt.Errorf("strategy registry: %w", err)
	}
	tenantConfig := cfg.Tenant.TenantConfiguration()
	selector := telemetry.NewInstrumentedSelector(registry, tenancyMetrics)
	log.Info("Customization strategy selected",
		zap.String("strategy", registry.SelectStrategy(tenantConfig).Name()),
		zap.String("tenant_type", tenantConfig.Type.String()),
		zap.String("instance", tenantConfig.InstanceName),
	)

	// Per-tenant stores
	stores := persistence.NewStoreFactory(resolver, cfg.TenantStore,
		persistence.WithStoreLogger(log, gormLevel),
		persistence.WithStorePlugins(
			telemetry.NewDBTracingPlugin(dbTracing, log),
			telemetry.NewDBMetricsPlugin(dbMetrics, log),
		),
	)
	bus.Subscribe(apptenancy.NewPoolEvictionHandler(stores, log))
	dbMetrics.StartPoolStatsCollection(ctx)

	provisioning := apptenancy.NewProvisioningService(directory, stores, bus, log)
	services := handler.NewServiceFactory(selector, tenantConfig, bus, apphr.WithLeaveMetrics(tenancyMetrics))

	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient, "")
	}
	deps := router.Dependencies{
		Logger:       log,
		Resolver:     resolver,
		Stores:       stores,
		Services:     services,
		Provisioning: provisioning,
		Directory:    directoryDB,
		HTTPMetrics:  httpMetrics,
	}
	if cfg.JWT.Secret != "" {
		deps.Tokens = auth.NewJWTService(cfg.JWT, blacklist)
	} else {
		log.Warn("JWT secret not configured, bearer tokens are ignored")
	}

	engine := router.NewEngine(router.EngineConfig{
		App:   cfg.App,
		HTTP:  cfg.HTTP,
		Admin: cfg.Admin,
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		AuthRequired: cfg.JWT.Required,
		Version:      version,
	}, deps)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	case err := <-serveErr:
		if err != nil {
			log.Error("Failed to start server", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := bus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	dbMetrics.Stop()
	if err := stores.Close(); err != nil {
		log.Error("Error closing tenant stores", zap.Error(err))
	}
	if err := tenantCache.Close(); err != nil {
		log.Error("Error closing tenant cache", zap.Error(err))
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := directoryDB.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logger": loggerProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down telemetry provider", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
	return nil
}
