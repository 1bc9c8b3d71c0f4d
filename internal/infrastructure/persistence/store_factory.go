package persistence

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/shared"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/hrapi/backend/internal/infrastructure/persistence/models"
	"github.com/hrapi/backend/internal/infrastructure/persistence/tenant"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Driver names reported by DialectorFor
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ConnectionSource looks up the connection descriptor of an active tenant.
// An empty descriptor means the tenant is unknown or inactive.
type ConnectionSource interface {
	GetConnectionDescriptor(ctx context.Context, tenantID string) (string, error)
}

// StoreFactory builds tenant-bound stores. Connection pools are shared per
// descriptor; every call returns a fresh store handle.
type StoreFactory struct {
	source   ConnectionSource
	cfg      config.TenantStoreConfig
	logger   *zap.Logger
	logLevel gormlogger.LogLevel
	plugins  []gorm.Plugin

	dial  func(ctx context.Context, descriptor string) (*gorm.DB, error)
	group singleflight.Group

	mu    sync.Mutex
	pools map[string]*tenantPool
}

type tenantPool struct {
	db       *gorm.DB
	migrated bool
}

// StoreFactoryOption configures a StoreFactory
type StoreFactoryOption func(*StoreFactory)

// WithStoreLogger sets the logger and the SQL log level of tenant pools
func WithStoreLogger(l *zap.Logger, level gormlogger.LogLevel) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = l
		f.logLevel = level
	}
}

// WithStorePlugins registers gorm plugins (tracing, metrics) on every tenant pool
func WithStorePlugins(plugins ...gorm.Plugin) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.plugins = append(f.plugins, plugins...)
	}
}

// NewStoreFactory creates a store factory resolving descriptors through source
func NewStoreFactory(source ConnectionSource, cfg config.TenantStoreConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		source:   source,
		cfg:      cfg,
		logger:   zap.NewNop(),
		logLevel: gormlogger.Silent,
		pools:    make(map[string]*tenantPool),
	}
	f.dial = f.open
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.Named("store_factory")
	return f
}

// OpenTenantStore returns a store bound to tenantID.
// It fails with NoTenantContext for an empty id and with UnknownConnection
// when the tenant has no active connection descriptor.
func (f *StoreFactory) OpenTenantStore(ctx context.Context, tenantID string) (hr.Store, error) {
	tenantID = strings.TrimSpace(tenantID)
	if tenantID == "" {
		return nil, shared.ErrNoTenantContext
	}
	id, err := uuid.Parse(tenantID)
	if err != nil {
		return nil, unknownConnection(tenantID)
	}

	descriptor, err := f.source.GetConnectionDescriptor(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve connection for tenant %s: %w", tenantID, err)
	}
	if descriptor == "" {
		return nil, unknownConnection(tenantID)
	}

	db, err := f.pool(ctx, descriptor, f.cfg.AutoMigrate)
	if err != nil {
		return nil, err
	}
	return NewGormStore(db, id), nil
}

// ProvisionStore creates the HR schema behind descriptor and returns a store
// bound to tenantID. Used before the tenant is resolvable.
func (f *StoreFactory) ProvisionStore(ctx context.Context, tenantID uuid.UUID, descriptor string) (hr.Store, error) {
	db, err := f.pool(ctx, descriptor, true)
	if err != nil {
		return nil, err
	}
	f.logger.Info("Tenant store provisioned",
		zap.String("tenant_id", tenantID.String()),
		zap.String("connection", tenancy.MaskConnectionString(descriptor)),
	)
	return NewGormStore(db.WithContext(ctx), tenantID), nil
}

// OpenPools returns the number of cached connection pools
func (f *StoreFactory) OpenPools() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pools)
}

// ClosePool closes and forgets the pool opened for descriptor.
// The next store opened on descriptor dials a new pool.
func (f *StoreFactory) ClosePool(descriptor string) error {
	f.mu.Lock()
	p, ok := f.pools[descriptor]
	delete(f.pools, descriptor)
	f.mu.Unlock()

	if !ok {
		return nil
	}
	if err := closeGormDB(p.db); err != nil {
		return fmt.Errorf("failed to close tenant pool %s: %w", tenancy.MaskConnectionString(descriptor), err)
	}
	f.logger.Info("Tenant connection pool closed",
		zap.String("connection", tenancy.MaskConnectionString(descriptor)))
	return nil
}

// Close closes every cached connection pool
func (f *StoreFactory) Close() error {
	f.mu.Lock()
	pools := f.pools
	f.pools = make(map[string]*tenantPool)
	f.mu.Unlock()

	var firstErr error
	for _, p := range pools {
		if err := closeGormDB(p.db); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close tenant pool: %w", err)
		}
	}
	return firstErr
}

// pool returns the cached pool for descriptor, dialing it on first use.
// Only the map is guarded by f.mu; concurrent first opens of the same
// descriptor share one dial.
func (f *StoreFactory) pool(ctx context.Context, descriptor string, migrate bool) (*gorm.DB, error) {
	if db, ok := f.cachedPool(descriptor, migrate); ok {
		return db, nil
	}

	key := descriptor
	if migrate {
		key = "migrate|" + descriptor
	}
	ch := f.group.DoChan(key, func() (any, error) {
		return f.openPool(ctx, descriptor, migrate)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*gorm.DB), nil
	}
}

func (f *StoreFactory) cachedPool(descriptor string, migrate bool) (*gorm.DB, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pools[descriptor]
	if !ok || (migrate && !p.migrated) {
		return nil, false
	}
	return p.db, true
}

func (f *StoreFactory) openPool(ctx context.Context, descriptor string, migrate bool) (*gorm.DB, error) {
	f.mu.Lock()
	p, ok := f.pools[descriptor]
	f.mu.Unlock()

	if !ok {
		db, err := f.dial(ctx, descriptor)
		if err != nil {
			return nil, err
		}
		f.mu.Lock()
		if existing, raced := f.pools[descriptor]; raced {
			p = existing
		} else {
			p = &tenantPool{db: db}
			f.pools[descriptor] = p
		}
		f.mu.Unlock()
		if p.db != db {
			_ = closeGormDB(db)
		}
	}

	if migrate {
		f.mu.Lock()
		done := p.migrated
		f.mu.Unlock()
		if !done {
			if err := p.db.WithContext(ctx).AutoMigrate(models.HRModels()...); err != nil {
				return nil, fmt.Errorf("failed to migrate tenant store %s: %w",
					tenancy.MaskConnectionString(descriptor), err)
			}
			f.mu.Lock()
			p.migrated = true
			f.mu.Unlock()
		}
	}
	return p.db, nil
}

func closeGormDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (f *StoreFactory) open(ctx context.Context, descriptor string) (*gorm.DB, error) {
	masked := tenancy.MaskConnectionString(descriptor)
	dialector, driver, err := DialectorFor(descriptor)
	if err != nil {
		return nil, err
	}

	gcfg := gormConfig(f.logger, f.logLevel)
	gcfg.DisableAutomaticPing = true
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open tenant store %s: %w", masked, err)
	}
	if err := tenant.EnableAutoTenantFilter(db, true); err != nil {
		return nil, fmt.Errorf("failed to register tenant callbacks: %w", err)
	}
	for _, p := range f.plugins {
		if err := db.Use(p); err != nil {
			return nil, fmt.Errorf("failed to register gorm plugin %s: %w", p.Name(), err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if driver == DriverSQLite {
		// one connection keeps in-memory databases alive and serializes writers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(f.cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(f.cfg.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(f.cfg.ConnMaxLifetime)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to reach tenant store %s: %w", masked, err)
	}

	f.logger.Info("Tenant connection pool opened",
		zap.String("driver", driver),
		zap.String("connection", masked),
	)
	return db, nil
}

// DialectorFor picks the gorm dialector for a connection descriptor.
// postgres:// and postgresql:// URLs and key=value DSNs with a host use
// PostgreSQL; sqlite:// and file: descriptors use SQLite.
func DialectorFor(descriptor string) (gorm.Dialector, string, error) {
	d := strings.TrimSpace(descriptor)
	lower := strings.ToLower(d)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return postgres.Open(d), DriverPostgres, nil
	case strings.HasPrefix(lower, "sqlite://"):
		return sqlite.Open(d[len("sqlite://"):]), DriverSQLite, nil
	case strings.HasPrefix(lower, "file:"):
		return sqlite.Open(d), DriverSQLite, nil
	case strings.Contains(lower, "host="):
		return postgres.Open(d), DriverPostgres, nil
	}
	return nil, "", shared.NewInvalidInputError(
		fmt.Sprintf("Unsupported connection string: %s", tenancy.MaskConnectionString(d)))
}

func unknownConnection(tenantID string) error {
	return shared.NewDomainError(shared.CodeUnknownConnection,
		fmt.Sprintf("No connection string found for tenant: %s", tenantID))
}
