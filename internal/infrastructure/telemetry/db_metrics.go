package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBMetricsConfig holds configuration for database metrics collection.
type DBMetricsConfig struct {
	SlowQueryThreshold time.Duration // default: 200ms
	PoolStatsInterval  time.Duration // default: 15s
}

// DBMetrics holds the database instruments shared by every tenant pool.
type DBMetrics struct {
	poolConnections    metric.Int64Gauge
	poolConnectionsMax metric.Int64Gauge
	queryTotal         *Counter
	queryDuration      *Histogram
	slowQueryTotal     *Counter

	config DBMetricsConfig
	logger *zap.Logger

	mu       sync.RWMutex
	pools    map[string]*sql.DB
	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewDBMetrics creates the database instruments on meter.
func NewDBMetrics(meter metric.Meter, cfg DBMetricsConfig, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThreshold <= 0 {
		cfg.SlowQueryThreshold = 200 * time.Millisecond
	}
	if cfg.PoolStatsInterval <= 0 {
		cfg.PoolStatsInterval = 15 * time.Second
	}

	poolConnections, err := meter.Int64Gauge("db_pool_connections",
		metric.WithDescription("Number of connections in a tenant pool by state"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections: %w", err)
	}
	poolConnectionsMax, err := meter.Int64Gauge("db_pool_connections_max",
		metric.WithDescription("Maximum number of connections in a tenant pool"),
		metric.WithUnit("{connection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gauge db_pool_connections_max: %w", err)
	}
	queryTotal, err := NewCounter(meter,
		"db_query_total",
		"Total number of database queries by operation type",
		"{query}",
	)
	if err != nil {
		return nil, err
	}
	queryDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "db_query_duration_seconds",
		Description: "Database query latency distribution in seconds",
		Unit:        "s",
		Boundaries:  DBDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	slowQueryTotal, err := NewCounter(meter,
		"db_slow_query_total",
		"Total number of slow database queries",
		"{query}",
	)
	if err != nil {
		return nil, err
	}

	return &DBMetrics{
		poolConnections:    poolConnections,
		poolConnectionsMax: poolConnectionsMax,
		queryTotal:         queryTotal,
		queryDuration:      queryDuration,
		slowQueryTotal:     slowQueryTotal,
		config:             cfg,
		logger:             logger,
		pools:              make(map[string]*sql.DB),
		stopCh:             make(chan struct{}),
	}, nil
}

// TrackPool adds a connection pool to the periodic stats collection
func (m *DBMetrics) TrackPool(name string, sqlDB *sql.DB) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pools[name] = sqlDB
}

// TrackedPools returns the number of pools being collected
func (m *DBMetrics) TrackedPools() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.pools)
}

// StartPoolStatsCollection periodically records pool statistics until Stop
// is called or ctx is done.
func (m *DBMetrics) StartPoolStatsCollection(ctx context.Context) {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.config.PoolStatsInterval)
		defer ticker.Stop()

		m.CollectPoolStats(ctx)
		for {
			select {
			case <-ticker.C:
				m.CollectPoolStats(ctx)
			case <-m.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	m.logger.Info("Started database connection pool stats collection",
		zap.Duration("interval", m.config.PoolStatsInterval),
	)
}

// CollectPoolStats records the current statistics of every tracked pool.
func (m *DBMetrics) CollectPoolStats(ctx context.Context) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for name, sqlDB := range m.pools {
		stats := sqlDB.Stats()
		pool := AttrDBPool.String(name)
		m.poolConnectionsMax.Record(ctx, int64(stats.MaxOpenConnections), metric.WithAttributes(pool))
		m.poolConnections.Record(ctx, int64(stats.Idle), metric.WithAttributes(pool, AttrDBState.String("idle")))
		m.poolConnections.Record(ctx, int64(stats.InUse), metric.WithAttributes(pool, AttrDBState.String("in_use")))
		m.poolConnections.Record(ctx, int64(stats.OpenConnections), metric.WithAttributes(pool, AttrDBState.String("open")))
	}
}

// Stop stops the pool stats collection goroutine. Safe to call multiple times.
func (m *DBMetrics) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopCh)
		m.wg.Wait()
	})
}

// RecordQuery records a completed database statement.
func (m *DBMetrics) RecordQuery(ctx context.Context, operation string, table string, duration time.Duration) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	m.queryTotal.Inc(ctx, AttrDBOperation.String(operation))
	m.queryDuration.RecordDuration(ctx, duration, AttrDBOperation.String(operation))

	if duration > m.config.SlowQueryThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Inc(ctx, AttrDBTable.String(table))
	}
}

// DBMetricsPlugin is a gorm.Plugin recording query metrics and tracking the
// pool it is installed on.
type DBMetricsPlugin struct {
	metrics *DBMetrics
	logger  *zap.Logger

	mu    sync.Mutex
	count int
}

// NewDBMetricsPlugin creates a new GORM plugin for database metrics.
func NewDBMetricsPlugin(metrics *DBMetrics, logger *zap.Logger) *DBMetricsPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBMetricsPlugin{metrics: metrics, logger: logger}
}

// Name implements gorm.Plugin
func (p *DBMetricsPlugin) Name() string {
	return "db_metrics"
}

// Initialize implements gorm.Plugin
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	if err := registerAround(db, "db_metrics", markQueryStart, p.afterStatement); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	p.mu.Lock()
	p.count++
	name := fmt.Sprintf("%s-%d", db.Dialector.Name(), p.count)
	p.mu.Unlock()
	p.metrics.TrackPool(name, sqlDB)

	p.logger.Debug("Database metrics plugin initialized", zap.String("pool", name))
	return nil
}

func (p *DBMetricsPlugin) afterStatement(op string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			ctx = context.Background()
		}
		operation := op
		if operation == "" {
			operation = detectOperationType(db.Statement.SQL.String())
		}
		elapsed, _ := queryElapsed(ctx)
		p.metrics.RecordQuery(ctx, operation, db.Statement.Table, elapsed)
	}
}

func detectOperationType(sql string) string {
	sql = strings.TrimSpace(strings.ToUpper(sql))
	switch {
	case strings.HasPrefix(sql, "SELECT"):
		return "SELECT"
	case strings.HasPrefix(sql, "INSERT"):
		return "INSERT"
	case strings.HasPrefix(sql, "UPDATE"):
		return "UPDATE"
	case strings.HasPrefix(sql, "DELETE"):
		return "DELETE"
	default:
		return "OTHER"
	}
}
