//go:build integration

package migration

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	tenancyapp "github.com/hrapi/backend/internal/application/tenancy"
	"github.com/hrapi/backend/internal/domain/hr"
	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/hrapi/backend/internal/infrastructure/cache"
	"github.com/hrapi/backend/internal/infrastructure/config"
	"github.com/hrapi/backend/internal/infrastructure/persistence"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("hrapi_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

func TestMigrator_UpDown(t *testing.T) {
	dsn := startPostgres(t)

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer sqlDB.Close()

	m, err := New(sqlDB, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, m.Up())
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)

	// idempotent
	require.NoError(t, m.Up())

	_, err = sqlDB.Exec(`INSERT INTO tenants (id, name, subdomain, connection_string)
		VALUES ($1, 'Bad', 'Not_A_Label', 'x')`, uuid.New())
	assert.Error(t, err, "subdomain check constraint")

	require.NoError(t, m.Steps(-1))
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, m.Down())
	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
}

func TestDirectory_TwoTenantIsolation(t *testing.T) {
	dsn := startPostgres(t)
	ctx := context.Background()

	m, err := NewFromURL(dsn, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	directory := persistence.NewGormTenantDirectory(db)

	acme, err := tenancy.NewTenant("Acme", "acme", dsn+"&application_name=acme")
	require.NoError(t, err)
	globex, err := tenancy.NewTenant("Globex", "globex", dsn+"&application_name=globex")
	require.NoError(t, err)
	require.NoError(t, directory.Save(ctx, acme))
	require.NoError(t, directory.Save(ctx, globex))

	resolver := tenancyapp.NewResolver(directory, cache.NewInMemoryTenantCache())
	factory := persistence.NewStoreFactory(resolver, config.TenantStoreConfig{
		MaxOpenConns: 5,
		MaxIdleConns: 1,
		AutoMigrate:  true,
	})
	t.Cleanup(func() { _ = factory.Close() })

	acmeStore, err := factory.OpenTenantStore(ctx, acme.ID.String())
	require.NoError(t, err)
	globexStore, err := factory.OpenTenantStore(ctx, globex.ID.String())
	require.NoError(t, err)

	dept, err := hr.NewDepartment(acme.ID, "Engineering", "ENG", "")
	require.NoError(t, err)
	require.NoError(t, acmeStore.Departments().Add(ctx, dept))

	acmeDepts, err := acmeStore.Departments().GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, acmeDepts, 1)

	globexDepts, err := globexStore.Departments().GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, globexDepts)

	found, err := globexStore.Departments().GetByID(ctx, dept.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	acme.Deactivate()
	require.NoError(t, directory.Save(ctx, acme))
	require.NoError(t, resolver.Evict(ctx, acme))

	_, err = factory.OpenTenantStore(ctx, acme.ID.String())
	assert.Error(t, err)
}
