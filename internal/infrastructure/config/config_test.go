package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hrapi/backend/internal/domain/tenancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"HRAPI_APP_NAME",
	"HRAPI_APP_ENV",
	"HRAPI_APP_PORT",
	"HRAPI_DATABASE_HOST",
	"HRAPI_DATABASE_PORT",
	"HRAPI_DATABASE_PASSWORD",
	"HRAPI_DATABASE_SSLMODE",
	"HRAPI_DATABASE_MAX_OPEN_CONNS",
	"HRAPI_DATABASE_MAX_IDLE_CONNS",
	"HRAPI_TENANT_TYPE",
	"HRAPI_TENANT_INSTANCE_NAME",
	"HRAPI_CACHE_BACKEND",
	"HRAPI_CACHE_TTL",
	"HRAPI_JWT_SECRET",
	"HRAPI_JWT_REQUIRED",
	"HRAPI_TELEMETRY_SAMPLING_RATIO",
	"HRAPI_TELEMETRY_DB_LOG_FULL_SQL",
}

// isolate runs Load from an empty directory with every HRAPI_ variable unset
func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		isolate(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "hrapi", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "hrapi_directory", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "memory", cfg.Cache.Backend)
		assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
		assert.Equal(t, "Standard", cfg.Tenant.Type)
		assert.Equal(t, "Default", cfg.Tenant.InstanceName)
		assert.False(t, cfg.Admin.Enabled)
	})

	t.Run("loads values from environment variables with HRAPI prefix", func(t *testing.T) {
		isolate(t)
		t.Setenv("HRAPI_APP_NAME", "test-app")
		t.Setenv("HRAPI_APP_PORT", "9000")
		t.Setenv("HRAPI_DATABASE_HOST", "testdb.local")
		t.Setenv("HRAPI_DATABASE_PORT", "5433")
		t.Setenv("HRAPI_TENANT_TYPE", "restricted")
		t.Setenv("HRAPI_TENANT_INSTANCE_NAME", "Company2")
		t.Setenv("HRAPI_CACHE_BACKEND", "Ristretto")
		t.Setenv("HRAPI_CACHE_TTL", "5m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "ristretto", cfg.Cache.Backend)
		assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)

		tc := cfg.Tenant.TenantConfiguration()
		assert.Equal(t, tenancy.TenantTypeRestricted, tc.Type)
		assert.Equal(t, "Company2", tc.InstanceName)
	})

	t.Run("reads tenant section from config.toml", func(t *testing.T) {
		dir := isolate(t)
		toml := `
[tenant]
type = "Enterprise"
instance_name = "Company1"
description = "first customer"

[tenant.feature_flags]
leave_balances = true
exports = false

[tenant.custom_rules]
max_employees = 500
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o600))

		cfg, err := Load()
		require.NoError(t, err)

		tc := cfg.Tenant.TenantConfiguration()
		assert.Equal(t, tenancy.TenantTypeEnterprise, tc.Type)
		assert.Equal(t, "Company1", tc.InstanceName)
		assert.Equal(t, "first customer", tc.Description)
		assert.True(t, tc.FeatureEnabled("leave_balances"))
		assert.False(t, tc.FeatureEnabled("exports"))
		rule, ok := tc.CustomRule("max_employees")
		assert.True(t, ok)
		assert.EqualValues(t, 500, rule)
	})

	t.Run("reads .env before environment lookup", func(t *testing.T) {
		dir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HRAPI_APP_PORT=7070\n"), 0o600))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.App.Port)
		os.Unsetenv("HRAPI_APP_PORT")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		isolate(t)
		t.Setenv("HRAPI_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("HRAPI_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown tenant type", func(t *testing.T) {
		isolate(t)
		t.Setenv("HRAPI_TENANT_TYPE", "Platinum")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tenant.type")
	})

	t.Run("rejects unknown cache backend", func(t *testing.T) {
		isolate(t)
		t.Setenv("HRAPI_CACHE_BACKEND", "memcached")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cache.backend")
	})

	t.Run("requires a long jwt secret when tokens are required", func(t *testing.T) {
		isolate(t)
		t.Setenv("HRAPI_JWT_REQUIRED", "true")
		t.Setenv("HRAPI_JWT_SECRET", "short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("rejects sampling ratio outside range", func(t *testing.T) {
		isolate(t)
		t.Setenv("HRAPI_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		isolate(t)
		t.Setenv("HRAPI_APP_ENV", "production")
		t.Setenv("HRAPI_DATABASE_PASSWORD", "secure-password")
		t.Setenv("HRAPI_DATABASE_SSLMODE", "require")
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("HRAPI_DATABASE_PASSWORD", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("HRAPI_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("forbids full SQL in traces in production", func(t *testing.T) {
		setValidProductionBase(t)
		t.Setenv("HRAPI_TELEMETRY_DB_LOG_FULL_SQL", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db_log_full_sql")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestTenantConfig_TenantConfiguration(t *testing.T) {
	tc := TenantConfig{Type: "2"}.TenantConfiguration()

	assert.Equal(t, tenancy.TenantTypeRestricted, tc.Type)
	assert.Equal(t, tenancy.DefaultInstanceName, tc.InstanceName)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "/testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}
