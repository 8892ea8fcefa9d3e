package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func envMap(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yml"), envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, defaultSQLitePath, cfg.Database.Path)
	assert.False(t, cfg.Redis.Enable)
	assert.Equal(t, defaultRateLimitWindow, cfg.RateLimit.WindowSeconds)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
port: 8080
env: production
database:
  driver: mysql
  host: db.internal
  user: app
  password: secret
  name: links
redis:
  url: localhost:6380/1
jwt_secret: jwt
allowed_origins:
  - " https://example.com "
  - ""
rate_limit:
  clicks: 5
content:
  sanitize_html: true
`)

	cfg, err := LoadWithEnv(path, envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.IsDev())
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, defaultMySQLPort, cfg.Database.Port)
	assert.Equal(t, "redis://localhost:6380/1", cfg.Redis.URLValue())
	assert.True(t, cfg.Redis.Enable)
	assert.Equal(t, "jwt", cfg.SessionSecret)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 5, cfg.RateLimit.Clicks)
	assert.Equal(t, defaultViewLimit, cfg.RateLimit.Views)
	assert.True(t, cfg.Content.SanitizeHTML)

	dsn := cfg.Database.DSNValue()
	assert.Contains(t, dsn, "app:secret@tcp(db.internal:3306)/links")
	assert.Contains(t, dsn, "parseTime=true")
	assert.Contains(t, dsn, "charset=utf8mb4")
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "port: 8080\nunknown_key: 1\n")
	_, err := LoadWithEnv(path, envMap(nil))
	assert.Error(t, err)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "port out of range", content: "port: 70000\n"},
		{name: "unknown driver", content: "database:\n  driver: oracle\n"},
		{name: "negative redis db", content: "redis:\n  db: -1\n"},
		{name: "bad timezone", content: "timezone: Mars/Olympus\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWithEnv(writeConfig(t, tt.content), envMap(nil))
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "port: 8080\njwt_secret: file\n")
	cfg, err := LoadWithEnv(path, envMap(map[string]string{
		EnvPort:           "9090",
		EnvAppEnv:         "Production",
		EnvDatabaseDriver: "postgresql",
		EnvDatabaseURL:    "postgres://u:p@localhost/links",
		EnvRedisURL:       "redis://cache:6379/0",
		EnvJWTSecret:      "env-secret",
		EnvSessionSecret:  "cookie-secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@localhost/links", cfg.Database.DSNValue())
	assert.True(t, cfg.Redis.Enable)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.URLValue())
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "cookie-secret", cfg.SessionSecret)
}

func TestEnvInvalidPort(t *testing.T) {
	_, err := LoadWithEnv(filepath.Join(t.TempDir(), "none.yml"), envMap(map[string]string{EnvPort: "abc"}))
	assert.Error(t, err)
}

func TestDSNValue(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		c := normalizeDatabaseConfig(DatabaseRuntimeConfig{Driver: "sqlite3", Path: "data/app.db"})
		assert.Equal(t, "data/app.db?_busy_timeout=5000&_foreign_keys=on", c.DSNValue())
	})

	t.Run("postgres", func(t *testing.T) {
		c := normalizeDatabaseConfig(DatabaseRuntimeConfig{
			Driver:   "postgres",
			User:     "app",
			Password: "pw",
			Params:   map[string]string{"TimeZone": "UTC"},
		})
		assert.Equal(t, "host=127.0.0.1 port=5432 user=app dbname=linkfolio password=pw TimeZone=UTC sslmode=disable", c.DSNValue())
	})
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, LoadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LINKFOLIO_TEST_VALUE=from-file\n"), 0o644))
	t.Setenv("LINKFOLIO_TEST_VALUE", "")
	os.Unsetenv("LINKFOLIO_TEST_VALUE")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("LINKFOLIO_TEST_VALUE"))
}

func TestLogDir(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "logs")
	cfg := &AppConfig{Paths: RuntimePathsConfig{Logs: abs}}
	assert.Equal(t, abs, cfg.LogDir())

	rel := (&AppConfig{}).LogDir()
	assert.True(t, filepath.IsAbs(rel) || strings.HasPrefix(rel, "."))
	assert.Equal(t, DefaultLogDir, filepath.Base(rel))
}
