package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LookupFunc reads an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultEnvPath
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %q: %w", path, err)
	}
	return nil
}

// Load reads the YAML config at configPath, applies environment overrides and validates the result.
// A missing file yields the defaults.
func Load(configPath string) (*AppConfig, error) {
	return LoadWithEnv(configPath, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment source.
func LoadWithEnv(configPath string, lookup LookupFunc) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw, err := decodeRaw(content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	if err := applyEnv(&cfg, lookup); err != nil {
		return nil, err
	}
	finalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return &cfg, nil
}

func decodeRaw(content []byte) (rawAppConfig, error) {
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) == 0 {
		return raw, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return raw, err
	}
	return raw, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseRuntimeConfig{
			Driver: defaultDriver,
			Path:   defaultSQLitePath,
		},
		Redis: RedisRuntimeConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
			DB:   defaultRedisDB,
		},
		RateLimit: RateLimitConfig{
			Clicks:        defaultClickLimit,
			Views:         defaultViewLimit,
			WindowSeconds: defaultRateLimitWindow,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	cfg.Database = applyRawDatabaseConfig(cfg.Database, raw)
	cfg.Redis = applyRawRedisConfig(cfg.Redis, raw)
	if v := strings.TrimSpace(raw.JWTSecret); v != "" {
		cfg.JWTSecret = v
	}
	if v := strings.TrimSpace(raw.SessionSecret); v != "" {
		cfg.SessionSecret = v
	}
	if len(raw.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = raw.AllowedOrigins
	}
	if v := strings.TrimSpace(raw.Timezone); v != "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.TZ); v != "" && cfg.Timezone == "" {
		cfg.Timezone = v
	}
	if v := strings.TrimSpace(raw.Paths.Logs); v != "" {
		cfg.Paths.Logs = v
	}
	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.Paths.Logs = v
	}
	if raw.RateLimit.Clicks != nil {
		cfg.RateLimit.Clicks = *raw.RateLimit.Clicks
	}
	if raw.RateLimit.Views != nil {
		cfg.RateLimit.Views = *raw.RateLimit.Views
	}
	if raw.RateLimit.WindowSeconds != 0 {
		cfg.RateLimit.WindowSeconds = raw.RateLimit.WindowSeconds
	}
	if raw.Content.SanitizeHTML != nil {
		cfg.Content.SanitizeHTML = *raw.Content.SanitizeHTML
	}
}

func applyRawDatabaseConfig(current DatabaseRuntimeConfig, raw rawAppConfig) DatabaseRuntimeConfig {
	db := raw.Database
	if v := strings.TrimSpace(db.Driver); v != "" {
		current.Driver = v
	}
	for _, v := range []string{db.DSN, db.URL, raw.DatabaseURL} {
		if v = strings.TrimSpace(v); v != "" {
			current.DSN = v
			break
		}
	}
	if v := strings.TrimSpace(db.Host); v != "" {
		current.Host = v
	}
	if db.Port != 0 {
		current.Port = db.Port
	}
	if v := strings.TrimSpace(db.User); v != "" {
		current.User = v
	} else if v := strings.TrimSpace(db.Username); v != "" {
		current.User = v
	}
	if db.Password != "" {
		current.Password = db.Password
	}
	if v := strings.TrimSpace(db.Name); v != "" {
		current.Name = v
	}
	if v := strings.TrimSpace(db.Path); v != "" {
		current.Path = v
	}
	if len(db.Params) > 0 {
		current.Params = copyStringMap(db.Params)
	}
	return current
}

func applyRawRedisConfig(current RedisRuntimeConfig, raw rawAppConfig) RedisRuntimeConfig {
	r := raw.Redis
	if v := strings.TrimSpace(r.URL); v != "" {
		current.URL = v
	}
	if v := strings.TrimSpace(raw.RedisURL); v != "" {
		current.URL = v
	}
	if v := strings.TrimSpace(r.Host); v != "" {
		current.Host = v
	}
	if r.Port != 0 {
		current.Port = r.Port
	}
	if r.Password != "" {
		current.Password = r.Password
	}
	if r.DB != nil {
		current.DB = *r.DB
	}
	if r.Enable != nil {
		current.Enable = *r.Enable
	} else if current.URL != "" {
		current.Enable = true
	}
	return current
}

func applyEnv(cfg *AppConfig, lookup LookupFunc) error {
	if lookup == nil {
		return nil
	}
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvPort); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvPort, v, err)
		}
		cfg.Port = port
	}
	if v, ok := get(EnvAppEnv); ok {
		cfg.Env = v
	}
	if v, ok := get(EnvDatabaseDriver); ok {
		cfg.Database.Driver = v
	}
	if v, ok := get(EnvDatabaseURL); ok {
		cfg.Database.DSN = v
	}
	if v, ok := get(EnvRedisURL); ok {
		cfg.Redis.URL = v
		cfg.Redis.Enable = true
	}
	if v, ok := get(EnvJWTSecret); ok {
		cfg.JWTSecret = v
	}
	if v, ok := get(EnvSessionSecret); ok {
		cfg.SessionSecret = v
	}
	return nil
}

// finalize normalizes values and fills driver-dependent defaults.
func finalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.Database = normalizeDatabaseConfig(cfg.Database)
	cfg.Redis = normalizeRedisConfig(cfg.Redis)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Paths = normalizeRuntimePaths(cfg.Paths)
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = cfg.JWTSecret
	}
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("unknown database.driver %q, expected sqlite, mysql or postgres", c.Database.Driver)
	}
	if c.Database.Driver != DriverSQLite && c.Database.DSN == "" {
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
		}
	}
	if c.Redis.Port < 1 || c.Redis.Port > 65535 {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	if c.Redis.DB < 0 {
		return fmt.Errorf("invalid redis.db %d, expected >= 0", c.Redis.DB)
	}
	if c.RateLimit.WindowSeconds < 1 {
		return fmt.Errorf("invalid rate_limit.window_seconds %d, expected >= 1", c.RateLimit.WindowSeconds)
	}
	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}
	return nil
}

func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// LogDir returns the log directory. Relative paths resolve against the binary's directory
// so the service logs to the same place regardless of the working directory.
func (c *AppConfig) LogDir() string {
	dir := DefaultLogDir
	if c != nil && c.Paths.Logs != "" {
		dir = c.Paths.Logs
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(binaryDir(), dir)
}

func binaryDir() string {
	if exe, err := os.Executable(); err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// RateLimitWindow returns the counter rate limiting window.
func (c *AppConfig) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}

func (c *AppConfig) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}
