package config

// AppConfig holds runtime startup configuration loaded from YAML and the environment.
type AppConfig struct {
	Port           int                   `yaml:"port"`
	Env            string                `yaml:"env"` // "development" | "production" | "test"
	Database       DatabaseRuntimeConfig `yaml:"database"`
	Redis          RedisRuntimeConfig    `yaml:"redis"`
	JWTSecret      string                `yaml:"jwt_secret"`
	SessionSecret  string                `yaml:"session_secret"`
	AllowedOrigins []string              `yaml:"allowed_origins"`
	Timezone       string                `yaml:"timezone"`
	Paths          RuntimePathsConfig    `yaml:"paths"`
	RateLimit      RateLimitConfig       `yaml:"rate_limit"`
	Content        ContentConfig         `yaml:"content"`
}

type DatabaseRuntimeConfig struct {
	Driver   string            `yaml:"driver"`
	DSN      string            `yaml:"dsn"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Path     string            `yaml:"path"` // sqlite file
	Params   map[string]string `yaml:"params"`
}

type RedisRuntimeConfig struct {
	Enable   bool   `yaml:"enable"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RuntimePathsConfig struct {
	Logs string `yaml:"logs"`
}

// RateLimitConfig caps anonymous counter writes per client IP within a window.
type RateLimitConfig struct {
	Clicks        int `yaml:"clicks"`
	Views         int `yaml:"views"`
	WindowSeconds int `yaml:"window_seconds"`
}

type ContentConfig struct {
	SanitizeHTML bool `yaml:"sanitize_html"`
}

type rawAppConfig struct {
	Port           int                `yaml:"port"`
	Env            string             `yaml:"env"`
	DatabaseURL    string             `yaml:"database_url"`
	RedisURL       string             `yaml:"redis_url"`
	Database       rawDatabaseConfig  `yaml:"database"`
	Redis          rawRedisConfig     `yaml:"redis"`
	JWTSecret      string             `yaml:"jwt_secret"`
	SessionSecret  string             `yaml:"session_secret"`
	AllowedOrigins []string           `yaml:"allowed_origins"`
	Timezone       string             `yaml:"timezone"`
	TZ             string             `yaml:"tz"`
	Paths          rawPathsConfig     `yaml:"paths"`
	LogDir         string             `yaml:"log_dir"`
	RateLimit      rawRateLimitConfig `yaml:"rate_limit"`
	Content        rawContentConfig   `yaml:"content"`
}

type rawDatabaseConfig struct {
	Driver   string            `yaml:"driver"`
	DSN      string            `yaml:"dsn"`
	URL      string            `yaml:"url"`
	Host     string            `yaml:"host"`
	Port     int               `yaml:"port"`
	User     string            `yaml:"user"`
	Username string            `yaml:"username"`
	Password string            `yaml:"password"`
	Name     string            `yaml:"name"`
	Path     string            `yaml:"path"`
	Params   map[string]string `yaml:"params"`
}

type rawRedisConfig struct {
	Enable   *bool  `yaml:"enable"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
}

type rawPathsConfig struct {
	Logs string `yaml:"logs"`
}

type rawRateLimitConfig struct {
	Clicks        *int `yaml:"clicks"`
	Views         *int `yaml:"views"`
	WindowSeconds int  `yaml:"window_seconds"`
}

type rawContentConfig struct {
	SanitizeHTML *bool `yaml:"sanitize_html"`
}
