package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"
	// DefaultEnvPath is the dotenv file loaded before the environment is read.
	DefaultEnvPath = ".env"
	// DefaultLogDir holds the daily log files, relative to the binary.
	DefaultLogDir = "logs"

	defaultPort       = 3000
	defaultEnv        = "development"
	defaultDriver     = DriverSQLite
	defaultSQLitePath = "linkfolio.db"
	defaultDBHost     = "127.0.0.1"
	defaultMySQLPort  = 3306
	defaultPGPort     = 5432
	defaultDBUser     = "root"
	defaultDBName     = "linkfolio"
	defaultDBCharset  = "utf8mb4"
	defaultRedisHost  = "localhost"
	defaultRedisPort  = 6379
	defaultRedisDB    = 0

	defaultClickLimit      = 30
	defaultViewLimit       = 60
	defaultRateLimitWindow = 60
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// Environment variables that override file values.
const (
	EnvPort           = "PORT"
	EnvAppEnv         = "APP_ENV"
	EnvDatabaseDriver = "DATABASE_DRIVER"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvRedisURL       = "REDIS_URL"
	EnvJWTSecret      = "JWT_SECRET"
	EnvSessionSecret  = "SESSION_SECRET"
)
