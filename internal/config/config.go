package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/vivahmatch/backend/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App          AppSettings       `yaml:"app"`
	Database     DatabaseSettings  `yaml:"database"`
	Server       ServerSettings    `yaml:"server"`
	JWT          JWTSettings       `yaml:"jwt"`
	Logging      LoggingSettings   `yaml:"logging"`
	CORS         CORSSettings      `yaml:"cors"`
	PasswordHash HashSettings      `yaml:"password_hash"`
	RateLimit    RateLimitSettings `yaml:"rate_limit"`
	Metrics      MetricsSettings   `yaml:"metrics"`
	Search       SearchSettings    `yaml:"search"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// DatabaseSettings contains storage backend settings.
// Driver "memory" keeps everything in process; "postgres" uses the connection fields.
type DatabaseSettings struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSLMODE"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
	Seed     bool   `yaml:"seed" env:"DB_SEED"`
}

// ServerSettings contains HTTP server settings
type ServerSettings struct {
	Host            string        `yaml:"host" env:"HOST"`
	Port            int           `yaml:"port" env:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// JWTSettings contains JWT authentication settings
type JWTSettings struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET"`
	Expiry time.Duration `yaml:"expiry" env:"JWT_EXPIRY"`
	Issuer string        `yaml:"issuer" env:"JWT_ISSUER"`
}

// LoggingSettings contains logging configuration.
// When FilePath is set, output is also written to a rotating file.
type LoggingSettings struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	RequestLog bool   `yaml:"request_log" env:"LOG_REQUESTS"`
	FilePath   string `yaml:"file_path" env:"LOG_FILE_PATH"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS"`
	Compress   bool   `yaml:"compress" env:"LOG_COMPRESS"`
}

// CORSSettings contains CORS configuration
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HashSettings contains password hashing settings
type HashSettings struct {
	Memory      uint32 `yaml:"memory" env:"HASH_MEMORY"`
	Iterations  uint32 `yaml:"iterations" env:"HASH_ITERATIONS"`
	Parallelism uint8  `yaml:"parallelism" env:"HASH_PARALLELISM"`
	SaltLength  uint32 `yaml:"salt_length" env:"HASH_SALT_LENGTH"`
	KeyLength   uint32 `yaml:"key_length" env:"HASH_KEY_LENGTH"`
}

// RateLimitSettings contains the per-client request budget
type RateLimitSettings struct {
	Enabled           bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `yaml:"requests_per_second" env:"RATE_LIMIT_RPS"`
	Burst             int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// MetricsSettings controls the Prometheus endpoint
type MetricsSettings struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED"`
	Path    string `yaml:"path" env:"METRICS_PATH"`
}

// SearchSettings contains limits for the search and featured endpoints
type SearchSettings struct {
	FeaturedDefaultLimit int `yaml:"featured_default_limit" env:"FEATURED_DEFAULT_LIMIT"`
	FeaturedMaxLimit     int `yaml:"featured_max_limit" env:"FEATURED_MAX_LIMIT"`
	AgeMin               int `yaml:"age_min" env:"SEARCH_AGE_MIN"`
	AgeMax               int `yaml:"age_max" env:"SEARCH_AGE_MAX"`
}

// ConnectionString returns the lib/pq connection string
func (dbs *DatabaseSettings) ConnectionString() string {
	parts := []string{
		fmt.Sprintf("host=%s", dbs.Host),
		fmt.Sprintf("port=%d", dbs.Port),
		fmt.Sprintf("user=%s", dbs.User),
	}
	if dbs.Password != "" {
		parts = append(parts, fmt.Sprintf("password=%s", dbs.Password))
	}
	parts = append(parts,
		fmt.Sprintf("dbname=%s", dbs.Name),
		fmt.Sprintf("sslmode=%s", dbs.SSLMode),
	)
	return strings.Join(parts, " ")
}

// IsPostgres reports whether the PostgreSQL backend is selected
func (dbs *DatabaseSettings) IsPostgres() bool {
	return strings.ToLower(dbs.Driver) == constants.DBDriverPostgres
}

// ServerAddress returns the complete server address
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	setDefaults(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg = config

	logConfig(config)

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = constants.DefaultAppName
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	// Server defaults
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	// Database defaults
	if config.Database.Driver == "" {
		config.Database.Driver = constants.DefaultDBDriver
	}
	if config.Database.Port == 0 {
		config.Database.Port = constants.DefaultDBPort
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = constants.DefaultDBSSLMode
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	// JWT defaults
	if config.JWT.Expiry == 0 {
		config.JWT.Expiry = constants.DefaultJWTExpiry
	}
	if config.JWT.Issuer == "" {
		config.JWT.Issuer = constants.DefaultJWTIssuer
	}
	if config.JWT.Secret == "" && !config.App.IsProduction() {
		config.JWT.Secret = "changeme"
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}
	if config.Logging.MaxSizeMB == 0 {
		config.Logging.MaxSizeMB = constants.DefaultLogMaxSizeMB
	}
	if config.Logging.MaxBackups == 0 {
		config.Logging.MaxBackups = constants.DefaultLogMaxBackups
	}
	if config.Logging.MaxAgeDays == 0 {
		config.Logging.MaxAgeDays = constants.DefaultLogMaxAgeDays
	}

	// CORS defaults
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"*"}
	}

	// Password hash defaults
	if config.PasswordHash.Memory == 0 {
		// Lower for development, higher for production
		if config.App.IsProduction() {
			config.PasswordHash.Memory = constants.DefaultPasswordHashMemory
		} else {
			config.PasswordHash.Memory = constants.DevPasswordHashMemory
		}
	}
	if config.PasswordHash.Iterations == 0 {
		if config.App.IsProduction() {
			config.PasswordHash.Iterations = constants.DefaultPasswordHashIterations
		} else {
			config.PasswordHash.Iterations = constants.DevPasswordHashIterations
		}
	}
	if config.PasswordHash.Parallelism == 0 {
		config.PasswordHash.Parallelism = constants.DefaultPasswordHashParallelism
	}
	if config.PasswordHash.SaltLength == 0 {
		config.PasswordHash.SaltLength = constants.DefaultPasswordHashSaltLength
	}
	if config.PasswordHash.KeyLength == 0 {
		config.PasswordHash.KeyLength = constants.DefaultPasswordHashKeyLength
	}

	// Rate limit defaults
	if config.RateLimit.RequestsPerSecond == 0 {
		config.RateLimit.RequestsPerSecond = constants.DefaultRateLimitRPS
	}
	if config.RateLimit.Burst == 0 {
		config.RateLimit.Burst = constants.DefaultRateLimitBurst
	}

	// Metrics defaults
	if config.Metrics.Path == "" {
		config.Metrics.Path = constants.DefaultMetricsPath
	}

	// Search defaults
	if config.Search.FeaturedDefaultLimit == 0 {
		config.Search.FeaturedDefaultLimit = constants.DefaultFeaturedLimit
	}
	if config.Search.FeaturedMaxLimit == 0 {
		config.Search.FeaturedMaxLimit = constants.DefaultFeaturedMaxLimit
	}
	if config.Search.AgeMin == 0 {
		config.Search.AgeMin = constants.DefaultAgeMin
	}
	if config.Search.AgeMax == 0 {
		config.Search.AgeMax = constants.DefaultAgeMax
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	// In production, ensure we have a proper JWT secret
	if config.App.IsProduction() && (config.JWT.Secret == "" || config.JWT.Secret == "changeme") {
		return fmt.Errorf("JWT secret must be set in production")
	}

	driver := strings.ToLower(config.Database.Driver)
	switch driver {
	case constants.DBDriverMemory:
	case constants.DBDriverPostgres:
		if config.Database.User == "" {
			return fmt.Errorf("database user must be set for the postgres driver")
		}
		if config.Database.Name == "" {
			return fmt.Errorf("database name must be set for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", config.Database.Driver)
	}
	config.Database.Driver = driver

	if config.Server.Port < 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Search.AgeMin > config.Search.AgeMax {
		return fmt.Errorf("search age_min (%d) must not exceed age_max (%d)", config.Search.AgeMin, config.Search.AgeMax)
	}
	if config.Search.FeaturedDefaultLimit > config.Search.FeaturedMaxLimit {
		return fmt.Errorf("featured_default_limit must not exceed featured_max_limit")
	}

	// Validate log level
	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values
func logConfig(config *AppConfig) {
	logCfg := *config

	if logCfg.Database.Password != "" {
		logCfg.Database.Password = constants.LogRedactedValue
	}
	if logCfg.JWT.Secret != "" {
		logCfg.JWT.Secret = constants.LogRedactedValue
	}

	log.Info().
		Str("environment", logCfg.App.Environment).
		Str("version", logCfg.App.Version).
		Str("server", logCfg.Server.ServerAddress()).
		Str("db_driver", logCfg.Database.Driver).
		Str("db_host", logCfg.Database.Host).
		Str("db_name", logCfg.Database.Name).
		Str("log_level", logCfg.Logging.Level).
		Bool("rate_limit", logCfg.RateLimit.Enabled).
		Bool("metrics", logCfg.Metrics.Enabled).
		Msg("Configuration loaded")
}
