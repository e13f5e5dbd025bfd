// Package constants provides shared constant values used throughout the application.
//
// defaults.go holds the values config.Load falls back to and the fixed limits
// of the search, rate limit and password hashing subsystems.
package constants

// Configuration fallbacks applied by config.setDefaults.
const (
	// DefaultAppName is the application name used in logs when none is configured.
	DefaultAppName = "vivahmatch"

	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultDBDriver is the storage backend used when none is configured.
	DefaultDBDriver = DBDriverMemory

	// DefaultDBPort is the default PostgreSQL port.
	DefaultDBPort = 5432

	// DefaultDBSSLMode is the default PostgreSQL sslmode.
	DefaultDBSSLMode = "disable"

	// DefaultDBMaxConnections is the default maximum number of database connections.
	DefaultDBMaxConnections = 20

	// DefaultDBMinConnections is the default minimum number of database connections.
	DefaultDBMinConnections = 5

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"

	// DefaultLogFormat is the default logging output format.
	DefaultLogFormat = "json"

	// DefaultLogMaxSizeMB is the size at which the log file is rotated.
	DefaultLogMaxSizeMB = 100

	// DefaultLogMaxBackups is the number of rotated log files kept.
	DefaultLogMaxBackups = 5

	// DefaultLogMaxAgeDays is the number of days rotated log files are kept.
	DefaultLogMaxAgeDays = 30

	// DefaultMetricsPath is the path where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"
)

// Storage Drivers identify the repository backends the server can run on.
const (
	// DBDriverMemory keeps every collection in process memory.
	DBDriverMemory = "memory"

	// DBDriverPostgres stores collections in PostgreSQL through lib/pq.
	DBDriverPostgres = "postgres"
)

// Values of app.environment. Production requires a JWT secret and disables
// the console log format.
const (
	EnvDevelopment = "development"
	EnvTesting     = "testing"
	EnvProduction  = "production"
)

// MaxRequestBodySize caps JSON request bodies at 1 MiB.
const MaxRequestBodySize = 1 << 20

// Search Defaults define the behaviour of the search and featured endpoints.
const (
	// DefaultFeaturedLimit is the number of featured profiles returned when no limit is given.
	DefaultFeaturedLimit = 6

	// DefaultFeaturedMaxLimit caps the featured limit a caller can request.
	DefaultFeaturedMaxLimit = 50

	// DefaultAgeMin is the lowest age accepted in profiles and age filters.
	DefaultAgeMin = 18

	// DefaultAgeMax is the highest age accepted in profiles and age filters.
	DefaultAgeMax = 70
)

// Rate Limit Defaults define the per-client request budget.
const (
	// DefaultRateLimitRPS is the sustained number of requests per second per client.
	DefaultRateLimitRPS = 20

	// DefaultRateLimitBurst is the number of requests a client may burst above the sustained rate.
	DefaultRateLimitBurst = 40
)

// Argon2id parameters. Memory is in KiB; salt and key lengths in bytes.
// The Dev values keep signup fast outside production.
const (
	DefaultPasswordHashMemory      = 64 * 1024
	DefaultPasswordHashIterations  = 3
	DefaultPasswordHashParallelism = 2
	DefaultPasswordHashSaltLength  = 16
	DefaultPasswordHashKeyLength   = 32

	DevPasswordHashMemory     = 16 * 1024
	DevPasswordHashIterations = 1
)

// Auth Constants define values related to authentication token handling.
const (
	// DefaultJWTIssuer is the issuer claim value for JWT tokens.
	DefaultJWTIssuer = "vivahmatch-api"

	// BearerTokenPrefix is the prefix for Authorization header bearer tokens.
	BearerTokenPrefix = "Bearer "
)

// Client Defaults define the behaviour of the filter client.
const (
	// DefaultAPIBaseURL is the server the filter client talks to when none is configured.
	DefaultAPIBaseURL = "http://localhost:8080"

	// DefaultClientStateDir is where the filter client keeps presets and the latest search.
	DefaultClientStateDir = ".vivahmatch"
)
