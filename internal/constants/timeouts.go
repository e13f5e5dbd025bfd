package constants

import "time"

// Server Timeouts
const (
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
)

// Database Timeouts
const (
	DBConnectionTimeout  = 30 * time.Second
	DBQueryTimeout       = 15 * time.Second
	DBHealthCheckTimeout = 5 * time.Second
	DBConnMaxLifetime    = 1 * time.Hour
	DBConnMaxIdleTime    = 30 * time.Minute
)

// Authentication Timeouts
const (
	DefaultJWTExpiry = 24 * time.Hour
)

// Rate Limiter Housekeeping
const (
	RateLimitCleanupInterval = 1 * time.Minute
	RateLimitIdleExpiry      = 10 * time.Minute
)

// Client Timeouts
const (
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultClientTimeout  = 15 * time.Second
)
