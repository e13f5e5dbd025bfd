package constants

// Context Key Names
const (
	UserIDContextKey    = "user_id"
	EmailContextKey     = "email"
	RequestIDContextKey = "request_id"
)

// Auth Token Types
const (
	TokenTypeAccess = "access"
	TokenTypeBearer = "Bearer"
)

// Credential Validation
const (
	MinPasswordLength = 8
	MaxEmailLength    = 255
	MaxNameLength     = 100

	// PasswordSymbols are the characters counted as the symbol class by the
	// strong_password rule.
	PasswordSymbols = "!@#$%^&*()_+=-[]{}|;:,.<>?/"
)

// Profile Identity
const (
	ProfileIDLength   = 8
	ProfileIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// ProfileIDMaxAttempts bounds retries when a generated id collides.
	ProfileIDMaxAttempts = 5
)

// Interest Status
const (
	InterestStatusSent     = "sent"
	InterestStatusAccepted = "accepted"
	InterestStatusDeclined = "declined"
)

// Sentinel Values
const (
	// FilterValueAll means "no constraint" in caste group and subcaste lists.
	FilterValueAll = "All"
)

// Default Log Paths
const (
	DefaultLogFilePath = "./logs/vivahmatch.log"
)

// Rate limit categories; each has its own bucket per client.
const (
	RateCategoryAPI  = "default"
	RateCategoryAuth = "auth"
)
