package constants

// Messages returned to clients in "error.message". They must not leak storage
// or implementation details; DevInfo on AppError carries those.
const (
	MsgAuthRequired          = "Authentication required"
	MsgPasswordsDoNotMatch   = "Passwords do not match"
	MsgInvalidPassword       = "Invalid email or password"
	MsgAccessDenied          = "You don't have permission to access this resource"
	MsgInternalServerError   = "An internal server error occurred"
	MsgResourceNotFound      = "The requested resource could not be found"
	MsgResourceAlreadyExists = "A resource with the same unique identifier already exists"
	MsgMethodNotAllowed      = "This method is not allowed for this resource"
	MsgRateLimited           = "Too many requests, please slow down"

	// Request body problems reported by utils.DecodeJSON.
	MsgRequestBodyTooLarge = "Request body too large"
	MsgEmptyRequestBody    = "Request body must not be empty"
	MsgMalformedJSON       = "Request body contains malformed JSON"

	// Domain rules.
	MsgSelfInterest            = "A profile cannot send interest to itself"
	MsgInterestAlreadyAnswered = "This interest has already been answered"
	MsgProfileExists           = "A profile already exists for this user"
)

// PostgreSQL SQLSTATE codes classified by utils.ParseError.
const (
	PGErrorDuplicateConstraint  = "23505" // unique_violation
	PGErrorForeignKeyConstraint = "23503" // foreign_key_violation
	PGErrorNotNullConstraint    = "23502" // not_null_violation
)

// Log categories and events. Business log lines carry a "category" field so
// they can be filtered apart from request logs.
const (
	LogCategoryAuth     = "auth"
	LogCategoryProfile  = "profile"
	LogCategorySearch   = "search"
	LogCategoryInterest = "interest"
	LogCategoryFilters  = "filters" // client-side filter manager

	LogEventLogin    = "login"
	LogEventRegister = "register"

	// LogRedactedValue replaces secrets in logged query arguments.
	LogRedactedValue = "[REDACTED]"
)
