// Package constants provides shared constant values used throughout the application.
//
// httpcodes.go holds the machine-readable error codes returned in the response
// envelope, the header names the server reads or writes, and the values of the
// security headers set on every response.
package constants

// Error codes carried in the "error.code" field of failed responses. Clients
// switch on these, so they are part of the API contract.
const (
	CodeBadRequest         = "bad_request"
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeConflict           = "conflict"
	CodeInternalError      = "internal_error"
	CodeValidationError    = "validation_error"
	CodeInvalidCredentials = "invalid_credentials"
	CodeTokenExpired       = "token_expired"
	CodeTokenInvalid       = "token_invalid"
	CodeRateLimited        = "rate_limited"

	// CodeDuplicateResource is used for unique constraint violations: the same
	// email, a second profile for a user, or a repeated interest.
	CodeDuplicateResource = "duplicate_resource"

	// CodeServiceUnavailable is reported by the health endpoint when storage is down.
	CodeServiceUnavailable = "service_unavailable"
)

// Header names.
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"

	HeaderCacheControl          = "Cache-Control"
	HeaderPragma                = "Pragma"
	HeaderExpires               = "Expires"
	HeaderXContentTypeOptions   = "X-Content-Type-Options"
	HeaderXFrameOptions         = "X-Frame-Options"
	HeaderXXSSProtection        = "X-XSS-Protection"
	HeaderReferrerPolicy        = "Referrer-Policy"
	HeaderContentSecurityPolicy = "Content-Security-Policy"
)

// ContentTypeJSON is the only media type the API speaks.
const ContentTypeJSON = "application/json"

// Values written by middleware.SecurityHeaders. API responses are never
// cached and never framed.
const (
	FrameOptionsDeny           = "DENY"
	XSSProtectionModeBlock     = "1; mode=block"
	ContentTypeOptionsNoSniff  = "nosniff"
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
	CSPDefaultSrc              = "default-src 'self'"
	CacheControlNoStore        = "no-cache, no-store, must-revalidate"
	PragmaNoCache              = "no-cache"
	ExpiresZero                = "0"
)
