package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/lib/pq"

	"github.com/vivahmatch/backend/internal/constants"
)

// Sentinel errors, matched with errors.Is through AppError.Unwrap.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrBadRequest         = errors.New("invalid request")
	ErrInternalServer     = errors.New("internal server error")
	ErrValidation         = errors.New("validation error")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrConflict           = errors.New("conflicting state")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrExpiredToken       = errors.New("expired token")
	ErrInvalidToken       = errors.New("invalid token")
)

// AppError is an error that knows how it should be reported over HTTP.
// Err is one of the sentinels above so callers can match with errors.Is.
type AppError struct {
	Err        error
	StatusCode int
	Message    string // safe to show to clients
	DevInfo    string // logged, never returned
	Field      string // request field the error refers to, if any
	Details    map[string]any
}

func (e *AppError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// New wraps err with an HTTP status and a client-facing message.
func New(err error, statusCode int, message string) *AppError {
	return &AppError{Err: err, StatusCode: statusCode, Message: message}
}

// NewWithDevInfo is New plus a detail string kept out of responses.
func NewWithDevInfo(err error, statusCode int, message, devInfo string) *AppError {
	e := New(err, statusCode, message)
	e.DevInfo = devInfo
	return e
}

// NewValidationError reports a bad value in one request field.
func NewValidationError(field, message string) *AppError {
	e := New(ErrValidation, http.StatusBadRequest, message)
	e.Field = field
	return e
}

func NewBadRequestError(message string) *AppError {
	return New(ErrBadRequest, http.StatusBadRequest, message)
}

// NewNotFoundError names the missing resource and the identifier used to look it up.
func NewNotFoundError(resourceType string, identifier interface{}) *AppError {
	return New(ErrNotFound, http.StatusNotFound,
		fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier))
}

func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	return New(ErrUnauthorized, http.StatusUnauthorized, message)
}

func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = constants.MsgAccessDenied
	}
	return New(ErrForbidden, http.StatusForbidden, message)
}

// NewInternalServerError hides err behind a generic message and keeps its
// text as DevInfo.
func NewInternalServerError(err error) *AppError {
	e := New(ErrInternalServer, http.StatusInternalServerError, constants.MsgInternalServerError)
	if err != nil {
		e.DevInfo = err.Error()
	}
	return e
}

// NewDuplicateError reports a unique value that is already taken.
func NewDuplicateError(resourceType, field string, value interface{}) *AppError {
	e := New(ErrDuplicate, http.StatusConflict,
		fmt.Sprintf("%s with %s '%v' already exists", resourceType, field, value))
	e.Field = field
	return e
}

// NewConflictError reports a request that clashes with the resource's current
// state, such as answering an interest twice.
func NewConflictError(message string) *AppError {
	return New(ErrConflict, http.StatusConflict, message)
}

func NewInvalidCredentialsError() *AppError {
	return New(ErrInvalidCredentials, http.StatusUnauthorized, constants.MsgInvalidPassword)
}

func NewExpiredTokenError() *AppError {
	return New(ErrExpiredToken, http.StatusUnauthorized, "Token has expired")
}

func NewInvalidTokenError() *AppError {
	return New(ErrInvalidToken, http.StatusUnauthorized, "Invalid token")
}

// ParseError turns any error into an AppError. Errors that already are one
// pass through; sentinels get their canonical constructor; PostgreSQL
// constraint violations are classified by SQLSTATE; anything else becomes a 500.
func ParseError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError("Resource", "")
	case errors.Is(err, ErrUnauthorized):
		return NewUnauthorizedError("")
	case errors.Is(err, ErrForbidden):
		return NewForbiddenError("")
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrValidation):
		return NewValidationError("", err.Error())
	case errors.Is(err, ErrDuplicate):
		return NewDuplicateError("Resource", "", "")
	case errors.Is(err, ErrConflict):
		return NewConflictError(err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewInvalidCredentialsError()
	case errors.Is(err, ErrExpiredToken):
		return NewExpiredTokenError()
	case errors.Is(err, ErrInvalidToken):
		return NewInvalidTokenError()
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case constants.PGErrorDuplicateConstraint:
			e := NewWithDevInfo(ErrDuplicate, http.StatusConflict, duplicateMessage(pqErr.Constraint), pqErr.Error())
			e.Field = duplicateField(pqErr.Constraint)
			return e
		case constants.PGErrorForeignKeyConstraint:
			return NewWithDevInfo(ErrBadRequest, http.StatusBadRequest,
				"This operation violates a foreign key constraint", pqErr.Error())
		case constants.PGErrorNotNullConstraint:
			e := NewWithDevInfo(ErrValidation, http.StatusBadRequest,
				fmt.Sprintf("The %s field cannot be empty", pqErr.Column), pqErr.Error())
			e.Field = pqErr.Column
			return e
		}
	}

	// Drivers other than pq only give us text.
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "duplicate key"), strings.Contains(msg, "unique constraint"):
		return NewWithDevInfo(ErrDuplicate, http.StatusConflict, constants.MsgResourceAlreadyExists, err.Error())
	case strings.Contains(msg, "not found"), strings.Contains(msg, "no rows"):
		return NewWithDevInfo(ErrNotFound, http.StatusNotFound, constants.MsgResourceNotFound, err.Error())
	}

	return NewInternalServerError(err)
}

// duplicateField maps a unique constraint name to the request field it guards
func duplicateField(constraint string) string {
	switch constraint {
	case constants.ConstraintUsersEmail:
		return constants.ColumnEmail
	case constants.ConstraintProfilesUser:
		return "userId"
	case constants.ConstraintInterestsPair:
		return "toProfileId"
	}
	return ""
}

// duplicateMessage maps a unique constraint name to a user-facing message
func duplicateMessage(constraint string) string {
	switch constraint {
	case constants.ConstraintUsersEmail:
		return "An account with this email already exists"
	case constants.ConstraintProfilesUser:
		return constants.MsgProfileExists
	case constants.ConstraintInterestsPair:
		return "Interest has already been sent to this profile"
	}
	return constants.MsgResourceAlreadyExists
}

// The predicates below look at the AppError in err's chain when there is one
// and fall back to the bare sentinels otherwise.

func IsNotFoundError(err error) bool {
	if appErr, ok := asAppError(err); ok {
		return appErr.StatusCode == http.StatusNotFound
	}
	return errors.Is(err, ErrNotFound)
}

func IsDuplicateError(err error) bool {
	if appErr, ok := asAppError(err); ok {
		return errors.Is(appErr.Err, ErrDuplicate)
	}
	return errors.Is(err, ErrDuplicate)
}

// IsConflictError reports whether err is any 409, duplicates included.
func IsConflictError(err error) bool {
	if appErr, ok := asAppError(err); ok {
		return appErr.StatusCode == http.StatusConflict
	}
	return errors.Is(err, ErrDuplicate) || errors.Is(err, ErrConflict)
}

func IsValidationError(err error) bool {
	if appErr, ok := asAppError(err); ok {
		return errors.Is(appErr.Err, ErrValidation)
	}
	return errors.Is(err, ErrValidation)
}

// StatusCode returns the HTTP status err should be reported with.
func StatusCode(err error) int {
	if appErr, ok := asAppError(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
