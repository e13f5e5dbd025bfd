// Package utils provides utility functions and helpers for the application.
//
// response.go defines the envelope every endpoint answers with:
//
//	{"success": true, "data": ..., "meta": {"count": n}}
//	{"success": false, "error": {"code": "...", "message": "...", "details": {...}}}
//
// Handlers never write bodies themselves; they call JSON, List or one of the
// error helpers below so clients can rely on a single shape.
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/constants"
)

// Response is the top-level body of every API response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta,omitempty"`
}

// ErrorInfo describes a failed request. Details maps request fields to
// problems with them and is only present for validation and conflict errors.
type ErrorInfo struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MetaInfo accompanies collection responses.
type MetaInfo struct {
	Count int `json:"count"`
}

// fallbackBody is written when the envelope itself cannot be encoded.
const fallbackBody = `{"success":false,"error":{"code":"internal_error","message":"Failed to generate response"}}`

// errorCodes maps sentinel errors to envelope codes, checked in order.
var errorCodes = []struct {
	sentinel error
	code     string
}{
	{ErrNotFound, constants.CodeNotFound},
	{ErrBadRequest, constants.CodeBadRequest},
	{ErrUnauthorized, constants.CodeUnauthorized},
	{ErrForbidden, constants.CodeForbidden},
	{ErrValidation, constants.CodeValidationError},
	{ErrDuplicate, constants.CodeDuplicateResource},
	{ErrConflict, constants.CodeConflict},
	{ErrInvalidCredentials, constants.CodeInvalidCredentials},
	{ErrExpiredToken, constants.CodeTokenExpired},
	{ErrInvalidToken, constants.CodeTokenInvalid},
}

// JSON writes data inside a success envelope. Success is derived from the
// status, so a 4xx with a payload still reports success=false.
func JSON(w http.ResponseWriter, statusCode int, data interface{}) {
	SendJSON(w, statusCode, Response{
		Success: statusCode >= 200 && statusCode < 300,
		Data:    data,
	})
}

// List writes a 200 collection response with the item count in meta.
func List(w http.ResponseWriter, data interface{}, count int) {
	SendJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    data,
		Meta:    &MetaInfo{Count: count},
	})
}

// Error writes a failure envelope.
func Error(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	SendJSON(w, statusCode, Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// ErrorFromAppError writes err as a failure envelope. The field-level message
// and any Details are merged into the details map. DevInfo is logged for 5xx
// errors and never sent to the client.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	code := constants.CodeInternalError
	for _, c := range errorCodes {
		if errors.Is(err.Err, c.sentinel) {
			code = c.code
			break
		}
	}

	var details map[string]string
	if err.Field != "" || len(err.Details) > 0 {
		details = make(map[string]string, len(err.Details)+1)
		if err.Field != "" {
			details[err.Field] = err.Message
		}
		for k, v := range err.Details {
			details[k] = fmt.Sprint(v)
		}
	}

	if err.StatusCode >= http.StatusInternalServerError {
		LogError(err.Err, map[string]interface{}{
			"code":     code,
			"status":   err.StatusCode,
			"dev_info": err.DevInfo,
		})
	}

	Error(w, err.StatusCode, code, err.Message, details)
}

// SendJSON encodes data and writes it with the JSON content type. Encoding
// happens before the status line so a marshal failure can still become a 500.
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	body, err := json.Marshal(data)
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		body = []byte(fallbackBody)
	} else {
		w.WriteHeader(statusCode)
	}

	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Unauthorized writes a 401, defaulting the message to MsgAuthRequired.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAuthRequired
	}
	Error(w, http.StatusUnauthorized, constants.CodeUnauthorized, message, nil)
}

// Forbidden writes a 403, defaulting the message to MsgAccessDenied.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgAccessDenied
	}
	Error(w, http.StatusForbidden, constants.CodeForbidden, message, nil)
}

// NotFound writes a 404, defaulting the message to MsgResourceNotFound.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, http.StatusNotFound, constants.CodeNotFound, message, nil)
}

func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, http.StatusMethodNotAllowed, constants.CodeMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	Error(w, http.StatusConflict, constants.CodeConflict, message, nil)
}

// TooManyRequests writes a 429 with a Retry-After header in whole seconds.
func TooManyRequests(w http.ResponseWriter, retryAfterSeconds int) {
	w.Header().Set(constants.HeaderRetryAfter, fmt.Sprintf("%d", retryAfterSeconds))
	Error(w, http.StatusTooManyRequests, constants.CodeRateLimited, constants.MsgRateLimited, nil)
}

// InternalServerError logs err and writes a generic 500.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, http.StatusInternalServerError, constants.CodeInternalError, constants.MsgInternalServerError, nil)
}

// ValidationError writes a 400 listing the failing fields.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	Error(w, http.StatusBadRequest, constants.CodeValidationError, "Validation failed", fields)
}
