package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/constants"
)

// validate is shared by every request; validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate *validator.Validate

// InitValidator builds the shared validator. Field errors are reported by
// their JSON names and the custom tags below are registered:
//
//	strong_password       at least 3 of upper, lower, digit, symbol
//	catalog=<list>        value must be in the named catalog list
//	filter_option=<list>  like catalog, but "All" is also accepted
func InitValidator() {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"strong_password": validateStrongPassword,
		"catalog":         validateCatalogValue,
		"filter_option":   validateFilterOption,
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Error().Err(err).Str("tag", tag).Msg("Failed to register validation")
		}
	}

	validate = v
	log.Info().Msg("Validator initialized")
}

// GetValidator returns the shared validator, building it on first use.
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// DecodeJSON reads exactly one JSON object from the request body into v.
// The body is capped at MaxRequestBodySize and unknown fields are rejected,
// so a misspelt filter key fails loudly instead of widening a search.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}
	return nil
}

func decodeError(err error) error {
	var (
		syntaxErr    *json.SyntaxError
		typeErr      *json.UnmarshalTypeError
		invalidErr   *json.InvalidUnmarshalError
		maxBytesErr  *http.MaxBytesError
		unknownField = "json: unknown field "
	)

	switch {
	case errors.As(err, &maxBytesErr):
		return NewBadRequestError(constants.MsgRequestBodyTooLarge)
	case errors.Is(err, io.EOF):
		return NewBadRequestError(constants.MsgEmptyRequestBody)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return NewBadRequestError(constants.MsgMalformedJSON)
	case strings.HasPrefix(err.Error(), unknownField):
		name := strings.TrimPrefix(err.Error(), unknownField)
		return NewValidationError("unknown_field", "Request body contains unknown field "+name)
	case errors.As(err, &syntaxErr):
		return NewBadRequestError(fmt.Sprintf("Request body contains malformed JSON (at position %d)", syntaxErr.Offset))
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", typeErr.Offset))
		}
		return NewValidationError(typeErr.Field, "Must be a "+typeErr.Type.String())
	case errors.As(err, &invalidErr):
		return NewInternalServerError(err)
	}
	return NewBadRequestError("Error decoding JSON: " + err.Error())
}

// ValidateStruct runs the validator over v. A single failing field becomes a
// field error; several are collected into Details keyed by field name.
func ValidateStruct(v interface{}) error {
	err := GetValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewBadRequestError(err.Error())
	}

	if len(fieldErrs) == 1 {
		return NewValidationError(fieldErrs[0].Field(), fieldMessage(fieldErrs[0]))
	}
	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	return NewValidationErrorWithDetails("Multiple validation errors", details)
}

// DecodeAndValidate is DecodeJSON followed by ValidateStruct.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

// fieldMessage renders a failed tag as a sentence for API clients.
func fieldMessage(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	bound := func(word string) string {
		if isString {
			return fmt.Sprintf("Must be %s %s characters long", word, fe.Param())
		}
		return fmt.Sprintf("Must be %s %s", word, fe.Param())
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min", "gte":
		return bound("at least")
	case "max", "lte":
		return bound("at most")
	case "len":
		return bound("exactly")
	case "eqfield":
		return fmt.Sprintf("Must match the %s field", fe.Param())
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "alphanum":
		return "Must contain only alphanumeric characters"
	case "catalog", "filter_option":
		return fmt.Sprintf("Must be one of the allowed %s values", strings.ReplaceAll(fe.Param(), "_", " "))
	case "strong_password":
		return "Must contain at least 3 of: uppercase letters, lowercase letters, numbers and special characters"
	}
	return fmt.Sprintf("Failed validation on the '%s' tag", fe.Tag())
}

// validateCatalogValue accepts a string from the catalog list named by the
// tag parameter. Unknown list names never validate.
func validateCatalogValue(fl validator.FieldLevel) bool {
	return fl.Field().Kind() == reflect.String && catalog.Contains(fl.Param(), fl.Field().String())
}

func validateFilterOption(fl validator.FieldLevel) bool {
	if fl.Field().Kind() == reflect.String && fl.Field().String() == constants.FilterValueAll {
		return true
	}
	return validateCatalogValue(fl)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return passwordClasses(fl.Field().String()) >= 3
}

// passwordClasses counts how many of upper, lower, digit and symbol appear in s.
func passwordClasses(s string) int {
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(constants.PasswordSymbols, r):
			symbol = true
		}
	}

	n := 0
	for _, has := range []bool{upper, lower, digit, symbol} {
		if has {
			n++
		}
	}
	return n
}

// NewValidationErrorWithDetails reports several failing fields at once.
func NewValidationErrorWithDetails(message string, details map[string]string) *AppError {
	e := New(ErrValidation, http.StatusBadRequest, message)
	e.Details = make(map[string]any, len(details))
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsValidEmail reports whether email passes the validator's email rule.
func IsValidEmail(email string) bool {
	return GetValidator().Var(email, "email") == nil
}

// ValidatePassword applies the signup password policy outside struct validation.
func ValidatePassword(password string) error {
	if len(password) < constants.MinPasswordLength {
		return NewValidationError("password",
			fmt.Sprintf("Password must be at least %d characters long", constants.MinPasswordLength))
	}
	if passwordClasses(password) < 3 {
		return NewValidationError("password",
			"Password must contain at least 3 of the following: uppercase letters, lowercase letters, numbers, and special characters")
	}
	return nil
}
