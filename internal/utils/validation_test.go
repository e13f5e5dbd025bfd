package utils_test

import (
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/utils"
)

type signupBody struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,strong_password"`
	Age      int    `json:"age" validate:"omitempty,min=18,max=70"`
}

type filterBody struct {
	Religion      string   `json:"religion" validate:"omitempty,filter_option=religion"`
	MaritalStatus string   `json:"maritalStatus" validate:"omitempty,filter_option=marital_status"`
	Gender        string   `json:"gender" validate:"omitempty,catalog=gender"`
	Rashi         []string `json:"rashi" validate:"omitempty,dive,catalog=rashi"`
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
		wantMsg   string
		wantBase  error
	}{
		{
			name:     "empty body",
			body:     "",
			wantMsg:  constants.MsgEmptyRequestBody,
			wantBase: utils.ErrBadRequest,
		},
		{
			name:     "truncated object",
			body:     `{"name":"Priya"`,
			wantMsg:  constants.MsgMalformedJSON,
			wantBase: utils.ErrBadRequest,
		},
		{
			name:     "syntax error",
			body:     `{"name": Priya}`,
			wantMsg:  "malformed JSON (at position",
			wantBase: utils.ErrBadRequest,
		},
		{
			name:      "unknown field",
			body:      `{"name":"Priya","shoeSize":9}`,
			wantField: "unknown_field",
			wantMsg:   `unknown field "shoeSize"`,
			wantBase:  utils.ErrValidation,
		},
		{
			name:      "wrong type",
			body:      `{"name":"Priya","age":"twenty seven"}`,
			wantField: "age",
			wantMsg:   "Must be a int",
			wantBase:  utils.ErrValidation,
		},
		{
			name:     "trailing object",
			body:     `{"name":"Priya"} {"name":"Arjun"}`,
			wantMsg:  "single JSON object",
			wantBase: utils.ErrBadRequest,
		},
		{
			name:     "too large",
			body:     `{"name":"` + strings.Repeat("a", constants.MaxRequestBodySize) + `"}`,
			wantMsg:  constants.MsgRequestBodyTooLarge,
			wantBase: utils.ErrBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(tt.body))

			var body signupBody
			err := utils.DecodeJSON(req, &body)
			require.Error(t, err)

			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr), "expected *AppError, got %T", err)
			assert.ErrorIs(t, appErr, tt.wantBase)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Contains(t, appErr.Message, tt.wantMsg)
		})
	}
}

func TestDecodeJSON_Valid(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/signup",
		strings.NewReader(`{"name":"Priya Sharma","email":"priya@example.com","password":"Str0ng!Pass","age":27}`))

	var body signupBody
	require.NoError(t, utils.DecodeJSON(req, &body))
	assert.Equal(t, signupBody{Name: "Priya Sharma", Email: "priya@example.com", Password: "Str0ng!Pass", Age: 27}, body)
}

func TestValidateStruct(t *testing.T) {
	valid := signupBody{Name: "Priya Sharma", Email: "priya@example.com", Password: "Str0ng!Pass"}

	tests := []struct {
		name        string
		body        signupBody
		wantField   string
		wantMsg     string
		wantDetails map[string]interface{}
	}{
		{name: "valid", body: valid},
		{
			name:      "missing name",
			body:      signupBody{Email: valid.Email, Password: valid.Password},
			wantField: "name",
			wantMsg:   "This field is required",
		},
		{
			name:      "bad email",
			body:      signupBody{Name: valid.Name, Email: "priya.example.com", Password: valid.Password},
			wantField: "email",
			wantMsg:   "Must be a valid email address",
		},
		{
			name:      "weak password",
			body:      signupBody{Name: valid.Name, Email: valid.Email, Password: "alllowercase"},
			wantField: "password",
			wantMsg:   "Must contain at least 3 of",
		},
		{
			name:      "numeric minimum",
			body:      signupBody{Name: valid.Name, Email: valid.Email, Password: valid.Password, Age: 16},
			wantField: "age",
			wantMsg:   "Must be at least 18",
		},
		{
			name: "several fields",
			body: signupBody{Name: "P", Email: "nope"},
			wantDetails: map[string]interface{}{
				"name":     "Must be at least 2 characters long",
				"email":    "Must be a valid email address",
				"password": "This field is required",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateStruct(tt.body)
			if tt.wantField == "" && tt.wantDetails == nil {
				assert.NoError(t, err)
				return
			}

			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr), "expected *AppError, got %v", err)
			assert.True(t, utils.IsValidationError(appErr))

			if tt.wantDetails != nil {
				assert.Equal(t, "Multiple validation errors", appErr.Message)
				assert.Equal(t, tt.wantDetails, appErr.Details)
				return
			}
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Contains(t, appErr.Message, tt.wantMsg)
		})
	}
}

func TestValidateStruct_CatalogTags(t *testing.T) {
	tests := []struct {
		name      string
		body      filterBody
		wantField string
		wantMsg   string
	}{
		{name: "empty filter", body: filterBody{}},
		{name: "known values", body: filterBody{Religion: "Sikhism", MaritalStatus: "Never Married", Gender: "Female", Rashi: []string{"Mesha", "Kanya"}}},
		{name: "All is a filter option", body: filterBody{Religion: constants.FilterValueAll}},
		{
			name:      "unknown religion",
			body:      filterBody{Religion: "Klingon"},
			wantField: "religion",
			wantMsg:   "Must be one of the allowed religion values",
		},
		{
			name:      "underscored list name reads as words",
			body:      filterBody{MaritalStatus: "Engaged"},
			wantField: "maritalStatus",
			wantMsg:   "Must be one of the allowed marital status values",
		},
		{
			name:      "All is not a catalog value",
			body:      filterBody{Gender: constants.FilterValueAll},
			wantField: "gender",
			wantMsg:   "Must be one of the allowed gender values",
		},
		{
			name:      "list elements are checked",
			body:      filterBody{Rashi: []string{"Mesha", "Ophiuchus"}},
			wantField: "rashi[1]",
			wantMsg:   "Must be one of the allowed rashi values",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidateStruct(tt.body)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var appErr *utils.AppError
			require.True(t, errors.As(err, &appErr), "expected *AppError, got %v", err)
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestDecodeAndValidate(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/profiles/search", strings.NewReader(`{"religion":"Klingon"}`))
	var body filterBody
	err := utils.DecodeAndValidate(req, &body)
	assert.True(t, utils.IsValidationError(err))

	req = httptest.NewRequest("POST", "/api/profiles/search", strings.NewReader(""))
	err = utils.DecodeAndValidate(req, &body)
	assert.ErrorIs(t, err, utils.ErrBadRequest)
}

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"priya@example.com", true},
		{"arjun.iyer+match@mail.co.in", true},
		{"priya.example.com", false},
		{"priya@", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := utils.IsValidEmail(tt.email); got != tt.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"strong", "Str0ng!Pass", ""},
		{"three classes without symbol", "Password123", ""},
		{"too short", "Ab1!", "at least 8 characters"},
		{"two classes", "password123", "at least 3 of the following"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := utils.ValidatePassword(tt.password)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidatePassword(%q) = %v, want nil", tt.password, err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidatePassword(%q) = %v, want error containing %q", tt.password, err, tt.wantErr)
			}
			if !utils.IsValidationError(err) {
				t.Errorf("ValidatePassword(%q) error is not a validation error", tt.password)
			}
		})
	}
}
