package models

import (
	"time"
)

// User represents a registered account. A user owns at most one Profile.
type User struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Salt         string    `json:"-" db:"salt"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewUser creates a new User instance with the given id, name and email.
// Password fields are populated later during the registration process.
func NewUser(id, name, email string) *User {
	now := time.Now().UTC()
	return &User{
		ID:        id,
		Name:      name,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// TableName returns the database table name for the User model.
func (u *User) TableName() string {
	return "users"
}

// Sanitize removes sensitive information from the User object when sending to clients.
// This ensures sensitive fields like password hash are never exposed.
func (u *User) Sanitize() *User {
	sanitized := *u
	sanitized.PasswordHash = ""
	sanitized.Salt = ""
	return &sanitized
}

// UserCredentials represents the login credentials provided by a user.
type UserCredentials struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8"`
}

// UserRegistration represents the data required for user registration.
type UserRegistration struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,strong_password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginResult is returned to clients after a successful login.
type LoginResult struct {
	User        *User  `json:"user"`
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int    `json:"expiresIn"`
}
