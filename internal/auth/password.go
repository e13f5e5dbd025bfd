package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/argon2"

	"github.com/vivahmatch/backend/internal/config"
)

// PasswordConfig holds the parameters for the Argon2id password hashing algorithm
type PasswordConfig struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultPasswordConfig returns the default configuration for password hashing
func DefaultPasswordConfig() *PasswordConfig {
	return &PasswordConfig{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ConfigFromAppConfig creates a password config from the application config
func ConfigFromAppConfig(cfg *config.AppConfig) *PasswordConfig {
	return &PasswordConfig{
		Memory:      cfg.PasswordHash.Memory,
		Iterations:  cfg.PasswordHash.Iterations,
		Parallelism: cfg.PasswordHash.Parallelism,
		SaltLength:  cfg.PasswordHash.SaltLength,
		KeyLength:   cfg.PasswordHash.KeyLength,
	}
}

// PasswordHasher hashes and verifies passwords with a fixed configuration.
type PasswordHasher struct {
	cfg *PasswordConfig
}

// NewPasswordHasher creates a hasher; a nil config uses the defaults.
func NewPasswordHasher(cfg *PasswordConfig) *PasswordHasher {
	if cfg == nil {
		cfg = DefaultPasswordConfig()
	}
	return &PasswordHasher{cfg: cfg}
}

// Hash returns the encoded hash and salt for password
func (h *PasswordHasher) Hash(password string) (string, string, error) {
	return HashPassword(password, h.cfg)
}

// Verify reports whether password matches the stored hash and salt
func (h *PasswordHasher) Verify(password, encodedHash, encodedSalt string) (bool, error) {
	return VerifyPassword(password, encodedHash, encodedSalt, h.cfg)
}

// HashPassword generates a hash of the provided password using Argon2id.
// Returns the encoded hash and the salt used for hashing.
func HashPassword(password string, cfg *PasswordConfig) (string, string, error) {
	salt := make([]byte, cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, cfg.Iterations, cfg.Memory, cfg.Parallelism, cfg.KeyLength)

	return base64.StdEncoding.EncodeToString(hash), base64.StdEncoding.EncodeToString(salt), nil
}

// VerifyPassword compares a password with a hash and salt using Argon2id
func VerifyPassword(password, encodedHash, encodedSalt string, cfg *PasswordConfig) (bool, error) {
	hash, err := base64.StdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	salt, err := base64.StdEncoding.DecodeString(encodedSalt)
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	comparisonHash := argon2.IDKey([]byte(password), salt, cfg.Iterations, cfg.Memory, cfg.Parallelism, uint32(len(hash)))

	// Constant-time comparison
	return subtle.ConstantTimeCompare(hash, comparisonHash) == 1, nil
}
