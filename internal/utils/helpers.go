// Package utils provides utility functions and helpers for common operations
// used throughout the application: identifiers, email handling and small
// slice helpers, alongside the error, response, validation and logging
// helpers in the sibling files.
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/vivahmatch/backend/internal/constants"
)

// GenerateProfileID returns a random public profile id such as "aB3xK9pQ".
// Collisions are possible; callers check storage and draw again.
func GenerateProfileID() (string, error) {
	return RandomString(constants.ProfileIDLength, constants.ProfileIDAlphabet)
}

// RandomString draws n characters uniformly from alphabet using crypto/rand.
func RandomString(n int, alphabet string) (string, error) {
	size := big.NewInt(int64(len(alphabet)))
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		sb.WriteByte(alphabet[idx.Int64()])
	}
	return sb.String(), nil
}

// MaskEmail keeps the first and last character of the local part, for logs:
// "priya@example.com" becomes "p***a@example.com". Short or malformed
// addresses are returned unchanged.
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") || len(local) <= 2 {
		return email
	}
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + "@" + domain
}

// NormalizeEmail lower-cases and trims an email address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UniqueStrings returns the distinct values of slice in first-seen order.
func UniqueStrings(slice []string) []string {
	if len(slice) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(slice))
	result := make([]string, 0, len(slice))
	for _, item := range slice {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		result = append(result, item)
	}
	return result
}
