package auth

// JWTValidator defines the interface for JWT validation
type JWTValidator interface {
	// ValidateToken validates a JWT token and returns its claims if valid
	ValidateToken(tokenString string, expectedType string) (*CustomClaims, error)
}

// TokenIssuer issues access tokens after a successful login
type TokenIssuer interface {
	GenerateAccessToken(userID, email string) (string, string, error)
	ExpiresInSeconds() int
}

var (
	_ JWTValidator = (*JWTService)(nil)
	_ TokenIssuer  = (*JWTService)(nil)
)
