package auth

// TokenService issues and verifies session tokens.
type TokenService interface {
	Issue(email string) (string, error)
	Verify(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var (
	_ TokenService = (*JWTService)(nil)
)
