package auth

import "inkwell/internal/domain/models"

// JWTVerifier validates bearer tokens. The middleware depends on this
// interface rather than the JWKS implementation so tests can substitute a
// stub verifier.
type JWTVerifier interface {
	// VerifyToken parses and validates a token string and returns its claims.
	// Invalid, expired or wrongly signed tokens return an error.
	VerifyToken(tokenString string) (*models.IdentityClaims, error)

	// Close releases verifier resources such as the JWKS refresh loop.
	Close() error
}
