package models

import "github.com/golang-jwt/jwt/v5"

// IdentityClaims represents the JWT claims structure issued by the identity
// provider (Supabase-style). Only the claims this backend reads are mapped.
type IdentityClaims struct {
	jwt.RegisteredClaims                        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string                 `json:"email"`
	Role                 string                 `json:"role"` // "authenticated" or "anon"
	UserMetadata         map[string]interface{} `json:"user_metadata"`
	IsAnonymous          bool                   `json:"is_anonymous"`
}

// GetUserID returns the provider subject claim, the primary identifier for
// the authenticated identity.
func (c *IdentityClaims) GetUserID() string {
	return c.Subject
}

// FullName returns the display name from user metadata, or "" if absent.
func (c *IdentityClaims) FullName() string {
	if c.UserMetadata == nil {
		return ""
	}
	name, _ := c.UserMetadata["full_name"].(string)
	return name
}
