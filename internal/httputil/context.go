package httputil

import (
	"context"
	"net/http"

	"inkwell/internal/domain/models"
)

// Context key type to avoid collisions
type contextKey string

const claimsKey contextKey = "identityClaims"

// WithClaims adds verified identity claims to the request context
func WithClaims(r *http.Request, claims *models.IdentityClaims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

// GetClaims retrieves identity claims from context, returns nil if not found
func GetClaims(r *http.Request) *models.IdentityClaims {
	claims, _ := r.Context().Value(claimsKey).(*models.IdentityClaims)
	return claims
}
