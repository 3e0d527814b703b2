package handler

import (
	"context"
	"net/http"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// currentUser resolves the request's identity claims to a persisted user,
// provisioning the account on first sight. The auth middleware guarantees
// claims are present on every authenticated route; a missing claim set
// means the route was wired outside the middleware chain.
func currentUser(ctx context.Context, r *http.Request, resolver *service.UserResolver) (*models.User, error) {
	claims := httputil.GetClaims(r)
	if claims == nil {
		return nil, &domain.UnauthorizedError{Message: "not authenticated"}
	}

	return resolver.Resolve(ctx, service.Identity{
		Email:   claims.Email,
		Name:    claims.FullName(),
		Subject: claims.Subject,
	})
}
