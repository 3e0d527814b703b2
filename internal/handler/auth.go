package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// AuthHandler handles account sync HTTP requests
type AuthHandler struct {
	resolver *service.UserResolver
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(resolver *service.UserResolver, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		resolver: resolver,
		logger:   logger,
	}
}

// SyncUser ensures the authenticated identity has a local user record,
// provisioning one on first sight.
// POST /auth/sync
func (h *AuthHandler) SyncUser(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// GetCurrentUser returns the resolved local user for the caller's identity
// GET /auth/me
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r.Context(), r, h.resolver)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}
