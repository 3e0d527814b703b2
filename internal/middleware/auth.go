package middleware

import (
	"net/http"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
)

// AuthOptions configures the auth middleware's fallback behavior.
//
// Exactly one demo policy exists: when AllowDemo is set (non-production
// deployments), requests without a bearer token are attributed to the demo
// identity. In production AllowDemo is false and such requests get 401.
// An invalid or expired token is always 401 - demo fallback applies only to
// the complete absence of credentials.
type AuthOptions struct {
	AllowDemo bool
	DemoEmail string
	DemoName  string
}

// Auth verifies the bearer token and stores the identity claims in the
// request context. The health endpoint and CORS preflights pass through.
func Auth(verifier auth.JWTVerifier, opts AuthOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || r.URL.Path == "/health" {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				if opts.AllowDemo {
					next.ServeHTTP(w, httputil.WithClaims(r, demoClaims(opts)))
					return
				}
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				httputil.RespondError(w, http.StatusUnauthorized, "malformed authorization header")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithClaims(r, claims))
		})
	}
}

func demoClaims(opts AuthOptions) *models.IdentityClaims {
	claims := &models.IdentityClaims{
		Email: opts.DemoEmail,
		Role:  "authenticated",
	}
	if opts.DemoName != "" {
		claims.UserMetadata = map[string]interface{}{"full_name": opts.DemoName}
	}
	return claims
}
