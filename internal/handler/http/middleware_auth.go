package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-task-manager/internal/service"
	"github.com/MKhiriev/go-task-manager/internal/utils"
)

// auth is an HTTP middleware that resolves the caller of a protected route.
//
// It extracts the bearer token from the "Authorization" header and hands it
// to [service.AuthService.Authorize], which verifies the token and loads the
// active user it names. On success the user is stored in the request context
// under [utils.UserCtxKey] before delegating to the next handler.
//
// Every failure (no header, malformed header, bad or expired token, unknown
// or inactive user) produces the same 401 response with
// "WWW-Authenticate: Bearer". The actual cause is only logged.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthorized, ErrEmptyAuthorizationHeader))
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: %w", service.ErrUnauthorized, err))
			return
		}

		user, err := h.services.AuthService.Authorize(r.Context(), tokenString)
		if err != nil {
			writeError(w, r, err)
			return
		}

		ctx := utils.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
