package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/jagruti-foundation/apiserver/internal/auth"
	"github.com/jagruti-foundation/apiserver/internal/services"
	"github.com/jagruti-foundation/apiserver/internal/store"
	"github.com/jagruti-foundation/apiserver/types"
)

// Middleware bundles the authentication and role gates shared by all
// routers.
type Middleware struct {
	users  *services.UserService
	tokens *auth.TokenService
}

func NewMiddleware(users *services.UserService, tokens *auth.TokenService) *Middleware {
	return &Middleware{users: users, tokens: tokens}
}

// RequireAuth verifies the bearer session token, resolves the account,
// and re-checks its status on every request. A token for an account
// that has since left active status is rejected even if the token
// itself is still valid.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID, _, err := m.tokens.VerifySessionToken(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := m.users.GetByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load user")
			return
		}
		if user.Status != types.StatusActive {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), contextUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole admits only accounts whose role is a member of the given
// allowed set. Each gate enumerates its set explicitly; no hierarchy is
// computed.
func (m *Middleware) RequireRole(allowed ...types.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := userFromContext(r.Context())
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			for _, role := range allowed {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "insufficient role")
		})
	}
}
