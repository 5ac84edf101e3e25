// Package middleware carries the route guard: bearer-token authentication,
// profile-record role resolution, and role allow-list checks. A request moves
// through one resolution per call; the wrapped handler runs only once the
// principal is resolved and allowed.
package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"careerconnect/internal/auth"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

type AuthMiddleware struct {
	tokens *auth.TokenProvider
	users  store.UserStore
	cache  *RoleCache
	logger *zap.Logger
}

func NewAuthMiddleware(tokens *auth.TokenProvider, users store.UserStore, cache *RoleCache, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, users: users, cache: cache, logger: logger}
}

func denial(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// Authenticate resolves the bearer token to a principal and the principal to
// a role claim. No principal, no profile record, or an unknown role value all
// end in denial; the wrapped handler never observes an unresolved request.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			denial(w, http.StatusUnauthorized, "missing authorization header")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			denial(w, http.StatusUnauthorized, "invalid authorization header")
			return
		}

		userID, err := m.tokens.Verify(parts[1])
		if err != nil {
			denial(w, http.StatusUnauthorized, "invalid token")
			return
		}

		principal, ok := m.cache.Get(r.Context(), userID)
		if !ok {
			user, err := m.users.GetByID(r.Context(), userID)
			if err != nil {
				// absence of a profile record is a denial, not an error page
				m.logger.Warn("profile lookup failed", zap.String("user_id", userID), zap.Error(err))
				denial(w, http.StatusForbidden, "access denied")
				return
			}
			role, err := models.ParseRole(string(user.Role))
			if err != nil {
				m.logger.Warn("profile carries unknown role", zap.String("user_id", userID), zap.String("role", string(user.Role)))
				denial(w, http.StatusForbidden, "access denied")
				return
			}
			principal = &Principal{UserID: user.ID, Email: user.Email, Name: user.Name, Role: role}
			m.cache.Set(r.Context(), *principal)
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), *principal)))
	})
}

// RequireRole gates a subtree on a role allow-list.
func RequireRole(allowed ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFromContext(r.Context())
			if !ok {
				denial(w, http.StatusForbidden, "access denied")
				return
			}
			for _, role := range allowed {
				if principal.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			denial(w, http.StatusForbidden, "access denied: role "+string(principal.Role)+" is not permitted")
		})
	}
}
