package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/recyclo/cashbook/internal/domain"
	"github.com/recyclo/cashbook/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"
)

// AuthMiddleware creates an authentication middleware
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			user := &domain.User{
				ID:       claims.UserID,
				Username: claims.Username,
				Role:     claims.Role,
				Active:   true,
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates a middleware that checks for a minimum role
func RequireRole(minRole domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := r.Context().Value(UserContextKey).(*domain.User)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			if !roleAllows(user.Role, minRole) {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// roleAllows checks whether have satisfies the want requirement. Admin
// passes every check; manager covers inventory duties; everyone can view.
func roleAllows(have, want domain.Role) bool {
	switch want {
	case domain.RoleAdmin:
		return have == domain.RoleAdmin
	case domain.RoleManager:
		return have == domain.RoleAdmin || have == domain.RoleManager
	case domain.RoleInventory:
		return have == domain.RoleAdmin || have == domain.RoleManager || have == domain.RoleInventory
	case domain.RoleViewer:
		return true
	}

	return false
}

// GetUserFromContext extracts the authenticated user from context. The
// second return is false when auth is disabled and no user was attached;
// use cases treat a nil actor as a trusted caller.
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}
