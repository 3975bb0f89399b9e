package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
	"github.com/onsite-hris/onsite-backend-go/internal/pkg/jwt"
)

// RequireCoordinator restricts a route to coordinator tokens.
func RequireCoordinator(next http.Handler) http.Handler {
	return requireRole(next, jwt.RoleCoordinator)
}

// RequireOnsite restricts a route to onsite worker tokens.
func RequireOnsite(next http.Handler) http.Handler {
	return requireRole(next, jwt.RoleOnsite)
}

func requireRole(next http.Handler, required string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Forbidden(w, "insufficient permissions")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != required {
			response.Forbidden(w, "insufficient permissions")
			return
		}

		next.ServeHTTP(w, r)
	})
}
