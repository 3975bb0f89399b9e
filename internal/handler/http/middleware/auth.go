package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/onsite-hris/onsite-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests whose HR SSO access token is missing,
// invalid, or of the wrong type.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "missing access token")
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.Unauthorized(w, "invalid access token")
				return
			}
			if nik, ok := claims["nik"].(string); !ok || nik == "" {
				response.Unauthorized(w, "invalid access token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// TokenNIK extracts the caller's NIK from the verified token. Handlers
// behind AuthRequired can assume it is present.
func TokenNIK(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	nik, _ := claims["nik"].(string)
	return nik
}
