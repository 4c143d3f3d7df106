package middleware

import (
	"context"
	"net/http"

	"github.com/eventlane/server/internal/api/problem"
	"github.com/eventlane/server/internal/auth"
)

type contextKeyAuth string

const adminClaimsKey contextKeyAuth = "adminClaims"

// AdminAuth guards the administrative API. Requests must carry a bearer
// token issued by the login endpoint with the admin role.
func AdminAuth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Missing bearer token", err, env)
				return
			}

			claims, err := manager.Validate(token)
			if err != nil {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Invalid token", err, env)
				return
			}
			if claims.Role != auth.RoleAdmin {
				problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Admin role required", auth.ErrInvalidToken, env)
				return
			}

			ctx := context.WithValue(r.Context(), adminClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminClaims returns the validated claims set by AdminAuth, if any.
func AdminClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(adminClaimsKey).(*auth.Claims)
	return claims, ok
}
