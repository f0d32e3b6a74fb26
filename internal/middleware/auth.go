package middleware

import (
	"net/http"
	"strings"

	"github.com/StratosphereLabs/flight-logger-sub000/internal/auth"
	"github.com/StratosphereLabs/flight-logger-sub000/internal/logging"
)

// AuthMiddleware extracts the user from a Bearer token and rejects
// requests without one. Everything behind it can assume a user id is in
// the context.
func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				http.Error(w, "Unauthorized. Missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := auth.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), jwtSecret)
			if err != nil {
				logging.Warn("Rejected request with invalid token", "error", err.Error())
				http.Error(w, "Unauthorized. Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := auth.SetUserClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
