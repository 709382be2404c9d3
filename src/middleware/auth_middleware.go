package middleware

import (
	"context"
	"net/http"
	"strings"

	"fintrack-server/src/util"
)

// JWTAuthMiddleware validates the bearer token and injects the identity into
// the request context. A missing token is 401, a present but invalid or
// expired one is 403; clients treat either as a forced logout.
func JWTAuthMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				util.Fail(w, http.StatusUnauthorized, "missing authentication token")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := util.ParseToken(secret, tokenString)
			if err != nil {
				util.Fail(w, http.StatusForbidden, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), "user_id", claims.UserID)
			ctx = context.WithValue(ctx, "username", claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
