package middleware

import (
	"context"
	"net/http"
	"strings"

	"trendora-backend/internal/domain"
	"trendora-backend/pkg/utils"
)

// AuthMiddleware validates the bearer token (header or accessToken cookie)
// and puts a user built from the claims on the context. No database hit per
// request; a role change takes effect when the token is reissued.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := r.Cookie("accessToken"); err == nil {
			tokenString = cookie.Value
		}

		if tokenString == "" {
			http.Error(w, "Unauthorized: No token provided", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}

		sub, _ := claims["sub"].(string)
		email, _ := claims["email"].(string)
		name, _ := claims["name"].(string)
		role, _ := claims["role"].(string)

		user := &domain.User{
			ID:    sub,
			Email: email,
			Name:  name,
			Role:  role,
		}

		ctx := context.WithValue(r.Context(), domain.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
