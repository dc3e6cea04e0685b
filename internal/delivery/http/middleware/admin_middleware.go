package middleware

import (
	"net/http"

	"trendora-backend/internal/domain"
)

// AdminMiddleware gates a route to admin users. It reads the user
// AuthMiddleware placed on the context, so order matters.
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(domain.UserContextKey).(*domain.User)
		if !ok || user == nil {
			http.Error(w, "Unauthorized: No user found in context", http.StatusUnauthorized)
			return
		}
		if !user.IsAdmin() {
			http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
