package middleware

import (
	"net/http"
	"strings"

	"trendora-backend/config"
)

// NewCORSMiddleware allows the origins listed in ALLOWED_ORIGIN
// (comma-separated, "*" permitted). An unmatched origin gets no
// Allow-Origin header, which is how a browser is told no.
func NewCORSMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	allowed := strings.Split(cfg.AllowedOrigin, ",")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			for _, o := range allowed {
				o = strings.TrimSpace(o)
				if o == "*" {
					w.Header().Set("Access-Control-Allow-Origin", "*")
					break
				}
				if o == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					break
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
