package middleware

import (
	"net/http"
	"time"

	"trendora-backend/pkg/logger"
	"trendora-backend/pkg/utils"

	"github.com/google/uuid"
)

// RequestLogger tags every request with a short id, stores a request-scoped
// logger on the context and emits one line per request with timing and
// status. 4xx log at warn, 5xx at error.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		requestID := uuid.New().String()[:8]
		reqLogger := logger.WithRequestID(requestID)
		r = r.WithContext(logger.NewContext(r.Context(), &reqLogger))
		w.Header().Set("X-Request-ID", requestID)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		userID := ""
		if claims, err := utils.ExtractClaims(r); err == nil && claims != nil {
			userID = claims.UserID
		}

		logEvent := reqLogger.Info()
		switch {
		case wrapped.statusCode >= 500:
			logEvent = reqLogger.Error()
		case wrapped.statusCode >= 400:
			logEvent = reqLogger.Warn()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", wrapped.statusCode).
			Dur("duration_ms", time.Since(start)).
			Str("ip", getClientIP(r)).
			Str("user_agent", r.UserAgent()).
			Str("user_id", userID).
			Msg("HTTP")
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// getClientIP prefers proxy headers over RemoteAddr.
func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
