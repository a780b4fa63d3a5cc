package middleware

import (
	"net/http"

	"golang.org/x/time/rate"

	"pet-clinic-visits/internal/platform/logger"
)

// RateLimit aplica un token bucket global. rps <= 0 lo desactiva.
func RateLimit(rps float64, burst int, log logger.Logger) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst <= 0 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn("too many requests", map[string]any{"path": r.URL.Path})
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
