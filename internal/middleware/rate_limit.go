package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit corta con 429 cuando se agota el token bucket. Limiter nil => no limita.
// Se aplica solo a las rutas de generación, que son las caras.
func RateLimit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
