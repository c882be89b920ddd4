package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"pet-plates/internal/platform/logger"
	"pet-plates/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader identifica al usuario en modo dev (sin verifier).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext resuelve la identidad del request:
//   - verifier nil: modo dev, se confía en DebugUserHeader.
//   - con verifier: se verifica el bearer token. Token rechazado => 401;
//     servicio de identidad caído => 503 y se loguea.
//
// Sin credenciales el request sigue anónimo y cada handler decide si exige auth.
func AuthContext(verifier auth.AuthVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				if uid := strings.TrimSpace(r.Header.Get(DebugUserHeader)); uid != "" {
					next.ServeHTTP(w, withClaims(r, auth.Claims{UserID: uid}))
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(r.Context(), token)
			switch {
			case err == nil:
				next.ServeHTTP(w, withClaims(r, claims))
			case errors.Is(err, auth.ErrUnavailable):
				log.Warn("token verification failed", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"route":      r.URL.Path,
					"error":      err.Error(),
				})
				http.Error(w, "identity service unavailable", http.StatusServiceUnavailable)
			case errors.Is(err, auth.ErrInvalidToken):
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			default:
				log.Error("unexpected verifier error", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"error":      err.Error(),
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			}
		})
	}
}

func withClaims(r *http.Request, c auth.Claims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, c))
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

// bearerToken: "" si el header no es "Bearer <token>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
