// Package auth define el puerto de verificación de bearer tokens.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken: el token fue rechazado (vencido, revocado, mal formado).
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnavailable: no se pudo verificar; el token puede ser válido.
	ErrUnavailable = errors.New("token verification unavailable")
)

// Claims es la identidad del usuario que hace el request.
type Claims struct {
	UserID string
	Email  string
}

// AuthVerifier devuelve errores que envuelven ErrInvalidToken o ErrUnavailable.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
