package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("usuario o contraseña incorrectos")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrResetTokenInvalid   = errors.New("el token es inválido o ha expirado")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
)
