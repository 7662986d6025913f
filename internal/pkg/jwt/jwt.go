package jwt

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/user"
)

// Token types carried in the "type" claim.
const (
	TypeAccess        = "access"
	TypeRefresh       = "refresh"
	TypeSSE           = "sse"
	TypeResetPassword = "reset_password"
)

const sseTokenLifetime = 5 * time.Minute

var ErrWrongTokenType = errors.New("token type mismatch")

type Service interface {
	GenerateAccessToken(userID, username string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	ValidateRefreshToken(tokenString string) (userID string, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	GenerateResetPasswordToken(userID string) (token string, expiresAt time.Time, err error)
	ValidateResetPasswordToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
}

type JWTService struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
	resetTTL   time.Duration
	secure     bool
	tokenAuth  *jwtauth.JWTAuth
	now        func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService parses the lifetimes once; they are validated at config load.
func NewJWTService(secretKey, accessTTL, refreshTTL, resetTTL string, secureCookie bool) (*JWTService, error) {
	access, err := time.ParseDuration(accessTTL)
	if err != nil {
		return nil, fmt.Errorf("access token lifetime: %w", err)
	}
	refresh, err := time.ParseDuration(refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("refresh token lifetime: %w", err)
	}
	reset, err := time.ParseDuration(resetTTL)
	if err != nil {
		return nil, fmt.Errorf("reset token lifetime: %w", err)
	}
	return &JWTService{
		accessTTL:  access,
		refreshTTL: refresh,
		resetTTL:   reset,
		secure:     secureCookie,
		tokenAuth:  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:        time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID, username string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTTL).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id":  userID,
		"username": username,
		"role":     string(role),
		"type":     TypeAccess,
		"exp":      expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTTL).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TypeRefresh,
		// distinct tokens for logins within the same second
		"jti": fmt.Sprintf("%d", j.now().UnixNano()),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ValidateRefreshToken(tokenString string) (string, error) {
	return j.validate(tokenString, TypeRefresh, "user_id")
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secure,
		SameSite: http.SameSiteStrictMode,
	}
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TypeSSE,
		"exp":     j.now().Add(sseTokenLifetime).Unix(),
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(sseTokenLifetime.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	return j.validate(tokenString, TypeSSE, "user_id")
}

// GenerateResetPasswordToken carries the user id in the reset_password claim.
func (j *JWTService) GenerateResetPasswordToken(userID string) (string, time.Time, error) {
	expiresAt := j.now().Add(j.resetTTL)
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"reset_password": userID,
		"type":           TypeResetPassword,
		"exp":            expiresAt.Unix(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ValidateResetPasswordToken(tokenString string) (string, error) {
	return j.validate(tokenString, TypeResetPassword, "reset_password")
}

// validate verifies signature and expiry, checks the type claim and returns the string claim subject.
func (j *JWTService) validate(tokenString, wantType, subjectClaim string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != wantType {
		return "", ErrWrongTokenType
	}

	raw, ok := token.Get(subjectClaim)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}
	subject, ok := raw.(string)
	if !ok || subject == "" {
		return "", jwt.ErrInvalidJWT()
	}
	return subject, nil
}
