package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/asistencia-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/asistencia-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a verified access token.
// It runs after jwtauth.Verifier, which only records the verification outcome.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TypeAccess {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}
		if userID, _ := claims["user_id"].(string); userID == "" {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		next.ServeHTTP(w, r)
	})
}
