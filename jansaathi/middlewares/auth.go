// jansaathi/middlewares/auth.go
package middlewares

import (
	"context"
	"net/http"
	"strings"

	"jansaathi/jansaathi/config"
	httputils "jansaathi/jansaathi/utils/http"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// UserIDKey carries the authenticated subject through the request context.
const UserIDKey contextKey = "user_id"

// AuthMiddleware verifies the bearer token issued by the session provider.
// The chat core itself only needs a validated identity; how the token was
// obtained is the provider's business.
func AuthMiddleware(cfg config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			subject, ok := subjectFromBearer(r.Header.Get("Authorization"), cfg.JWTSecret)
			if !ok {
				httputils.WriteError(w, http.StatusUnauthorized, "Unauthorized. Please log in again.")
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VerifyToken validates a raw token string. The websocket route uses it
// because its credential arrives in the first frame, not a header.
func VerifyToken(tokenStr, secret string) (string, bool) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", false
	}
	return subject, true
}

func subjectFromBearer(header, secret string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return VerifyToken(parts[1], secret)
}
