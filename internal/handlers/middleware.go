package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/domain"
)

type contextKey string

const authPayloadKey contextKey = "authPayload"

type MiddlewareProvider struct {
	jwtService primary.JWTService
}

func NewMiddlewareProvider(jwtService primary.JWTService) *MiddlewareProvider {
	return &MiddlewareProvider{
		jwtService: jwtService,
	}
}

// Authenticate verifies the bearer token and injects the decoded claim set
// into the request context
func (m *MiddlewareProvider) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ResponseError(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		valid, err := m.jwtService.VerifyTokenHMAC(r.Context(), tokenString, jwt.SigningMethodHS256.Name)
		if err != nil || !valid {
			ResponseError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		payload, err := m.jwtService.DecodeTokenPayload(r.Context(), tokenString)
		if err != nil {
			ResponseError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), authPayloadKey, payload)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireAdmin gates privileged routes. It must wrap a handler already
// behind Authenticate.
func (m *MiddlewareProvider) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		payload, ok := AuthFrom(r.Context())
		if !ok || payload.Role != domain.RoleAdmin {
			ResponseError(w, "Admin access required", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AuthFrom extracts the authenticated claim set injected by Authenticate
func AuthFrom(ctx context.Context) (domain.AuthPayload, bool) {
	payload, ok := ctx.Value(authPayloadKey).(domain.AuthPayload)
	return payload, ok
}
