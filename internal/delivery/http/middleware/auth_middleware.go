package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kliniki/clinic-api/pkg/jwt"
	"github.com/kliniki/clinic-api/pkg/response"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated actor extracted from a verified token.
type Identity struct {
	Username string
	ID       uuid.UUID
	Roles    []string
}

// HasAnyRole reports whether the identity's role set intersects the
// allowed set.
func (i Identity) HasAnyRole(allowed ...string) bool {
	for _, role := range i.Roles {
		for _, a := range allowed {
			if role == a {
				return true
			}
		}
	}
	return false
}

// AuthMiddleware is the access gate: it verifies the bearer credential's
// signature and expiry and attaches the identity to the request context.
// It holds no state and consults no store.
type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization failed: Token not provided")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Authorization failed: Token not provided")
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			switch {
			case errors.Is(err, jwtlib.ErrTokenExpired):
				response.Unauthorized(w, "Token expired")
			case errors.Is(err, jwtlib.ErrTokenMalformed),
				errors.Is(err, jwtlib.ErrTokenSignatureInvalid),
				errors.Is(err, jwtlib.ErrTokenNotValidYet):
				response.Unauthorized(w, "Invalid token")
			default:
				response.Unauthorized(w, "Authentication failed")
			}
			return
		}

		identity := Identity{
			Username: claims.Username,
			ID:       claims.UserID,
			Roles:    claims.Roles,
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext extracts the authenticated identity from context
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
