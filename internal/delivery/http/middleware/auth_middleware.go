// Package middleware contains the echo middleware of the HTTP delivery.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"usergate/internal/domain/entity"
	domainerrors "usergate/internal/domain/errors"
	"usergate/internal/domain/service"
)

// KeyIdentity is the echo.Context key under which the authenticated
// SessionIdentity is stored for handlers.
const KeyIdentity = "identity"

// AuthMiddleware validates the session token and rebuilds the caller's
// identity snapshot from its claims.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrUnauthorized.WithDetails("Invalid token format, must be Bearer token")
		}

		identity, err := m.tokenSvc.ValidateSessionToken(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized.WithDetails("Invalid or expired session token")
		}

		c.Set(KeyIdentity, identity)

		return next(c)
	}
}

// IdentityFromContext returns the identity stored by Authenticate, nil when absent.
func IdentityFromContext(c echo.Context) *entity.SessionIdentity {
	identity, _ := c.Get(KeyIdentity).(*entity.SessionIdentity)

	return identity
}
