package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"rackup/pkg/errors"
	"rackup/pkg/response"
)

// TokenResolver validates an application token and returns the user id it
// belongs to.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}

type AuthMiddleware struct {
	resolver TokenResolver
}

func NewAuthMiddleware(resolver TokenResolver) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
	}
}

// Authenticate requires a valid bearer token and puts the user id on the
// request context as "uid".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		userID, err := m.resolver.Resolve(c.Request().Context(), parts[1])
		if err != nil {
			return response.Error(c, err)
		}

		c.Set("uid", userID)

		return next(c)
	}
}
