package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sssf/cats-api/internal/core/domain"
)

// RequireIdentity rejects anonymous requests with domain.ErrUnauthenticated.
// Role and ownership checks are not done here; they belong to the
// authorization policy called by the services.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Identity(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
