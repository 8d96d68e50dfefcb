package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sssf/cats-api/internal/api/metrics"
	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

const identityKey = "identity"

var tracer trace.Tracer = otel.Tracer("github.com/sssf/cats-api/internal/api/middleware")

// Authenticate validates an optional bearer token and places the identity it
// carries on the echo context.
//
// A request without an Authorization header passes through anonymously; the
// authorization policy decides whether that is acceptable. A header that is
// present but malformed, or a token that fails validation, is rejected with
// domain.ErrInvalidToken.
func Authenticate(validator ports.TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				metrics.TokenRejectionsTotal.Inc()
				return domain.ErrInvalidToken
			}

			_, span := tracer.Start(c.Request().Context(), "auth.validate_token")
			identity, err := validator.Validate(strings.TrimSpace(parts[1]))
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "token rejected")
				span.End()
				metrics.TokenRejectionsTotal.Inc()
				return domain.ErrInvalidToken
			}
			span.SetAttributes(
				attribute.Int64("enduser.id", identity.ID),
				attribute.String("enduser.role", string(identity.Role)),
			)
			span.End()

			SetIdentity(c, identity)
			return next(c)
		}
	}
}

// SetIdentity places the principal on the context.
func SetIdentity(c echo.Context, identity *domain.Identity) {
	c.Set(identityKey, identity)
}

// Identity returns the principal placed on the context by Authenticate, or
// nil for anonymous requests.
func Identity(c echo.Context) *domain.Identity {
	id, _ := c.Get(identityKey).(*domain.Identity)
	return id
}
