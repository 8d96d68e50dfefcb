package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sssf/cats-api/internal/api/middleware"
	"github.com/sssf/cats-api/internal/core/domain"
)

// ctxIdentity returns the principal injected by the Authenticate middleware.
// A nil result is passed on unchanged: the services turn it into
// domain.ErrUnauthenticated through the authorization policy.
func ctxIdentity(c echo.Context) *domain.Identity {
	return middleware.Identity(c)
}

// pathID parses the positive integer :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator over it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// messageResponse mirrors the {"message": ...} envelope returned by mutations.
type messageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}
