package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sssf/cats-api/internal/api/metrics"
	"github.com/sssf/cats-api/internal/core/domain"
	"github.com/sssf/cats-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	limiter     ports.LoginLimiter
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, limiter ports.LoginLimiter, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter, log: log}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User  *domain.Identity `json:"user"`
	Token string           `json:"token"`
}

// Login authenticates a user and returns a JWT token.
//
// Failed attempts are counted per email whether or not the account exists.
// Once the limit is reached the endpoint answers 429 without verifying.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()
	key := strings.ToLower(strings.TrimSpace(req.Email))

	blocked, err := h.limiter.Blocked(ctx, key)
	if err != nil {
		h.log.Warn().Err(err).Msg("login limiter unavailable")
	}
	if blocked {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return domain.ErrTooManyAttempts
	}

	token, identity, err := h.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			if ferr := h.limiter.Fail(ctx, key); ferr != nil {
				h.log.Warn().Err(ferr).Msg("record failed login")
			}
			return err
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	if rerr := h.limiter.Reset(ctx, key); rerr != nil {
		h.log.Warn().Err(rerr).Msg("reset login attempts")
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, loginResponse{User: identity, Token: token})
}
