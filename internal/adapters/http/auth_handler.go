package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

// AuthHandler handles signup, signin, signout and identity resolution
type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
	logger        *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService ports.AuthService, secureCookies bool, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
		logger:        logger,
	}
}

// Signup handles POST /api/users/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	var req ports.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Signup(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrEmailInUse) {
			return echo.NewHTTPError(http.StatusBadRequest, "Email in use")
		}
		h.logger.Errorw("Signup failed", "error", err, "email", req.Email)
		return err
	}

	WriteSessionCookie(c, token, h.secureCookies)

	return c.JSON(http.StatusCreated, user)
}

// Signin handles POST /api/users/signin
func (h *AuthHandler) Signin(c echo.Context) error {
	var req ports.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	user, token, err := h.authService.Signin(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid credentials")
		}
		h.logger.Errorw("Signin failed", "error", err, "email", req.Email)
		return err
	}

	WriteSessionCookie(c, token, h.secureCookies)

	return c.JSON(http.StatusOK, user)
}

// Signout handles POST /api/users/signout
func (h *AuthHandler) Signout(c echo.Context) error {
	ClearSessionCookie(c)

	return c.JSON(http.StatusOK, MessageResponse{Message: "Successfully signed out"})
}

// CurrentUser handles GET /api/users/currentuser. Anonymous requests get
// {"currentUser": null}, never an error.
func (h *AuthHandler) CurrentUser(c echo.Context) error {
	claims := GetClaimsFromContext(c)

	user, err := h.authService.CurrentUser(c.Request().Context(), claims)
	if err != nil {
		h.logger.Errorw("Current user lookup failed", "error", err)
		return err
	}

	return c.JSON(http.StatusOK, CurrentUserResponse{CurrentUser: user})
}
