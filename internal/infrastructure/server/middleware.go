package server

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	httpHandlers "github.com/manageer/core/internal/adapters/http"
	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/infrastructure/logger"
	"github.com/manageer/core/internal/ports"
)

// sessionResolver extracts the identity token from the session cookie and
// attaches the verified claims to the request context. An absent or invalid
// token is not an error; downstream routes decide whether identity is
// required.
func (s *Server) sessionResolver(authService ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := httpHandlers.ReadSessionToken(c)
			if !ok {
				return next(c)
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				s.logger.LogSecurityEvent("invalid_session_token", "", c.RealIP(), map[string]interface{}{
					"error": err.Error(),
					"path":  c.Request().URL.Path,
				})
				return next(c)
			}

			c.Set(httpHandlers.ContextKeyUserID, claims.ID)
			c.Set(httpHandlers.ContextKeyEmail, claims.Email)
			c.Set(httpHandlers.ContextKeyUsername, claims.Username)

			return next(c)
		}
	}
}

// requireAuth rejects requests that carry no resolved identity.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if httpHandlers.GetClaimsFromContext(c) == nil {
			return entities.ErrUnauthenticated
		}

		return next(c)
	}
}

// customErrorHandler funnels every error to the uniform envelope
// {"errors":[{message, field?}]} and maps error kinds to status codes.
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		body := httpHandlers.NewErrorResponse("Something went wrong")

		var httpErr *echo.HTTPError
		var validationErrs validator.ValidationErrors

		switch {
		case errors.Is(err, entities.ErrUnauthenticated):
			code = http.StatusUnauthorized
			body = httpHandlers.NewErrorResponse("Not authorized")
		case errors.As(err, &validationErrs):
			code = http.StatusBadRequest
			items := make([]httpHandlers.ErrorItem, 0, len(validationErrs))
			for _, fe := range validationErrs {
				items = append(items, httpHandlers.ErrorItem{
					Message: validationMessage(fe),
					Field:   fe.Field(),
				})
			}
			body = httpHandlers.ErrorResponse{Errors: items}
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				body = httpHandlers.NewErrorResponse(msg)
			} else {
				body = httpHandlers.NewErrorResponse(http.StatusText(code))
			}
		}

		if code == http.StatusInternalServerError {
			logger.Errorw("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if !c.Response().Committed {
			var respErr error
			if c.Request().Method == http.MethodHead {
				respErr = c.NoContent(code)
			} else {
				respErr = c.JSON(code, body)
			}
			if respErr != nil {
				logger.Errorw("Error sending response", "error", respErr)
			}
		}
	}
}

// validationMessage renders a declarative constraint failure the way the
// API documents it.
func validationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		return "Username is required"
	case "Email":
		return "Email must be valid"
	case "Password":
		if fe.Tag() == "required" {
			return "You must supply a password"
		}
		return "Password must be between 4 and 20 characters"
	case "Name":
		return "Task list name is required"
	case "Title":
		return "Title is required"
	case "Status":
		return "Status must be To Do, In Progress, or Completed"
	case "Priority":
		return "Priority must be Low, Medium, or High"
	case "TaskListID":
		return "Task list ID is required"
	default:
		return fe.Field() + " is invalid"
	}
}
