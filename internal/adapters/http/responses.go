package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/manageer/core/internal/domain/entities"
	"github.com/manageer/core/internal/ports"
)

// Context keys set by the session resolver middleware
const (
	ContextKeyUserID   = "user"
	ContextKeyEmail    = "user_email"
	ContextKeyUsername = "user_username"
)

// ErrorItem is a single entry of the uniform error envelope.
type ErrorItem struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the uniform error body: {"errors":[{message, field?}]}.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// NewErrorResponse builds an envelope with a single message.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Errors: []ErrorItem{{Message: message}}}
}

// MessageResponse is a plain confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// CurrentUserResponse wraps the resolved identity; CurrentUser is null when
// no identity is attached.
type CurrentUserResponse struct {
	CurrentUser *entities.User `json:"currentUser"`
}

// GetClaimsFromContext returns the identity attached by the session
// resolver, or nil when the request is anonymous.
func GetClaimsFromContext(c echo.Context) *ports.Claims {
	id, ok := c.Get(ContextKeyUserID).(string)
	if !ok || id == "" {
		return nil
	}

	email, _ := c.Get(ContextKeyEmail).(string)
	username, _ := c.Get(ContextKeyUsername).(string)

	return &ports.Claims{
		ID:       id,
		Email:    email,
		Username: username,
	}
}

// getUserIDFromContext returns the authenticated caller's id. Guarded
// routes run behind the authorization gate, so the id is always present
// and well-formed there.
func getUserIDFromContext(c echo.Context) uuid.UUID {
	claims := GetClaimsFromContext(c)
	if claims == nil {
		return uuid.Nil
	}

	id, err := uuid.Parse(claims.ID)
	if err != nil {
		return uuid.Nil
	}

	return id
}
