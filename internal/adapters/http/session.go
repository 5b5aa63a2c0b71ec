package http

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SessionCookieName is the cookie carrying the identity token.
const SessionCookieName = "session"

// sessionPayload is the cookie-session wire shape: base64 of {"jwt": token}.
type sessionPayload struct {
	JWT string `json:"jwt"`
}

// WriteSessionCookie stores the signed identity token in the session cookie.
func WriteSessionCookie(c echo.Context, token string, secure bool) {
	payload, _ := json.Marshal(sessionPayload{JWT: token})

	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    base64.StdEncoding.EncodeToString(payload),
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// ReadSessionToken extracts the identity token from the session cookie.
// Any malformed cookie reads as "no token".
func ReadSessionToken(c echo.Context) (string, bool) {
	cookie, err := c.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	raw, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		return "", false
	}

	var payload sessionPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.JWT == "" {
		return "", false
	}

	return payload.JWT, true
}
