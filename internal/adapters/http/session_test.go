package http

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newEchoContext(req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSessionCookieRoundTrip(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newEchoContext(req)

	WriteSessionCookie(c, "some.jwt.token", false)

	res := rec.Result()
	cookies := res.Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("cookie name = %q, want %q", cookie.Name, SessionCookieName)
	}
	if !cookie.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}

	// The value is base64 of {"jwt": token}.
	raw, err := base64.StdEncoding.DecodeString(cookie.Value)
	if err != nil {
		t.Fatalf("cookie value is not base64: %v", err)
	}
	if string(raw) != `{"jwt":"some.jwt.token"}` {
		t.Errorf("cookie payload = %s", raw)
	}

	// Reading it back yields the token.
	readReq := httptest.NewRequest(http.MethodGet, "/", nil)
	readReq.AddCookie(cookie)
	readCtx, _ := newEchoContext(readReq)

	token, ok := ReadSessionToken(readCtx)
	if !ok || token != "some.jwt.token" {
		t.Errorf("ReadSessionToken = (%q, %v), want (some.jwt.token, true)", token, ok)
	}
}

func TestReadSessionTokenMalformed(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"not base64", "%%%not-base64%%%"},
		{"base64 of non-json", base64.StdEncoding.EncodeToString([]byte("hello"))},
		{"json without jwt", base64.StdEncoding.EncodeToString([]byte(`{"other":"x"}`))},
		{"empty jwt", base64.StdEncoding.EncodeToString([]byte(`{"jwt":""}`))},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: tc.value})
			c, _ := newEchoContext(req)

			if token, ok := ReadSessionToken(c); ok {
				t.Errorf("malformed cookie read as token %q", token)
			}
		})
	}
}

func TestReadSessionTokenNoCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, _ := newEchoContext(req)

	if token, ok := ReadSessionToken(c); ok {
		t.Errorf("missing cookie read as token %q", token)
	}
}

func TestClearSessionCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c, rec := newEchoContext(req)

	ClearSessionCookie(c)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Value != "" {
		t.Errorf("cleared cookie value = %q, want empty", cookie.Value)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("cleared cookie MaxAge = %d, want -1", cookie.MaxAge)
	}
}
