package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// sessionCookieName carries the signed session token. Must match the cookie
// read by the auth middleware and the websocket connection gate.
const sessionCookieName = "jwt"

const sessionCookieMaxAge = 7 * 24 * time.Hour

// setSessionCookie attaches the token as an HttpOnly, SameSite=Strict cookie.
// Secure is enabled in production only so local development over plain HTTP
// keeps working.
func setSessionCookie(c echo.Context, token string, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionCookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   secure,
	})
}

func clearSessionCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   secure,
	})
}
