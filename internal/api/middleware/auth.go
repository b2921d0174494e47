package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

// tokenCookie is the session cookie read on every protected request. Must
// match the cookie written by the auth handler and parsed by the websocket
// connection gate.
const tokenCookie = "jwt"

// Auth resolves the session cookie to a user and injects it into context.
func Auth(verifier ports.IdentityVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(tokenCookie)
			if err != nil || cookie.Value == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication cookie")
			}

			user, err := verifier.VerifyCredential(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrIdentityNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "user not found")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set("user", user)
			return next(c)
		}
	}
}
