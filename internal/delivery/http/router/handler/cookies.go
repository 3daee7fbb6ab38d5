package handler

import (
	"net/http"

	"resback/internal/delivery/http/middleware"
	"resback/internal/domain/entity"
	"resback/internal/usecase"

	"github.com/labstack/echo/v4"
)

// setTokenCookie stores a session token as an HttpOnly cookie. The cookie
// expires together with the token it carries.
func setTokenCookie(c echo.Context, name string, token *entity.SessionToken) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    token.Encoded,
		Path:     "/",
		MaxAge:   int(token.ExpiresIn().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookies stores both tokens of a fresh login.
func setSessionCookies(c echo.Context, output *usecase.LoginOutput) {
	setTokenCookie(c, middleware.AccessTokenCookie, output.AccessToken)
	setTokenCookie(c, middleware.RefreshTokenCookie, output.RefreshToken)
}

// clearSessionCookies expires both token cookies regardless of their values.
func clearSessionCookies(c echo.Context) {
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
