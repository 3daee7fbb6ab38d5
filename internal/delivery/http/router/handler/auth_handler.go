package handler

import (
	"log/slog"
	"net/http"

	"resback/internal/delivery/http/middleware"
	"resback/internal/delivery/http/response"
	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for session-related handlers.
type AuthHandler struct {
	sessionUC usecase.SessionUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(sessionUC usecase.SessionUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{sessionUC: sessionUC, logger: logger}
}

type seniorLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type sessionResponse struct {
	UserID   uint64 `json:"user_id"`
	UserType string `json:"user_type"`
}

// OAuthLogin redirects the browser to the provider's authorize page.
func (h *AuthHandler) OAuthLogin(c echo.Context) error {
	provider, err := entity.ParseOAuthProvider(c.Param("provider"))
	if err != nil {
		return domainerrors.ErrUnsupportedProvider.WithDetails(c.Param("provider"))
	}

	url, err := h.sessionUC.AuthorizationURL(provider, uuid.NewString())
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Redirect(http.StatusTemporaryRedirect, url)
}

// OAuthAuthorized completes the provider callback: the authorization code is
// exchanged and the session lands in cookies.
func (h *AuthHandler) OAuthAuthorized(c echo.Context) error {
	provider, err := entity.ParseOAuthProvider(c.Param("provider"))
	if err != nil {
		return domainerrors.ErrUnsupportedProvider.WithDetails(c.Param("provider"))
	}

	code := c.QueryParam("code")
	if code == "" {
		return domainerrors.ErrValidationFailed.WithDetails("missing authorization code")
	}

	output, err := h.sessionUC.LoginOAuth(c.Request().Context(), provider, code)
	if err != nil {
		return errors.WithStack(err)
	}

	setSessionCookies(c, output)

	return response.Success(c, http.StatusOK, sessionResponse{
		UserID:   output.UserID,
		UserType: output.UserType.String(),
	}, "Login successful")
}

// SeniorLogin handles the email/password login for senior users.
func (h *AuthHandler) SeniorLogin(c echo.Context) error {
	var input seniorLoginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	output, err := h.sessionUC.LoginSenior(c.Request().Context(), usecase.SeniorLoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	setSessionCookies(c, output)

	return response.Success(c, http.StatusOK, sessionResponse{
		UserID:   output.UserID,
		UserType: output.UserType.String(),
	}, "Login successful")
}

// RefreshToken exchanges the refresh cookie for a new access token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var encoded string
	if cookie, err := c.Cookie(middleware.RefreshTokenCookie); err == nil {
		encoded = cookie.Value
	}

	output, err := h.sessionUC.Refresh(c.Request().Context(), encoded)
	if err != nil {
		return errors.WithStack(err)
	}

	setTokenCookie(c, middleware.AccessTokenCookie, output.AccessToken)

	return response.Success(c, http.StatusOK, sessionResponse{
		UserID:   output.UserID,
		UserType: output.UserType.String(),
	}, "Token refreshed successfully")
}

// Logout ends the session server-side and expires both cookies. The request
// must carry the full cookie pair; a missing refresh cookie is rejected even
// though only the access token is validated.
func (h *AuthHandler) Logout(c echo.Context) error {
	if _, err := c.Cookie(middleware.RefreshTokenCookie); err != nil {
		return errors.WithStack(domainerrors.ErrTokenNotExists)
	}

	if err := h.sessionUC.Logout(c.Request().Context(), middleware.AccessTokenFromRequest(c)); err != nil {
		return errors.WithStack(err)
	}

	clearSessionCookies(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}
