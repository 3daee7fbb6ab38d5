package middleware

import (
	"strings"

	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/domain/repository"
	"resback/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserType = "user_type"
	ContextKeyUserID   = "user_id"
	ContextKeyUser     = "user"
)

// AccessTokenCookie is the cookie carrying the access token.
const AccessTokenCookie = "access_token"

// RefreshTokenCookie is the cookie carrying the refresh token.
const RefreshTokenCookie = "refresh_token"

// AuthMiddleware validates session tokens and resolves the account behind them.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	txManager repository.TransactionManager
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, txManager repository.TransactionManager) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, txManager: txManager}
}

// AccessTokenFromRequest extracts the access token from the request. The
// cookie wins; the Authorization header is a fallback for non-browser clients.
func AccessTokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token := strings.TrimPrefix(authHeader, "Bearer "); token != authHeader {
		return token
	}

	return ""
}

// Authenticate verifies the access token and loads the account it belongs to.
// Every request re-verifies; nothing is cached between requests.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, err := m.tokenSvc.Verify(AccessTokenFromRequest(c))
		if err != nil {
			return err
		}

		user, err := m.loadUser(c, token)
		if err != nil {
			return err
		}

		c.Set(ContextKeyUserType, token.UserType)
		c.Set(ContextKeyUserID, token.UserID)
		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// RequireUserType restricts a route to one account kind. It must run after
// Authenticate.
func (m *AuthMiddleware) RequireUserType(userType entity.UserType) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, ok := c.Get(ContextKeyUserType).(entity.UserType)
			if !ok || got != userType {
				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// loadUser resolves the token's account row. A valid token whose account has
// been deleted is no longer a session.
func (m *AuthMiddleware) loadUser(c echo.Context, token *entity.SessionToken) (any, error) {
	ctx := c.Request().Context()

	var user any
	err := m.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var err error
		switch token.UserType {
		case entity.UserTypeNormal:
			user, err = repoFactory.NewNormalUserRepository().FindByID(ctx, token.UserID)
		case entity.UserTypeSenior:
			user, err = repoFactory.NewSeniorUserRepository().FindByID(ctx, token.UserID)
		default:
			return domainerrors.ErrInvalidToken
		}
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUnauthorized
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// AuthenticatedUserType returns the account kind set by Authenticate.
func AuthenticatedUserType(c echo.Context) (entity.UserType, bool) {
	userType, ok := c.Get(ContextKeyUserType).(entity.UserType)

	return userType, ok
}

// AuthenticatedUserID returns the account ID set by Authenticate.
func AuthenticatedUserID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ContextKeyUserID).(uint64)

	return id, ok
}
