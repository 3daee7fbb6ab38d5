package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resback/internal/delivery/http/middleware"
	"resback/internal/delivery/http/response"
	"resback/internal/delivery/http/validator"
	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionUsecase struct {
	authorizationURL func(provider entity.OAuthProvider, state string) (string, error)
	loginOAuth       func(ctx context.Context, provider entity.OAuthProvider, code string) (*usecase.LoginOutput, error)
	loginSenior      func(ctx context.Context, input usecase.SeniorLoginInput) (*usecase.LoginOutput, error)
	refresh          func(ctx context.Context, encoded string) (*usecase.RefreshOutput, error)
	logout           func(ctx context.Context, encoded string) error
}

func (f *fakeSessionUsecase) AuthorizationURL(provider entity.OAuthProvider, state string) (string, error) {
	return f.authorizationURL(provider, state)
}

func (f *fakeSessionUsecase) LoginOAuth(ctx context.Context, provider entity.OAuthProvider, code string) (*usecase.LoginOutput, error) {
	return f.loginOAuth(ctx, provider, code)
}

func (f *fakeSessionUsecase) LoginSenior(ctx context.Context, input usecase.SeniorLoginInput) (*usecase.LoginOutput, error) {
	return f.loginSenior(ctx, input)
}

func (f *fakeSessionUsecase) Refresh(ctx context.Context, encoded string) (*usecase.RefreshOutput, error) {
	return f.refresh(ctx, encoded)
}

func (f *fakeSessionUsecase) Logout(ctx context.Context, encoded string) error {
	return f.logout(ctx, encoded)
}

// newTestEcho builds an echo instance with the same validator and error
// rendering as the real server.
func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(slog.Default()).HandleHTTPError

	return e
}

func testSessionToken(userType entity.UserType, userID uint64, lifetime time.Duration, encoded string) *entity.SessionToken {
	now := time.Now()

	return &entity.SessionToken{
		Encoded:   encoded,
		UserType:  userType,
		UserID:    userID,
		IssuedAt:  now,
		ExpiresAt: now.Add(lifetime),
	}
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()

	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	t.Fatalf("cookie %q not set", name)

	return nil
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestAuthHandler_OAuthLogin_Redirects(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		authorizationURL: func(provider entity.OAuthProvider, state string) (string, error) {
			assert.Equal(t, entity.OAuthProviderGoogle, provider)
			assert.NotEmpty(t, state)

			return "https://accounts.google.com/authorize?state=" + state, nil
		},
	}, slog.Default())
	e.GET("/auth/:provider", h.OAuthLogin)

	req := httptest.NewRequest(http.MethodGet, "/auth/google", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderLocation), "accounts.google.com")
}

func TestAuthHandler_OAuthLogin_UnknownProvider(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{}, slog.Default())
	e.GET("/auth/:provider", h.OAuthLogin)

	req := httptest.NewRequest(http.MethodGet, "/auth/github", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "UNSUPPORTED_PROVIDER", envelope.Error.Code)
}

func TestAuthHandler_OAuthAuthorized_SetsCookies(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		loginOAuth: func(_ context.Context, provider entity.OAuthProvider, code string) (*usecase.LoginOutput, error) {
			assert.Equal(t, "the-code", code)

			return &usecase.LoginOutput{
				AccessToken:  testSessionToken(entity.UserTypeNormal, 7, 30*time.Minute, "access-jwt"),
				RefreshToken: testSessionToken(entity.UserTypeNormal, 7, 14*24*time.Hour, "refresh-jwt"),
				UserType:     entity.UserTypeNormal,
				UserID:       7,
			}, nil
		},
	}, slog.Default())
	e.GET("/auth/:provider/authorized", h.OAuthAuthorized)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/authorized?code=the-code", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// The cookie lives exactly as long as the token it carries.
	access := cookieByName(t, rec, middleware.AccessTokenCookie)
	assert.Equal(t, "access-jwt", access.Value)
	assert.Equal(t, int((30 * time.Minute).Seconds()), access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, "/", access.Path)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)

	refresh := cookieByName(t, rec, middleware.RefreshTokenCookie)
	assert.Equal(t, "refresh-jwt", refresh.Value)
	assert.Equal(t, int((14 * 24 * time.Hour).Seconds()), refresh.MaxAge)
}

func TestAuthHandler_OAuthAuthorized_MissingCode(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{}, slog.Default())
	e.GET("/auth/:provider/authorized", h.OAuthAuthorized)

	req := httptest.NewRequest(http.MethodGet, "/auth/google/authorized", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", envelope.Error.Code)
}

func TestAuthHandler_SeniorLogin(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		loginSenior: func(_ context.Context, input usecase.SeniorLoginInput) (*usecase.LoginOutput, error) {
			assert.Equal(t, "mentor@respec.team", input.Email)

			return &usecase.LoginOutput{
				AccessToken:  testSessionToken(entity.UserTypeSenior, 3, 30*time.Minute, "access-jwt"),
				RefreshToken: testSessionToken(entity.UserTypeSenior, 3, 14*24*time.Hour, "refresh-jwt"),
				UserType:     entity.UserTypeSenior,
				UserID:       3,
			}, nil
		},
	}, slog.Default())
	e.POST("/auth/senior", h.SeniorLogin)

	body := `{"email":"mentor@respec.team","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/senior", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.True(t, envelope.Success)
	cookieByName(t, rec, middleware.AccessTokenCookie)
	cookieByName(t, rec, middleware.RefreshTokenCookie)
}

func TestAuthHandler_SeniorLogin_FailedLoginEnvelope(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		loginSenior: func(_ context.Context, _ usecase.SeniorLoginInput) (*usecase.LoginOutput, error) {
			return nil, domainerrors.ErrLogin
		},
	}, slog.Default())
	e.POST("/auth/senior", h.SeniorLogin)

	body := `{"email":"mentor@respec.team","password":"wrong-password"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/senior", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "LOGIN_FAILED", envelope.Error.Code)
	// No cookies on a failed login.
	res := rec.Result()
	defer res.Body.Close()
	assert.Empty(t, res.Cookies())
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		refresh: func(_ context.Context, encoded string) (*usecase.RefreshOutput, error) {
			assert.Equal(t, "refresh-jwt", encoded)

			return &usecase.RefreshOutput{
				AccessToken: testSessionToken(entity.UserTypeNormal, 7, 30*time.Minute, "new-access-jwt"),
				UserType:    entity.UserTypeNormal,
				UserID:      7,
			}, nil
		},
	}, slog.Default())
	e.PATCH("/auth/token", h.RefreshToken)

	req := httptest.NewRequest(http.MethodPatch, "/auth/token", nil)
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "refresh-jwt"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	access := cookieByName(t, rec, middleware.AccessTokenCookie)
	assert.Equal(t, "new-access-jwt", access.Value)
}

func TestAuthHandler_RefreshToken_MissingCookie(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		refresh: func(_ context.Context, encoded string) (*usecase.RefreshOutput, error) {
			assert.Empty(t, encoded)

			return nil, domainerrors.ErrTokenNotExists
		},
	}, slog.Default())
	e.PATCH("/auth/token", h.RefreshToken)

	req := httptest.NewRequest(http.MethodPatch, "/auth/token", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	assert.Equal(t, "TOKEN_NOT_EXISTS", envelope.Error.Code)
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		logout: func(_ context.Context, encoded string) error {
			assert.Equal(t, "access-jwt", encoded)

			return nil
		},
	}, slog.Default())
	e.DELETE("/auth/token", h.Logout)

	req := httptest.NewRequest(http.MethodDelete, "/auth/token", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "access-jwt"})
	req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: "refresh-jwt"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	access := cookieByName(t, rec, middleware.AccessTokenCookie)
	assert.Empty(t, access.Value)
	assert.Equal(t, -1, access.MaxAge)
	refresh := cookieByName(t, rec, middleware.RefreshTokenCookie)
	assert.Empty(t, refresh.Value)
	assert.Equal(t, -1, refresh.MaxAge)
}

func TestAuthHandler_Logout_MissingRefreshCookie(t *testing.T) {
	e := newTestEcho(t)
	h := NewAuthHandler(&fakeSessionUsecase{
		logout: func(context.Context, string) error {
			t.Fatal("logout must not reach the usecase without the refresh cookie")

			return nil
		},
	}, slog.Default())
	e.DELETE("/auth/token", h.Logout)

	req := httptest.NewRequest(http.MethodDelete, "/auth/token", nil)
	req.AddCookie(&http.Cookie{Name: middleware.AccessTokenCookie, Value: "access-jwt"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, "TOKEN_NOT_EXISTS", envelope.Error.Code)
	assert.Empty(t, rec.Result().Cookies())
}
