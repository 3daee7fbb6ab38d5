package impl

import (
	"context"
	"testing"

	"resback/internal/domain/entity"
	domainerrors "resback/internal/domain/errors"
	"resback/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_AuthorizationURL(t *testing.T) {
	fx := createTestSessionService()

	url, err := fx.service.AuthorizationURL(entity.OAuthProviderGoogle, "state-123")
	require.NoError(t, err)
	assert.Contains(t, url, "state=state-123")

	_, err = fx.service.AuthorizationURL(entity.OAuthProviderKakao, "state-123")
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedProvider)
}

func TestSessionService_LoginOAuth_CreatesUserOnFirstContact(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	output, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "auth-code", fx.google.lastCode)
	assert.Equal(t, entity.UserTypeNormal, output.UserType)
	require.NotNil(t, output.AccessToken)
	require.NotNil(t, output.RefreshToken)

	created, err := fx.factory.normalRepo.FindByOAuthIdentity(ctx, entity.OAuthProviderGoogle, "google-uid-1")
	require.NoError(t, err)
	assert.Equal(t, output.UserID, created.ID)
	assert.Equal(t, defaultProfilePicture, created.Picture)
	assert.NotEmpty(t, created.Nickname)
	assert.Equal(t, output.RefreshToken.Encoded, created.RefreshToken)
}

func TestSessionService_LoginOAuth_SecondLoginReusesAccount(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	first, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "code-1")
	require.NoError(t, err)
	second, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "code-2")
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Len(t, fx.factory.normalRepo.users, 1)

	// The second login supersedes the first refresh token.
	stored, err := fx.factory.normalRepo.FindByID(ctx, first.UserID)
	require.NoError(t, err)
	assert.Equal(t, second.RefreshToken.Encoded, stored.RefreshToken)
	assert.NotEqual(t, first.RefreshToken.Encoded, stored.RefreshToken)
}

func TestSessionService_LoginOAuth_ProviderFailure(t *testing.T) {
	tests := []struct {
		name  string
		setup func(fx *sessionServiceFixture)
	}{
		{
			name:  "code exchange fails",
			setup: func(fx *sessionServiceFixture) { fx.google.exchangeErr = errUpstream },
		},
		{
			name:  "user info fetch fails",
			setup: func(fx *sessionServiceFixture) { fx.google.userInfoErr = errUpstream },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestSessionService()
			tt.setup(fx)

			_, err := fx.service.LoginOAuth(context.Background(), entity.OAuthProviderGoogle, "code")
			assert.ErrorIs(t, err, domainerrors.ErrOAuthProvider)
			assert.Empty(t, fx.factory.normalRepo.users)
		})
	}
}

func TestSessionService_LoginOAuth_UnsupportedProvider(t *testing.T) {
	fx := createTestSessionService()

	_, err := fx.service.LoginOAuth(context.Background(), entity.OAuthProviderNaver, "code")
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedProvider)
}

func TestSessionService_LoginSenior(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	senior := &entity.SeniorUser{
		Email:        "mentor@respec.team",
		PasswordHash: "hashed:secret",
		Name:         "Mentor",
	}
	require.NoError(t, fx.factory.seniorRepo.Create(ctx, senior))

	output, err := fx.service.LoginSenior(ctx, usecase.SeniorLoginInput{Email: "mentor@respec.team", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, entity.UserTypeSenior, output.UserType)
	assert.Equal(t, senior.ID, output.UserID)

	stored, err := fx.factory.seniorRepo.FindByID(ctx, senior.ID)
	require.NoError(t, err)
	assert.Equal(t, output.RefreshToken.Encoded, stored.RefreshToken)
}

func TestSessionService_LoginSenior_BadCredentials(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	senior := &entity.SeniorUser{
		Email:        "mentor@respec.team",
		PasswordHash: "hashed:secret",
	}
	require.NoError(t, fx.factory.seniorRepo.Create(ctx, senior))

	tests := []struct {
		name  string
		input usecase.SeniorLoginInput
	}{
		{
			name:  "unknown email",
			input: usecase.SeniorLoginInput{Email: "nobody@respec.team", Password: "secret"},
		},
		{
			name:  "wrong password",
			input: usecase.SeniorLoginInput{Email: "mentor@respec.team", Password: "wrong"},
		},
	}

	// Both failure modes collapse into the same error so the endpoint
	// cannot be used to probe which emails are registered.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.service.LoginSenior(ctx, tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrLogin)
		})
	}
}

func TestSessionService_Refresh(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	login, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "code")
	require.NoError(t, err)

	output, err := fx.service.Refresh(ctx, login.RefreshToken.Encoded)
	require.NoError(t, err)
	assert.Equal(t, login.UserID, output.UserID)
	assert.Equal(t, entity.UserTypeNormal, output.UserType)
	assert.NotEqual(t, login.RefreshToken.Encoded, output.AccessToken.Encoded)

	// The refresh token is not rotated.
	stored, err := fx.factory.normalRepo.FindByID(ctx, login.UserID)
	require.NoError(t, err)
	assert.Equal(t, login.RefreshToken.Encoded, stored.RefreshToken)

	// So the same refresh token keeps working.
	_, err = fx.service.Refresh(ctx, login.RefreshToken.Encoded)
	assert.NoError(t, err)
}

func TestSessionService_Refresh_SupersededToken(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	first, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "code-1")
	require.NoError(t, err)
	second, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "code-2")
	require.NoError(t, err)

	// The first token still verifies but no longer matches the stored one.
	_, err = fx.service.Refresh(ctx, first.RefreshToken.Encoded)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)

	_, err = fx.service.Refresh(ctx, second.RefreshToken.Encoded)
	assert.NoError(t, err)
}

func TestSessionService_Refresh_TokenErrors(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	_, err := fx.service.Refresh(ctx, "")
	assert.ErrorIs(t, err, domainerrors.ErrTokenNotExists)

	_, err = fx.service.Refresh(ctx, "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}

func TestSessionService_Refresh_DeletedUser(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	login, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "code")
	require.NoError(t, err)
	require.NoError(t, fx.factory.normalRepo.Delete(ctx, login.UserID))

	_, err = fx.service.Refresh(ctx, login.RefreshToken.Encoded)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestSessionService_Logout(t *testing.T) {
	fx := createTestSessionService()
	ctx := context.Background()

	login, err := fx.service.LoginOAuth(ctx, entity.OAuthProviderGoogle, "code")
	require.NoError(t, err)

	require.NoError(t, fx.service.Logout(ctx, login.AccessToken.Encoded))

	stored, err := fx.factory.normalRepo.FindByID(ctx, login.UserID)
	require.NoError(t, err)
	assert.Empty(t, stored.RefreshToken)

	// Once logged out, the refresh token no longer matches anything.
	_, err = fx.service.Refresh(ctx, login.RefreshToken.Encoded)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestSessionService_Logout_InvalidToken(t *testing.T) {
	fx := createTestSessionService()

	err := fx.service.Logout(context.Background(), "garbage")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidToken)
}
