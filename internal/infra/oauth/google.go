package oauth

import (
	"context"

	"github.com/pkg/errors"

	"resback/config"
	"resback/internal/domain/entity"
	"resback/internal/domain/service"
)

// DefaultGoogleScopes is used when the config does not override the scope set.
const DefaultGoogleScopes = "https://www.googleapis.com/auth/userinfo.email https://www.googleapis.com/auth/userinfo.profile"

// googleUser is Google's userinfo v2 payload. Only the id survives past
// this package.
type googleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Locale        string `json:"locale"`
}

type googleClient struct {
	baseClient
}

// NewGoogleClient builds the Google Sign-In client.
func NewGoogleClient(cfg *config.OAuthProviderConfig) (service.OAuthProviderClient, error) {
	if cfg != nil && cfg.Scopes == "" {
		scoped := *cfg
		scoped.Scopes = DefaultGoogleScopes
		cfg = &scoped
	}

	base, err := newBaseClient(entity.OAuthProviderGoogle, cfg)
	if err != nil {
		return nil, err
	}

	return &googleClient{baseClient: base}, nil
}

// FetchUserInfo resolves the Google account behind an access token.
func (c *googleClient) FetchUserInfo(ctx context.Context, accessToken string) (*entity.OAuthUserData, error) {
	var payload googleUser
	if err := c.getUserInfo(ctx, accessToken, &payload); err != nil {
		return nil, err
	}
	if payload.ID == "" {
		return nil, errors.New("google user info has no id")
	}

	return &entity.OAuthUserData{Provider: entity.OAuthProviderGoogle, ID: payload.ID}, nil
}
