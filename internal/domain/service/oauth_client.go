package service

import (
	"context"
	"time"

	"resback/internal/domain/entity"
)

// ProviderToken is the normalized result of an authorization-code exchange.
// Providers disagree on the wire shape (string vs numeric expires_in,
// token_type casing); by the time a token reaches here those differences
// are gone.
type ProviderToken struct {
	AccessToken  string
	TokenType    string // Normalized to lowercase, typically "bearer".
	ExpiresIn    time.Duration
	RefreshToken string // Empty when the provider did not issue one.
	Scopes       []string
}

// OAuthProviderClient talks to one external identity provider.
type OAuthProviderClient interface {
	// Provider returns which provider this client talks to.
	Provider() entity.OAuthProvider

	// AuthorizationURL builds the provider's authorize redirect for the
	// given CSRF state.
	AuthorizationURL(state string) string

	// ExchangeCode trades an authorization code for a provider token.
	ExchangeCode(ctx context.Context, code string) (*ProviderToken, error)

	// FetchUserInfo resolves the provider-scoped identity behind an access token.
	FetchUserInfo(ctx context.Context, accessToken string) (*entity.OAuthUserData, error)
}
